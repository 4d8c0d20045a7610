package style

import (
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// Stylesheet maps id tags to styles, preserving insertion order
// Read-only once handed to a surface
type Stylesheet struct {
	styles []Style
	index  map[string]int
}

// NewStylesheet builds a stylesheet; later duplicates replace earlier ones
func NewStylesheet(styles ...Style) *Stylesheet {
	ss := &Stylesheet{index: make(map[string]int, len(styles))}
	for _, st := range styles {
		_ = ss.Add(st)
	}
	return ss
}

// Add inserts or replaces a style by id
func (ss *Stylesheet) Add(st Style) error {
	if st.ID == "" {
		return fmt.Errorf("stylesheet: style without id")
	}
	if i, ok := ss.index[st.ID]; ok {
		ss.styles[i] = st
		return nil
	}
	ss.index[st.ID] = len(ss.styles)
	ss.styles = append(ss.styles, st)
	return nil
}

// Find looks up a single style by id
func (ss *Stylesheet) Find(id string) (Style, bool) {
	if ss == nil {
		return Style{}, false
	}
	i, ok := ss.index[id]
	if !ok {
		return Style{}, false
	}
	return ss.styles[i], true
}

// Resolve returns the styles for tags in tag order, skipping unknown tags
// Returns nil when nothing matched
func (ss *Stylesheet) Resolve(tags ...string) []Style {
	if ss == nil || len(tags) == 0 {
		return nil
	}
	var out []Style
	for _, tag := range tags {
		if st, ok := ss.Find(tag); ok {
			out = append(out, st)
		}
	}
	return out
}

// Computed resolves tags and merges them into one style
func (ss *Stylesheet) Computed(tags ...string) Style {
	return Merge(ss.Resolve(tags...))
}

// Len returns the number of styles
func (ss *Stylesheet) Len() int {
	if ss == nil {
		return 0
	}
	return len(ss.styles)
}

// IDs returns style ids in insertion order
func (ss *Stylesheet) IDs() []string {
	if ss == nil {
		return nil
	}
	ids := make([]string, len(ss.styles))
	for i, st := range ss.styles {
		ids[i] = st.ID
	}
	return ids
}

// Def is the serialized form of a style
type Def struct {
	Fg        string `toml:"fg"`
	Bg        string `toml:"bg"`
	Bold      bool   `toml:"bold"`
	Dim       bool   `toml:"dim"`
	Italic    bool   `toml:"italic"`
	Underline bool   `toml:"underline"`
	Reverse   bool   `toml:"reverse"`
	Padding   int    `toml:"padding"`
}

// Style converts a definition into a Style with the given id
func (d Def) Style(id string) (Style, error) {
	fg, err := ParseColor(d.Fg)
	if err != nil {
		return Style{}, fmt.Errorf("style %s fg: %w", id, err)
	}
	bg, err := ParseColor(d.Bg)
	if err != nil {
		return Style{}, fmt.Errorf("style %s bg: %w", id, err)
	}
	if d.Padding < 0 {
		return Style{}, fmt.Errorf("style %s: negative padding %d", id, d.Padding)
	}
	return Style{
		ID:        id,
		Fg:        fg,
		Bg:        bg,
		Bold:      d.Bold,
		Dim:       d.Dim,
		Italic:    d.Italic,
		Underline: d.Underline,
		Reverse:   d.Reverse,
		Padding:   d.Padding,
	}, nil
}

// FromDefs builds a stylesheet from definitions keyed by id, sorted by id
func FromDefs(defs map[string]Def) (*Stylesheet, error) {
	ids := make([]string, 0, len(defs))
	for id := range defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ss := NewStylesheet()
	for _, id := range ids {
		st, err := defs[id].Style(id)
		if err != nil {
			return nil, err
		}
		if err := ss.Add(st); err != nil {
			return nil, err
		}
	}
	return ss, nil
}

// LoadStylesheet parses a TOML document of [styles.<id>] tables
func LoadStylesheet(data []byte) (*Stylesheet, error) {
	var doc struct {
		Styles map[string]Def `toml:"styles"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("stylesheet: %w", err)
	}
	return FromDefs(doc.Styles)
}
