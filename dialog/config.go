package dialog

import (
	"github.com/lixenwraith/flexterm/geom"
	"github.com/lixenwraith/flexterm/style"
)

// Mode selects whether the result list is navigable
type Mode uint8

const (
	ModeNormal       Mode = iota // input only; Enter returns the input
	ModeAutocomplete             // Up/Down pick a result; Enter returns it
)

const (
	DefaultMaxVisibleResults = 10
	DefaultWidthPercent      = 60

	minWidth = 10
	// border rows plus the input row
	chromeRows = 3
)

// Styles layer over one another: Frame is the base of everything else
type Styles struct {
	Frame    style.Style
	Title    style.Style
	Input    style.Style
	Result   style.Style
	Selected style.Style // empty Bg derives one from Frame
	Match    style.Style // runes matched by the query
}

// Config parameterizes a dialog engine; fixed after NewEngine
type Config struct {
	Mode              Mode
	MaxVisibleResults int
	WidthPercent      geom.Percent
	FilterResults     bool // rank results by the input with fuzzy matching
	Styles            Styles
}

// DefaultConfig is an autocomplete dialog with fuzzy filtering
func DefaultConfig() Config {
	return Config{
		Mode:              ModeAutocomplete,
		MaxVisibleResults: DefaultMaxVisibleResults,
		WidthPercent:      DefaultWidthPercent,
		FilterResults:     true,
		Styles: Styles{
			Title: style.Style{ID: "dialog.title", Bold: true},
			Match: style.Style{ID: "dialog.match", Underline: true},
		},
	}
}

func (c Config) normalized() Config {
	if c.MaxVisibleResults <= 0 {
		c.MaxVisibleResults = DefaultMaxVisibleResults
	}
	if c.WidthPercent == 0 {
		c.WidthPercent = DefaultWidthPercent
	}
	return c
}
