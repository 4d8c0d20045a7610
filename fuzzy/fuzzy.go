// Package fuzzy ranks candidate strings against an fzf-style query.
//
// Query syntax, terms separated by spaces and all required:
//
//	foo    fuzzy subsequence
//	'foo   exact substring
//	^foo   prefix
//	foo$   suffix
//	!foo   negation of any of the above
//
// Lowercase terms match case-insensitively; a term containing an uppercase
// letter is case-sensitive.
package fuzzy

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

func init() {
	algo.Init("default")
}

var (
	slabMu sync.Mutex
	slab   = util.MakeSlab(100*1024, 2048)
)

type termKind uint8

const (
	kindFuzzy termKind = iota
	kindExact
	kindPrefix
	kindSuffix
)

type matchFunc func(caseSensitive, normalize, forward bool, text *util.Chars, pattern []rune, withPos bool, slab *util.Slab) (algo.Result, *[]int)

var matchers = [...]matchFunc{
	kindFuzzy:  algo.FuzzyMatchV2,
	kindExact:  algo.ExactMatchNaive,
	kindPrefix: algo.PrefixMatch,
	kindSuffix: algo.SuffixMatch,
}

type term struct {
	pattern       []rune
	kind          termKind
	negated       bool
	caseSensitive bool
}

// Query is a parsed query; parse once, match many
type Query struct {
	raw   string
	terms []term
}

// ParseQuery parses raw into terms
func ParseQuery(raw string) Query {
	q := Query{raw: raw}
	for _, tok := range strings.Fields(raw) {
		q.terms = append(q.terms, parseTerm(tok))
	}
	return q
}

func parseTerm(tok string) term {
	t := term{kind: kindFuzzy}
	if len(tok) > 1 && tok[0] == '!' {
		t.negated = true
		tok = tok[1:]
	}
	switch {
	case len(tok) > 1 && tok[0] == '\'':
		t.kind = kindExact
		tok = tok[1:]
	case len(tok) > 1 && tok[0] == '^':
		t.kind = kindPrefix
		tok = tok[1:]
	case len(tok) > 1 && tok[len(tok)-1] == '$':
		t.kind = kindSuffix
		tok = tok[:len(tok)-1]
	}

	t.caseSensitive = strings.IndexFunc(tok, unicode.IsUpper) >= 0
	if !t.caseSensitive {
		tok = strings.ToLower(tok)
	}
	t.pattern = []rune(tok)
	return t
}

// String returns the raw query
func (q Query) String() string {
	return q.raw
}

// Empty reports whether the query has no terms; an empty query matches everything
func (q Query) Empty() bool {
	return len(q.terms) == 0
}

// Match is a candidate that satisfied the query
type Match struct {
	Index     int    // position in the input slice
	Text      string // candidate text
	Score     int
	Positions []int // matched rune offsets, unordered, may be empty
}

// Score matches one candidate, returning its score and matched rune offsets
func (q Query) Score(candidate string) (int, []int, bool) {
	if q.Empty() {
		return 0, nil, true
	}
	chars := util.ToChars([]byte(candidate))

	slabMu.Lock()
	defer slabMu.Unlock()

	total := 0
	var positions []int
	for i := range q.terms {
		t := &q.terms[i]
		res, pos := matchers[t.kind](t.caseSensitive, false, true, &chars, t.pattern, !t.negated, slab)
		matched := res.Start >= 0
		if t.negated {
			if matched {
				return 0, nil, false
			}
			continue
		}
		if !matched {
			return 0, nil, false
		}
		total += res.Score
		if pos != nil {
			positions = append(positions, *pos...)
		}
	}
	return total, positions, true
}

// Filter returns the candidates matching q, best score first, ties in input order
// An empty query returns every candidate in input order
func Filter(q Query, candidates []string) []Match {
	out := make([]Match, 0, len(candidates))
	for i, c := range candidates {
		score, pos, ok := q.Score(c)
		if !ok {
			continue
		}
		out = append(out, Match{Index: i, Text: c, Score: score, Positions: pos})
	}
	if q.Empty() {
		return out
	}
	slices.SortStableFunc(out, func(a, b Match) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}

// Texts returns the matched strings in order
func Texts(ms []Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Text
	}
	return out
}
