package fuzzy

import (
	"slices"
	"testing"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		raw     string
		kind    termKind
		pattern string
		negated bool
		cs      bool
	}{
		{"foo", kindFuzzy, "foo", false, false},
		{"Foo", kindFuzzy, "Foo", false, true},
		{"'exact", kindExact, "exact", false, false},
		{"^pre", kindPrefix, "pre", false, false},
		{"suf$", kindSuffix, "suf", false, false},
		{"!nope", kindFuzzy, "nope", true, false},
		{"!^Go", kindPrefix, "Go", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			q := ParseQuery(tt.raw)
			if len(q.terms) != 1 {
				t.Fatalf("terms = %d", len(q.terms))
			}
			term := q.terms[0]
			if term.kind != tt.kind || string(term.pattern) != tt.pattern ||
				term.negated != tt.negated || term.caseSensitive != tt.cs {
				t.Errorf("got %+v", term)
			}
		})
	}

	if !ParseQuery("   ").Empty() {
		t.Error("blank query should be empty")
	}
	if n := len(ParseQuery("a  b\tc").terms); n != 3 {
		t.Errorf("terms = %d, want 3", n)
	}
}

func TestFilter(t *testing.T) {
	items := []string{"main.go", "README.md", "layout/surface.go", "go.mod", "editor/engine.go"}

	t.Run("empty query keeps order", func(t *testing.T) {
		got := Texts(Filter(ParseQuery(""), items))
		if !slices.Equal(got, items) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("suffix", func(t *testing.T) {
		got := Texts(Filter(ParseQuery(".go$"), items))
		want := []string{"main.go", "layout/surface.go", "editor/engine.go"}
		slices.Sort(got)
		slices.Sort(want)
		if !slices.Equal(got, want) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("negation", func(t *testing.T) {
		for _, m := range Filter(ParseQuery("!go"), items) {
			if m.Text != "README.md" {
				t.Errorf("unexpected match %q", m.Text)
			}
		}
	})

	t.Run("and terms", func(t *testing.T) {
		got := Filter(ParseQuery("^layout surf"), items)
		if len(got) != 1 || got[0].Text != "layout/surface.go" || got[0].Index != 2 {
			t.Errorf("got %+v", got)
		}
		if len(got[0].Positions) == 0 {
			t.Error("expected match positions")
		}
	})

	t.Run("no match", func(t *testing.T) {
		if got := Filter(ParseQuery("zzz"), items); len(got) != 0 {
			t.Errorf("got %v", got)
		}
	})

	t.Run("better match ranks first", func(t *testing.T) {
		got := Filter(ParseQuery("eng"), []string{"e_n_g_x", "engine"})
		if len(got) != 2 || got[0].Text != "engine" {
			t.Errorf("got %v", Texts(got))
		}
	})
}
