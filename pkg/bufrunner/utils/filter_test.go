package utils

import "testing"

func TestStringFilter(t *testing.T) {
	t.Run("empty matches anything", func(t *testing.T) {
		f := NewStringFilterFromSlice(nil)
		if !f.Match("a") || !f.MatchAny(nil) {
			t.Errorf("expected an empty filter to match anything")
		}
	})

	t.Run("strict empty matches nothing", func(t *testing.T) {
		f := NewStringFilterFromSlice(nil)
		f.SetStrict()
		if f.Match("a") || f.MatchAny([]string{"a"}) {
			t.Errorf("expected a strict empty filter to match nothing")
		}
	})

	t.Run("contents", func(t *testing.T) {
		f := NewStringFilterFromSlice([]string{"a", "b/c"})
		if !f.Match("a") {
			t.Errorf("expected 'a' to match")
		}
		if f.Match("c") {
			t.Errorf("expected 'c' not to match")
		}
		if !f.MatchAny([]string{"c", "b/c"}) {
			t.Errorf("expected 'b/c' to match")
		}
	})
}
