// Package symbol cuts strings into the atomic symbols stored in the trie.
package symbol

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Mode selects the symbol granularity.
type Mode int

const (
	// Rune treats every code point as one symbol.
	Rune Mode = iota
	// Grapheme treats every extended grapheme cluster as one symbol, so a
	// stacked consonant with its vowel sign is a single edge.
	Grapheme
)

func (m Mode) String() string {
	switch m {
	case Rune:
		return "rune"
	case Grapheme:
		return "grapheme"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a config or flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rune", "runes", "char":
		return Rune, nil
	case "grapheme", "graphemes", "cluster":
		return Grapheme, nil
	}
	return Rune, fmt.Errorf("unknown symbol mode %q (expected rune or grapheme)", s)
}

// Split returns the symbols of s. The result is never nil, so an empty string
// yields an empty, non-nil sequence.
func Split(mode Mode, s string) []string {
	if mode == Grapheme {
		return graphemes(s)
	}
	return runes(s)
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func graphemes(s string) []string {
	out := make([]string, 0, uniseg.GraphemeClusterCount(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}
