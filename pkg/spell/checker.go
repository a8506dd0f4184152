/*
Package spell validates Tibetan syllables against a loaded vocabulary.

A Checker goes through two phases. During load, words coming out of the vocab
package are segmented into symbols and added to the trie one at a time. Freeze
ends the load phase; from then on the Checker only answers queries and may be
shared between goroutines.

	checker := spell.New(symbol.Grapheme)
	words, _ := vocab.DefaultSource(dir).Words(afero.NewOsFs())
	checker.Load(words)
	checker.Freeze()

	for _, r := range checker.CheckSentence("བ་བོ་བར", spell.DefaultSeparator) {
		fmt.Println(r.Token, r.Valid)
	}
*/
package spell

import (
	"fmt"
	"strings"

	"github.com/bastiangx/sylcheck/pkg/suggest"
	"github.com/bastiangx/sylcheck/pkg/symbol"
	"github.com/bastiangx/sylcheck/pkg/trie"
	"github.com/charmbracelet/log"
)

// DefaultSeparator is the tsheg, the mark between Tibetan syllables.
const DefaultSeparator = "་"

// DefaultPunctuation is trimmed from both ends of every token.
const DefaultPunctuation = "།༎༏༐༑༔"

// Result is the verdict for one token of a sentence.
type Result struct {
	Token string
	Valid bool
}

// Checker wraps the trie with symbol segmentation and a prefix index.
type Checker struct {
	mode      symbol.Mode
	trie      *trie.Trie[string]
	completer suggest.ICompleter
	rejected  int
	repeated  int
}

// New returns an empty checker splitting words with mode.
func New(mode symbol.Mode) *Checker {
	return &Checker{
		mode:      mode,
		trie:      trie.New[string](),
		completer: suggest.NewCompleter(),
	}
}

// Mode returns the symbol granularity used by the checker.
func (c *Checker) Mode() symbol.Mode {
	return c.mode
}

// Add inserts a single word.
func (c *Checker) Add(word string) error {
	if err := c.trie.Add(symbol.Split(c.mode, word)); err != nil {
		return fmt.Errorf("add %q: %w", word, err)
	}
	if c.completer.Contains(word) {
		c.repeated++
	}
	c.completer.AddWord(word)
	return nil
}

// Load adds every word in order and returns how many were accepted. Empty
// words are counted as rejected and skipped; a frozen checker stops the load.
func (c *Checker) Load(words []string) (int, error) {
	added := 0
	for _, word := range words {
		if err := c.Add(word); err != nil {
			if c.trie.Frozen() {
				return added, err
			}
			c.rejected++
			log.Debugf("Skipping vocabulary entry: %v", err)
			continue
		}
		added++
	}
	log.Debugf("Loaded %d words (%d rejected, %d repeated)", added, c.rejected, c.repeated)
	return added, nil
}

// Freeze ends the load phase.
func (c *Checker) Freeze() {
	c.trie.Freeze()
}

// Check reports whether word is a valid vocabulary word. The empty string is
// never valid.
func (c *Checker) Check(word string) bool {
	ok, err := c.trie.HasWord(symbol.Split(c.mode, word))
	if err != nil {
		log.Errorf("Checking %q: %v", word, err)
		return false
	}
	return ok
}

// IsPrefix reports whether some valid word starts with s.
func (c *Checker) IsPrefix(s string) bool {
	ok, err := c.trie.HasPrefix(symbol.Split(c.mode, s))
	return err == nil && ok
}

// CheckTokens checks each token as given.
func (c *Checker) CheckTokens(tokens []string) []Result {
	results := make([]Result, 0, len(tokens))
	for _, token := range tokens {
		results = append(results, Result{Token: token, Valid: c.Check(token)})
	}
	return results
}

// CheckSentence tokenizes sentence on sep and checks every token.
func (c *Checker) CheckSentence(sentence, sep string) []Result {
	return c.CheckTokens(Tokenize(sentence, sep))
}

// Complete lists valid words that extend prefix.
func (c *Checker) Complete(prefix string, limit int) []suggest.Suggestion {
	return c.completer.Complete(prefix, limit)
}

// Stats merges trie and index statistics.
func (c *Checker) Stats() map[string]int {
	ts := c.trie.Stats()
	stats := map[string]int{
		"words":    ts.Words,
		"nodes":    ts.Nodes,
		"maxDepth": ts.MaxDepth,
		"rejected": c.rejected,
		"repeated": c.repeated,
	}
	for k, v := range c.completer.Stats() {
		stats[k] = v
	}
	if c.trie.Frozen() {
		stats["frozen"] = 1
	} else {
		stats["frozen"] = 0
	}
	return stats
}

// Tokenize splits sentence on sep, trims whitespace and clause punctuation
// from each piece and drops the pieces left empty. An empty sep splits on
// whitespace.
func Tokenize(sentence, sep string) []string {
	var parts []string
	if sep == "" {
		parts = strings.Fields(sentence)
	} else {
		parts = strings.Split(sentence, sep)
	}

	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.Trim(strings.TrimSpace(part), DefaultPunctuation+" \t\r\n")
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}
