package suggest

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Suggestion is one word found under a prefix. Count is how many times the
// word appeared in the load stream, so forms produced by several lists or
// suffix classes rank first.
type Suggestion struct {
	Word  string
	Count int
}

// Completer indexes words for prefix listing.
type Completer struct {
	trie       *patricia.Trie
	totalWords int
	maxCount   int
}

func NewCompleter() *Completer {
	return &Completer{
		trie: patricia.NewTrie(),
	}
}

func (c *Completer) AddWord(word string) {
	if word == "" {
		return
	}
	key := patricia.Prefix(word)
	count := 1
	if item := c.trie.Get(key); item != nil {
		count = item.(int) + 1
		c.trie.Set(key, count)
	} else {
		c.trie.Insert(key, count)
		c.totalWords++
	}
	if count > c.maxCount {
		c.maxCount = count
	}
}

// Complete returns the words strictly longer than prefix that start with it,
// most frequent first and alphabetical within the same count. A limit <= 0
// returns everything.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	var suggestions []Suggestion

	err := c.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		if word == prefix {
			return nil
		}
		count, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type: %T for word %s", item, p)
			return nil
		}
		suggestions = append(suggestions, Suggestion{Word: word, Count: count})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return nil
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Count != suggestions[j].Count {
			return suggestions[i].Count > suggestions[j].Count
		}
		return suggestions[i].Word < suggestions[j].Word
	})

	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// Contains reports whether word was indexed.
func (c *Completer) Contains(word string) bool {
	return c.trie.Get(patricia.Prefix(word)) != nil
}

func (c *Completer) Stats() map[string]int {
	return map[string]int{
		"indexedWords": c.totalWords,
		"maxCount":     c.maxCount,
	}
}
