// Package suggest lists vocabulary words under a prefix, backed by a patricia trie.
package suggest

// ICompleter defines the interface for prefix listing engines
type ICompleter interface {
	// Complete returns up to limit words starting with prefix
	Complete(prefix string, limit int) []Suggestion

	// AddWord records one occurrence of word in the load stream
	AddWord(word string)

	// Contains reports whether word was already recorded
	Contains(word string) bool

	// Stats returns statistics about the indexed words
	Stats() map[string]int
}
