// Package trie implements the exact-membership prefix tree behind the syllable checker.
//
// A Trie is filled once through Add during a load phase, sealed with Freeze and
// then queried with HasWord. Words are sequences of atomic symbols; how a
// string is cut into symbols (runes, grapheme clusters) is up to the caller.
package trie

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	// ErrInvalidArgument is returned for absent input to a query or an empty word to Add.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrFrozen is returned by Add once the trie has been frozen.
	ErrFrozen = errors.New("trie is frozen")
)

// Node is one position in the tree. The root carries the zero symbol.
type Node[S comparable] struct {
	symbol   S
	isWord   bool
	children map[S]*Node[S]
}

// Symbol returns the label of the edge leading into n.
func (n *Node[S]) Symbol() S {
	return n.symbol
}

// IsWord reports whether the path to n spells a complete word.
func (n *Node[S]) IsWord() bool {
	return n.isWord
}

// Child returns the child reached through sym, or nil.
func (n *Node[S]) Child(sym S) *Node[S] {
	return n.children[sym]
}

// Len returns the number of children.
func (n *Node[S]) Len() int {
	return len(n.children)
}

func (n *Node[S]) addChild(sym S) *Node[S] {
	if n.children == nil {
		n.children = make(map[S]*Node[S], 1)
	}
	child := &Node[S]{symbol: sym}
	n.children[sym] = child
	return child
}

// Trie owns the root node and the counters kept up to date by Add.
type Trie[S comparable] struct {
	root     *Node[S]
	words    int
	nodes    int
	maxDepth int
	frozen   atomic.Bool
}

// Stats describes the shape of a trie.
type Stats struct {
	Words    int
	Nodes    int
	MaxDepth int
}

// New returns an empty trie.
func New[S comparable]() *Trie[S] {
	return &Trie[S]{root: &Node[S]{}}
}

// Root exposes the root node for read-only traversal.
func (t *Trie[S]) Root() *Node[S] {
	return t.root
}

// Add inserts word. Shared prefixes reuse existing nodes, the remainder is
// chained as one new path and the last node is marked as a complete word.
func (t *Trie[S]) Add(word []S) error {
	if len(word) == 0 {
		return fmt.Errorf("add: empty word: %w", ErrInvalidArgument)
	}
	if t.frozen.Load() {
		return fmt.Errorf("add: %w", ErrFrozen)
	}

	current := t.root
	i := 0
	for ; i < len(word); i++ {
		next := current.children[word[i]]
		if next == nil {
			break
		}
		current = next
	}
	for ; i < len(word); i++ {
		current = current.addChild(word[i])
		t.nodes++
	}

	if !current.isWord {
		current.isWord = true
		t.words++
	}
	if len(word) > t.maxDepth {
		t.maxDepth = len(word)
	}
	return nil
}

// HasWord reports whether word was added as a complete word. A nil word is an
// error; an empty one is simply not a word.
func (t *Trie[S]) HasWord(word []S) (bool, error) {
	if word == nil {
		return false, fmt.Errorf("has word: nil input: %w", ErrInvalidArgument)
	}
	if len(word) == 0 {
		return false, nil
	}
	node := t.walk(word)
	return node != nil && node.isWord, nil
}

// HasPrefix reports whether some added word starts with prefix.
func (t *Trie[S]) HasPrefix(prefix []S) (bool, error) {
	if prefix == nil {
		return false, fmt.Errorf("has prefix: nil input: %w", ErrInvalidArgument)
	}
	return t.walk(prefix) != nil, nil
}

// walk follows path from the root and returns the landing node, or nil when an
// edge is missing.
func (t *Trie[S]) walk(path []S) *Node[S] {
	current := t.root
	for _, sym := range path {
		current = current.children[sym]
		if current == nil {
			return nil
		}
	}
	return current
}

// Freeze seals the trie. Later calls to Add fail with ErrFrozen and readers may
// share the trie without locking.
func (t *Trie[S]) Freeze() {
	t.frozen.Store(true)
}

// Frozen reports whether Freeze has been called.
func (t *Trie[S]) Frozen() bool {
	return t.frozen.Load()
}

// Stats returns word and node counts. The root is not counted.
func (t *Trie[S]) Stats() Stats {
	return Stats{
		Words:    t.words,
		Nodes:    t.nodes,
		MaxDepth: t.maxDepth,
	}
}
