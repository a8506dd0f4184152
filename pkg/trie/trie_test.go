package trie

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func mustAdd(t *testing.T, tr *Trie[rune], words ...string) {
	t.Helper()
	for _, w := range words {
		if err := tr.Add([]rune(w)); err != nil {
			t.Fatalf("Add(%q): %v", w, err)
		}
	}
}

func has(t *testing.T, tr *Trie[rune], word string) bool {
	t.Helper()
	ok, err := tr.HasWord([]rune(word))
	if err != nil {
		t.Fatalf("HasWord(%q): %v", word, err)
	}
	return ok
}

func TestAddAndHasWord(t *testing.T) {
	tr := New[rune]()
	mustAdd(t, tr, "bat", "cat", "car", "a", "ab")

	testCases := []struct {
		word     string
		expected bool
	}{
		{"bat", true},
		{"ba", false},
		{"b", false},
		{"cat", true},
		{"car", true},
		{"ca", false},
		{"cart", false},
		{"a", true},
		{"ab", true},
		{"abc", false},
		{"dog", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%q", tc.word), func(t *testing.T) {
			if got := has(t, tr, tc.word); got != tc.expected {
				t.Errorf("HasWord(%q): expected %v, got %v", tc.word, tc.expected, got)
			}
		})
	}
}

func TestAddPrefixOfExistingWord(t *testing.T) {
	tr := New[rune]()
	mustAdd(t, tr, "abc")
	before := tr.Stats()

	mustAdd(t, tr, "ab")
	after := tr.Stats()

	if after.Nodes != before.Nodes {
		t.Errorf("adding a prefix created nodes: before %d, after %d", before.Nodes, after.Nodes)
	}
	if !has(t, tr, "ab") || !has(t, tr, "abc") {
		t.Errorf("expected both 'ab' and 'abc' to be words")
	}
	if has(t, tr, "a") {
		t.Errorf("'a' was never added")
	}
}

func TestAddIsIdempotent(t *testing.T) {
	tr := New[rune]()
	mustAdd(t, tr, "cat", "car")
	before := tr.Stats()

	mustAdd(t, tr, "cat")
	after := tr.Stats()

	if before != after {
		t.Errorf("second insert changed stats: %+v -> %+v", before, after)
	}
	for _, w := range []string{"cat", "car"} {
		if !has(t, tr, w) {
			t.Errorf("expected %q to remain a word", w)
		}
	}
	if has(t, tr, "ca") {
		t.Errorf("'ca' should not be a word")
	}
}

func TestEmptyAndNilInput(t *testing.T) {
	tr := New[rune]()
	mustAdd(t, tr, "a")

	if err := tr.Add([]rune{}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Add(empty): expected ErrInvalidArgument, got %v", err)
	}
	if err := tr.Add(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Add(nil): expected ErrInvalidArgument, got %v", err)
	}

	ok, err := tr.HasWord([]rune{})
	if err != nil || ok {
		t.Errorf("HasWord(empty): expected false, nil; got %v, %v", ok, err)
	}

	if _, err := tr.HasWord(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("HasWord(nil): expected ErrInvalidArgument, got %v", err)
	}
	if _, err := tr.HasPrefix(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("HasPrefix(nil): expected ErrInvalidArgument, got %v", err)
	}
	if tr.Root().IsWord() {
		t.Errorf("root must never be a word")
	}
}

func TestSharedPrefixPaths(t *testing.T) {
	tr := New[rune]()
	mustAdd(t, tr, "cat", "car")

	if got := tr.Stats().Nodes; got != 4 {
		t.Fatalf("expected 4 nodes for 'cat' and 'car', got %d", got)
	}

	c := tr.Root().Child('c')
	if c == nil || c.Len() != 1 {
		t.Fatalf("expected single edge below 'c'")
	}
	a := c.Child('a')
	if a == nil || a.Len() != 2 {
		t.Fatalf("expected paths to diverge below 'ca', got %v", a)
	}
	for _, sym := range []rune{'t', 'r'} {
		leaf := a.Child(sym)
		if leaf == nil || !leaf.IsWord() || leaf.Symbol() != sym {
			t.Errorf("expected word leaf %q", sym)
		}
	}
}

func TestDepthEqualsWordLength(t *testing.T) {
	tr := New[rune]()
	words := []string{"a", "abcd", "xyzxyzxyz"}
	mustAdd(t, tr, words...)

	for _, w := range words {
		depth := 0
		node := tr.Root()
		for _, r := range w {
			node = node.Child(r)
			depth++
		}
		if !node.IsWord() || depth != len([]rune(w)) {
			t.Errorf("word %q: depth %d, isWord %v", w, depth, node.IsWord())
		}
	}
	if got := tr.Stats().MaxDepth; got != 9 {
		t.Errorf("expected max depth 9, got %d", got)
	}
}

func TestTibetanSyllables(t *testing.T) {
	tr := New[rune]()
	mustAdd(t, tr, "དཀོན", "དཀའ", "དཀར")

	testCases := []struct {
		word     string
		expected bool
	}{
		{"དཀ", false},
		{"དཀར", true},
		{"དཀའ", true},
		{"དཀོན", true},
		{"ད", false},
	}
	for _, tc := range testCases {
		if got := has(t, tr, tc.word); got != tc.expected {
			t.Errorf("HasWord(%q): expected %v, got %v", tc.word, tc.expected, got)
		}
	}
}

func TestStringSymbols(t *testing.T) {
	tr := New[string]()
	for _, w := range [][]string{{"dk", "o", "n"}, {"dk", "a", "'"}, {"dk", "a", "r"}} {
		if err := tr.Add(w); err != nil {
			t.Fatalf("Add(%v): %v", w, err)
		}
	}

	testCases := []struct {
		word     []string
		expected bool
	}{
		{[]string{"dk", "a"}, false},
		{[]string{"dk", "a", "r"}, true},
		{[]string{"dk"}, false},
		{[]string{"d", "k", "a", "r"}, false},
	}
	for _, tc := range testCases {
		ok, err := tr.HasWord(tc.word)
		if err != nil {
			t.Fatalf("HasWord(%v): %v", tc.word, err)
		}
		if ok != tc.expected {
			t.Errorf("HasWord(%v): expected %v, got %v", tc.word, tc.expected, ok)
		}
	}
}

func TestHasPrefix(t *testing.T) {
	tr := New[rune]()
	mustAdd(t, tr, "bat")

	testCases := []struct {
		prefix   string
		expected bool
	}{
		{"", true},
		{"b", true},
		{"ba", true},
		{"bat", true},
		{"bath", false},
		{"c", false},
	}
	for _, tc := range testCases {
		ok, err := tr.HasPrefix([]rune(tc.prefix))
		if err != nil {
			t.Fatalf("HasPrefix(%q): %v", tc.prefix, err)
		}
		if ok != tc.expected {
			t.Errorf("HasPrefix(%q): expected %v, got %v", tc.prefix, tc.expected, ok)
		}
	}
}

func TestFreeze(t *testing.T) {
	tr := New[rune]()
	mustAdd(t, tr, "a")
	tr.Freeze()
	tr.Freeze()

	if !tr.Frozen() {
		t.Fatalf("expected trie to be frozen")
	}
	if err := tr.Add([]rune("b")); !errors.Is(err, ErrFrozen) {
		t.Errorf("Add after Freeze: expected ErrFrozen, got %v", err)
	}
	if !has(t, tr, "a") {
		t.Errorf("queries must keep working after Freeze")
	}
	if has(t, tr, "b") {
		t.Errorf("rejected word must not be present")
	}
}

func TestConcurrentReadersAfterFreeze(t *testing.T) {
	tr := New[rune]()
	for i := 0; i < 1000; i++ {
		mustAdd(t, tr, fmt.Sprintf("word%d", i))
	}
	tr.Freeze()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				idx := (i + worker) % 1000
				ok, err := tr.HasWord([]rune(fmt.Sprintf("word%d", idx)))
				if err != nil || !ok {
					errs <- fmt.Errorf("worker %d: word%d missing (%v)", worker, idx, err)
					return
				}
			}
		}(worker)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func BenchmarkHasWord(b *testing.B) {
	tr := New[rune]()
	for i := 0; i < 10000; i++ {
		_ = tr.Add([]rune(fmt.Sprintf("word%d", i)))
	}
	tr.Freeze()
	query := []rune("word5000")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tr.HasWord(query)
	}
}
