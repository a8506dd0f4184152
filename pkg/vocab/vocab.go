/*
Package vocab produces the flat word stream the checker loads into its trie.

A vocabulary is a set of plain text lists, one entry per line, plus a suffix
table. An entry of the form base/class stands for every word base+suffix where
suffix runs over the suffixes of class in the table:

	བ/A   with   {"A": ["", "འི", "ར"]}   ->   བ, བའི, བར

Entries without the separator are emitted unchanged. Order is preserved and
duplicates are passed through.
*/
package vocab

import (
	"bufio"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// DefaultSeparator marks a suffix class reference inside an entry.
const DefaultSeparator = "/"

// DefaultLists are the word lists read by DefaultSource, in load order.
var DefaultLists = []string{
	"root.txt",
	"wasurs.txt",
	"rare.txt",
	"exceptions.txt",
	"proper-names.txt",
}

// DefaultSuffixFile is the suffix table read by DefaultSource.
const DefaultSuffixFile = "suffixes.json"

// ErrUnknownSuffixClass is returned when an entry references a class missing from the table.
var ErrUnknownSuffixClass = errors.New("unknown suffix class")

// Source describes where a vocabulary lives.
type Source struct {
	Dir        string
	Lists      []string
	SuffixFile string
	Separator  string
}

// DefaultSource returns the standard layout rooted at dir.
func DefaultSource(dir string) Source {
	lists := make([]string, len(DefaultLists))
	copy(lists, DefaultLists)
	return Source{
		Dir:        dir,
		Lists:      lists,
		SuffixFile: DefaultSuffixFile,
		Separator:  DefaultSeparator,
	}
}

func (s Source) path(name string) string {
	if filepath.IsAbs(name) || s.Dir == "" {
		return name
	}
	return filepath.Join(s.Dir, name)
}

// Entries reads every list in order and concatenates their entries.
func (s Source) Entries(fs afero.Fs) ([]string, error) {
	var entries []string
	for _, name := range s.Lists {
		path := s.path(name)
		if err := ValidateFile(fs, path, FormatList); err != nil {
			return nil, err
		}
		list, err := ReadList(fs, path)
		if err != nil {
			return nil, err
		}
		log.Debugf("Read %d entries from %s", len(list), path)
		entries = append(entries, list...)
	}
	return entries, nil
}

// Words reads the lists and the suffix table and returns the expanded words.
func (s Source) Words(fs afero.Fs) ([]string, error) {
	entries, err := s.Entries(fs)
	if err != nil {
		return nil, err
	}

	table := SuffixTable{}
	if s.SuffixFile != "" {
		path := s.path(s.SuffixFile)
		if err := ValidateFile(fs, path, FormatSuffixTable); err != nil {
			return nil, err
		}
		table, err = LoadSuffixTable(fs, path)
		if err != nil {
			return nil, err
		}
		log.Debugf("Loaded %d suffix classes from %s: %v", len(table), path, table.Classes())
	}

	sep := s.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	return Expand(entries, table, sep)
}

// ReadList returns the whitespace-trimmed lines of a list file. Blank lines
// are skipped since an empty word cannot be stored.
func ReadList(fs afero.Fs, path string) ([]string, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()

	var entries []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	skipped := 0
	for scanner.Scan() {
		entry := strings.TrimSpace(scanner.Text())
		if entry == "" {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", path, err)
	}
	if skipped > 0 {
		log.Debugf("Skipped %d blank lines in %s", skipped, path)
	}
	return entries, nil
}

// Expand resolves base<sep>class entries against table. The split happens at
// the first occurrence of sep. Expanded words that come out empty are dropped.
func Expand(entries []string, table SuffixTable, sep string) ([]string, error) {
	if sep == "" {
		return nil, fmt.Errorf("expand: empty separator")
	}

	words := make([]string, 0, len(entries))
	for i, entry := range entries {
		idx := strings.Index(entry, sep)
		if idx == -1 {
			words = append(words, entry)
			continue
		}

		base, class := entry[:idx], entry[idx+len(sep):]
		suffixes, ok := table[class]
		if !ok {
			return nil, fmt.Errorf("entry %d %q: class %q: %w", i+1, entry, class, ErrUnknownSuffixClass)
		}
		for _, suffix := range suffixes {
			if word := base + suffix; word != "" {
				words = append(words, word)
			}
		}
	}
	return words, nil
}
