package vocab

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/afero"
)

// SuffixTable maps a suffix class name to its ordered suffixes.
type SuffixTable map[string][]string

// LoadSuffixTable decodes a JSON object of class -> suffix array.
func LoadSuffixTable(fs afero.Fs, path string) (SuffixTable, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suffix table %s: %w", path, err)
	}

	var table SuffixTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse suffix table %s: %w", path, err)
	}
	if table == nil {
		table = SuffixTable{}
	}
	return table, nil
}

// Classes returns the class names in sorted order.
func (t SuffixTable) Classes() []string {
	classes := make([]string, 0, len(t))
	for class := range t {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}
