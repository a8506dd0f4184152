package vocab

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// FileFormat represents the vocabulary file kinds
type FileFormat int

const (
	FormatUnknown     FileFormat = iota
	FormatList                   // Plain text, one entry per line
	FormatSuffixTable            // JSON object of suffix classes
)

// ErrInvalidFormat is returned when a file does not look like the expected format.
var ErrInvalidFormat = errors.New("invalid vocabulary file")

// FormatInfo contains metadata about a vocabulary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatList: {
		Format:      FormatList,
		Description: "Word List",
		Extensions:  []string{".txt"},
		MinSize:     0, // Empty lists are allowed
	},
	FormatSuffixTable: {
		Format:      FormatSuffixTable,
		Description: "Suffix Table",
		Extensions:  []string{".json"},
		MinSize:     2, // "{}"
	},
}

// ValidateFile checks that path exists and matches the expected format
func ValidateFile(fs afero.Fs, path string, expected FileFormat) error {
	info, exists := supportedFormats[expected]
	if !exists {
		return fmt.Errorf("unknown format: %v: %w", expected, ErrInvalidFormat)
	}

	stat, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s %s: %w", info.Description, path, err)
	}
	if stat.IsDir() {
		return fmt.Errorf("%s %s is a directory: %w", info.Description, path, ErrInvalidFormat)
	}
	if stat.Size() < info.MinSize {
		return fmt.Errorf("%s %s is too small (%d bytes, minimum %d): %w",
			info.Description, path, stat.Size(), info.MinSize, ErrInvalidFormat)
	}

	if DetectFormat(path) != expected {
		return fmt.Errorf("%s %s has extension %q, expected %v: %w",
			info.Description, path, filepath.Ext(path), info.Extensions, ErrInvalidFormat)
	}

	log.Debugf("%s %s validated (%d bytes)", info.Description, path, stat.Size())
	return nil
}

// DetectFormat guesses the format from the file extension
func DetectFormat(path string) FileFormat {
	ext := strings.ToLower(filepath.Ext(path))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if ext == e {
				return format
			}
		}
	}
	return FormatUnknown
}
