package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/sylcheck/pkg/config"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestCliLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cli]\ndefault_limit = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	testCases := []struct {
		name     string
		args     []string
		expected int
	}{
		{"from config", nil, 1},
		{"explicit flag", []string{"-limit", "5"}, 5},
		{"explicit zero", []string{"-limit=0"}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fs := flag.NewFlagSet("sylcheck", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			limit := fs.Int("limit", 0, "")
			if err := fs.Parse(tc.args); err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := cliLimit(fs, *limit, cfg); got != tc.expected {
				t.Errorf("expected limit %d, got %d", tc.expected, got)
			}
		})
	}
}
