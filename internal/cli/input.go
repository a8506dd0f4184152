// Package cli handles cmd line input for checking sentences interactively, mostly for DBG and testing
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/sylcheck/internal/utils"
	"github.com/bastiangx/sylcheck/pkg/spell"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	validStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	invalidStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"})
	skippedStyle = lipgloss.NewStyle().Faint(true)
)

// InputHandler reads sentences line by line and prints a verdict for every
// token. Lines starting with '?' list completions for the rest of the line.
type InputHandler struct {
	checker   *spell.Checker
	separator string
	limit     int
	noFilter  bool
	noColor   bool
	in        io.Reader
	out       io.Writer
	lines     int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(checker *spell.Checker, separator string, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		checker:   checker,
		separator: separator,
		limit:     limit,
		noFilter:  noFilter,
		in:        os.Stdin,
		out:       os.Stdout,
	}
}

// SetIO replaces stdin/stdout, used by tests.
func (h *InputHandler) SetIO(in io.Reader, out io.Writer) {
	h.in = in
	h.out = out
}

// SetNoColor disables verdict styling.
func (h *InputHandler) SetNoColor(noColor bool) {
	h.noColor = noColor
}

// Start runs the loop until stdin ends.
func (h *InputHandler) Start() error {
	log.Print("SylCheck CLI [BETA]")
	log.Print("type a sentence and press Enter to check it, '?prefix' to list words (Ctrl+C to exit):")

	scanner := bufio.NewScanner(h.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
	return scanner.Err()
}

// Lines returns the number of non-empty lines handled.
func (h *InputHandler) Lines() int {
	return h.lines
}

func (h *InputHandler) handleInput(line string) {
	h.lines++
	if prefix, ok := strings.CutPrefix(line, "?"); ok {
		h.handleComplete(strings.TrimSpace(prefix))
		return
	}

	start := time.Now()
	tokens := spell.Tokenize(line, h.separator)
	valid, invalid, skipped := 0, 0, 0
	for _, token := range tokens {
		if !h.noFilter && !utils.IsValidInput(token) {
			skipped++
			fmt.Fprintf(h.out, "%s\n", h.style(skippedStyle, fmt.Sprintf("'%s' skipped", token)))
			continue
		}
		if h.checker.Check(token) {
			valid++
			fmt.Fprintf(h.out, "%s\n", h.style(validStyle, fmt.Sprintf("'%s' correct: true", token)))
		} else {
			invalid++
			fmt.Fprintf(h.out, "%s\n", h.style(invalidStyle, fmt.Sprintf("'%s' correct: false", token)))
		}
	}
	log.Debugf("Took [ %v ] for %d tokens", time.Since(start), len(tokens))
	log.Debug("Line checked", "valid", valid, "invalid", invalid, "skipped", skipped)
}

func (h *InputHandler) handleComplete(prefix string) {
	if prefix == "" {
		log.Warn("Empty prefix")
		return
	}
	suggestions := h.checker.Complete(prefix, h.limit)
	if len(suggestions) == 0 {
		log.Warnf("No words found for prefix: '%s'", prefix)
		return
	}
	fmt.Fprintf(h.out, "Found %d words for prefix '%s':\n", len(suggestions), prefix)
	for i, s := range suggestions {
		fmt.Fprintf(h.out, "%2d. %s (seen: %s)\n", i+1, h.style(validStyle, s.Word), utils.FormatWithCommas(s.Count))
	}
}

func (h *InputHandler) style(st lipgloss.Style, s string) string {
	if h.noColor {
		return s
	}
	return st.Render(s)
}
