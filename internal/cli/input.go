// Package cli provides an interactive shell for exercising the
// suggestion engine: type a bad word, see ranked corrections.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dexgs/spellsuggest/internal/logger"
	"github.com/dexgs/spellsuggest/pkg/suggest"
)

// InputHandler drives the interactive suggestion loop: it reads one bad
// word per line from stdin, asks the Orchestrator for corrections, and
// prints them ranked by score.
type InputHandler struct {
	orchestrator *suggest.Orchestrator
	mode         string
	showScores   bool
	colorize     bool
	requestCount int
	log          *log.Logger
}

// NewInputHandler builds a shell over orchestrator. mode is the default
// 'spellsuggest' option string used when a line doesn't override it with
// a trailing "  opts:<clause>" suffix.
func NewInputHandler(orchestrator *suggest.Orchestrator, mode string, showScores, colorize bool) *InputHandler {
	return &InputHandler{
		orchestrator: orchestrator,
		mode:         mode,
		showScores:   showScores,
		colorize:     colorize,
		log:          logger.Default("cli"),
	}
}

// Start begins the REPL. It loops until stdin closes or errors.
func (h *InputHandler) Start() error {
	h.log.Print("spellsuggest CLI")
	h.log.Print("type a word and press Enter to see corrections (Ctrl+C to exit):")
	reader := bufio.NewReader(os.Stdin)

	for {
		h.log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleLine(line)
	}
}

// handleLine splits an optional "opts:<clause>" suffix off the typed
// word and runs one suggestion request.
func (h *InputHandler) handleLine(line string) {
	h.requestCount++
	word, opts := line, h.mode
	if idx := strings.Index(line, "  "); idx >= 0 {
		word = strings.TrimSpace(line[:idx])
		opts = strings.TrimPrefix(strings.TrimSpace(line[idx:]), "opts:")
	}

	start := time.Now()
	sugs, err := h.orchestrator.Suggest(context.Background(), word, opts)
	elapsed := time.Since(start)

	if err != nil {
		h.log.Errorf("suggest %q: %v", word, err)
		return
	}
	if len(sugs) == 0 {
		h.log.Warnf("no suggestions for %q (%v)", word, elapsed)
		return
	}

	h.log.Printf("%d suggestion(s) for %q (%v):", len(sugs), word, elapsed)
	for i, s := range sugs {
		display := s.Word
		if h.colorize {
			display = fmt.Sprintf("\033[38;5;75m%s\033[0m", s.Word)
		}
		if h.showScores {
			h.log.Printf("%2d. %-30s (score: %d)", i+1, display, s.Score)
		} else {
			h.log.Printf("%2d. %s", i+1, display)
		}
	}
}
