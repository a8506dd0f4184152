package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/sylcheck/internal/logger"
	"github.com/bastiangx/sylcheck/internal/utils"
	"github.com/bastiangx/sylcheck/pkg/config"
	"github.com/bastiangx/sylcheck/pkg/spell"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const defaultLimit = 10

// Server handles the IPC for syllable checks
type Server struct {
	checker  *spell.Checker
	config   *config.Config
	decoder  *msgpack.Decoder
	writer   *bufio.Writer
	encoder  *msgpack.Encoder
	log      *log.Logger
	requests int
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(checker *spell.Checker, cfg *config.Config) *Server {
	return NewServerWithIO(checker, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server on arbitrary streams
func NewServerWithIO(checker *spell.Checker, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bw := bufio.NewWriter(w)
	return &Server{
		checker: checker,
		config:  cfg,
		decoder: msgpack.NewDecoder(bufio.NewReader(r)),
		writer:  bw,
		encoder: msgpack.NewEncoder(bw),
		log:     logger.New("server"),
	}
}

// Start sends the ready status and serves requests until the input ends.
// A malformed message ends the loop since the stream can't be resynced.
func (s *Server) Start() error {
	s.log.Debug("Starting server")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("Input closed", "requests", s.requests)
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			if sendErr := s.sendError("", "invalid msgpack request", 400); sendErr != nil {
				return sendErr
			}
			return fmt.Errorf("decode request: %w", err)
		}

		s.requests++
		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

// Requests returns the number of requests served so far
func (s *Server) Requests() int {
	return s.requests
}

func (s *Server) handleRequest(req Request) error {
	action := req.Action
	if action == "" {
		action = ActionCheck
		if req.Prefix != "" && req.Text == "" && len(req.Words) == 0 {
			action = ActionComplete
		}
	}

	switch action {
	case ActionCheck:
		return s.handleCheck(req)
	case ActionComplete:
		return s.handleComplete(req)
	case ActionInfo:
		return s.handleInfo(req)
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", action), 400)
	}
}

func (s *Server) handleCheck(req Request) error {
	tokens := req.Words
	if len(tokens) == 0 {
		if req.Text == "" {
			s.log.Debug("Check request without text", "id", req.ID)
			return s.sendError(req.ID, "missing 't' or 'w' parameter", 400)
		}
		tokens = spell.Tokenize(req.Text, s.config.Check.TokenSeparator)
	}

	limits := s.config.Server
	if len(tokens) > limits.MaxTokens {
		return s.sendError(req.ID, fmt.Sprintf("too many tokens: %d > %d", len(tokens), limits.MaxTokens), 400)
	}
	for _, token := range tokens {
		if n := utf8.RuneCountInString(token); n > limits.MaxWordLen {
			return s.sendError(req.ID, fmt.Sprintf("token exceeds maximum length of %d runes", limits.MaxWordLen), 400)
		}
	}

	start := time.Now()
	results := s.checker.CheckTokens(tokens)
	elapsed := time.Since(start)

	resp := CheckResponse{
		ID:        req.ID,
		Results:   make([]TokenResult, 0, len(results)),
		Count:     len(results),
		TimeTaken: elapsed.Microseconds(),
	}
	for _, r := range results {
		if !r.Valid {
			resp.Invalid++
		}
		resp.Results = append(resp.Results, TokenResult{Word: r.Token, Valid: r.Valid})
	}
	return s.send(resp)
}

func (s *Server) handleComplete(req Request) error {
	if req.Prefix == "" {
		return s.sendError(req.ID, "missing 'p' parameter", 400)
	}
	if n := utf8.RuneCountInString(req.Prefix); n > s.config.Server.MaxWordLen {
		return s.sendError(req.ID, fmt.Sprintf("prefix exceeds maximum length of %d runes", s.config.Server.MaxWordLen), 400)
	}

	limit := req.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > s.config.Server.MaxLimit {
		limit = s.config.Server.MaxLimit
	}

	start := time.Now()
	suggestions := s.checker.Complete(req.Prefix, limit)
	elapsed := time.Since(start)

	ranks := utils.RankList(len(suggestions))
	resp := CompleteResponse{
		ID:          req.ID,
		Suggestions: make([]CompletionSuggestion, len(suggestions)),
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	}
	for i, sg := range suggestions {
		resp.Suggestions[i] = CompletionSuggestion{Word: sg.Word, Rank: ranks[i]}
	}
	return s.send(resp)
}

func (s *Server) handleInfo(req Request) error {
	stats := s.checker.Stats()
	return s.send(InfoResponse{
		ID:       req.ID,
		Status:   "ok",
		Words:    stats["words"],
		Nodes:    stats["nodes"],
		MaxDepth: stats["maxDepth"],
		Rejected: stats["rejected"],
		Mode:     s.checker.Mode().String(),
		Frozen:   stats["frozen"] == 1,
	})
}

// send encodes one response and flushes it to the client
func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return err
	}
	return s.writer.Flush()
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
