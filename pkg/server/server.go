// Package server implements msgpack IPC for spelling suggestions.
package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/dexgs/spellsuggest/internal/logger"
	"github.com/dexgs/spellsuggest/pkg/config"
	"github.com/dexgs/spellsuggest/pkg/dictionary"
	"github.com/dexgs/spellsuggest/pkg/suggest"
)

var log = logger.New("server")

// Server handles suggestion requests and dictionary management over a
// msgpack pipe on stdin/stdout.
type Server struct {
	orchestrator *suggest.Orchestrator
	runtime      *dictionary.RuntimeLoader
	config       *config.Config
	configPath   string

	decoder      *msgpack.Decoder
	writeMutex   sync.Mutex
	requestCount int64
}

// NewServer creates a server wired to orchestrator for suggestions and,
// optionally, runtime for load/unload/reload of languages.
func NewServer(orchestrator *suggest.Orchestrator, runtime *dictionary.RuntimeLoader, cfg *config.Config, configPath string) *Server {
	return &Server{
		orchestrator: orchestrator,
		runtime:      runtime,
		config:       cfg,
		configPath:   configPath,
		decoder:      msgpack.NewDecoder(os.Stdin),
	}
}

// reloadConfig reloads configuration from the TOML file.
func (s *Server) reloadConfig() error {
	newConfig, err := config.LoadConfig(s.configPath)
	if err != nil {
		log.Warnf("Failed to reload config, keeping current: %v", err)
		return err
	}
	s.config = newConfig
	log.Debugf("Config reloaded from: %s", s.configPath)
	return nil
}

// Start begins listening for requests until the client disconnects.
func (s *Server) Start() error {
	log.Debug("Starting MessagePack suggestion server")
	for {
		if err := s.processRequest(); err != nil {
			if err == io.EOF {
				log.Debug("Client disconnected")
				return nil
			}
			continue
		}
	}
}

// processRequest handles one request object off the wire.
func (s *Server) processRequest() error {
	s.requestCount++
	if s.config != nil && s.requestCount%100 == 0 {
		s.reloadConfig()
	}

	var raw map[string]interface{}
	if err := s.decoder.Decode(&raw); err != nil {
		return err
	}

	if action, ok := raw["action"].(string); ok {
		return s.processDictionaryRequest(raw, action)
	}
	return s.processSuggestRequest(raw)
}

func (s *Server) processSuggestRequest(raw map[string]interface{}) error {
	var req SuggestRequest
	if id, ok := raw["id"].(string); ok {
		req.ID = id
	}
	if bad, ok := raw["bad"].(string); ok {
		req.Bad = bad
	}
	if opts, ok := raw["opts"].(string); ok {
		req.Opts = opts
	}

	log.Debugf("suggest request id=%s bad=%q opts=%q", req.ID, req.Bad, req.Opts)

	start := time.Now()
	sugs, err := s.orchestrator.Suggest(context.Background(), req.Bad, req.Opts)
	elapsed := time.Since(start)
	if err != nil {
		kind := "unknown"
		if se, ok := err.(*suggest.Error); ok {
			kind = se.Kind.String()
		}
		return s.sendResponse(&SuggestError{ID: req.ID, Error: err.Error(), Kind: kind})
	}

	wire := make([]SuggestionWire, len(sugs))
	for i, sg := range sugs {
		wire[i] = SuggestionWire{Word: sg.Word, Score: sg.Score}
	}
	return s.sendResponse(&SuggestResponse{
		ID:          req.ID,
		Suggestions: wire,
		Count:       len(wire),
		TimeTakenUS: elapsed.Microseconds(),
	})
}

func (s *Server) processDictionaryRequest(raw map[string]interface{}, action string) error {
	var id, lang string
	if v, ok := raw["id"].(string); ok {
		id = v
	}
	if v, ok := raw["lang"].(string); ok {
		lang = v
	}

	if s.runtime == nil {
		return s.sendResponse(&DictionaryResponse{ID: id, Status: "error", Error: "dictionary management not available"})
	}

	switch action {
	case "load":
		if _, err := s.runtime.Load(lang); err != nil {
			return s.sendResponse(&DictionaryResponse{ID: id, Status: "error", Error: err.Error()})
		}
		return s.sendResponse(&DictionaryResponse{ID: id, Status: "ok"})
	case "unload":
		s.runtime.Unload(lang)
		return s.sendResponse(&DictionaryResponse{ID: id, Status: "ok"})
	case "reload":
		if _, err := s.runtime.Reload(lang); err != nil {
			return s.sendResponse(&DictionaryResponse{ID: id, Status: "error", Error: err.Error()})
		}
		return s.sendResponse(&DictionaryResponse{ID: id, Status: "ok"})
	case "get_info":
		return s.sendResponse(&DictionaryResponse{
			ID:        id,
			Status:    "ok",
			Available: s.runtime.AvailableLanguages(),
			Loaded:    s.runtime.LoadedLanguages(),
		})
	default:
		return s.sendResponse(&DictionaryResponse{ID: id, Status: "error", Error: fmt.Sprintf("unknown action: %s", action)})
	}
}

// sendResponse encodes and writes response to stdout atomically.
func (s *Server) sendResponse(response any) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()

	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(response); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}
