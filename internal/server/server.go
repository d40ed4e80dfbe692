// Package server exposes the tokenizer core over HTTP.
//
// The API is a single action endpoint, POST /api/tokenizer, taking a JSON
// body with an action name (tokenize|encode|decode|getVocab) and its payload,
// answering {"success": true, "result": ...} or {"success": false,
// "error": "..."}. GET /health reports liveness.
//
// One handler owns one tokenizer. Mutating actions are serialized with a
// mutex, so within this process encode-with-expansion never races itself;
// separate processes sharing a vocabulary file still follow last-save-wins.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/wordtok/wordtok/internal/config"
	"github.com/wordtok/wordtok/tokenizers/words"
	"github.com/wordtok/wordtok/vocab"
)

const (
	ActionTokenize = "tokenize"
	ActionEncode   = "encode"
	ActionDecode   = "decode"
	ActionGetVocab = "getVocab"
)

// request is the action envelope accepted by POST /api/tokenizer.
type request struct {
	Action string `json:"action"`
	Text   string `json:"text"`
	IDs    []int  `json:"ids"`
	Expand bool   `json:"expand"`
}

// response is the uniform reply envelope.
type response struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

type options struct {
	maxBodyBytes int64
}

func defaultOptions() options {
	return options{maxBodyBytes: 1 << 20}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxBodyBytes caps the accepted request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) { o.maxBodyBytes = n }
}

// handler holds the dependencies needed to serve requests.
type handler struct {
	mu   sync.Mutex
	tok  *words.Tokenizer
	opts options
}

// NewHandler returns an http.Handler serving /health and POST /api/tokenizer
// against the given tokenizer.
func NewHandler(tok *words.Tokenizer, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	h := &handler{tok: tok, opts: opts}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/api/tokenizer", h.handleAction)
	return mux
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleAction(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "request body is required")
		return
	}

	var req request
	body := http.MaxBytesReader(w, r.Body, h.opts.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	start := time.Now()
	result, err := h.dispatch(req)
	if err != nil {
		status := http.StatusInternalServerError
		if isCallerError(err) {
			status = http.StatusBadRequest
		}
		klog.Errorf("request %s action=%s failed after %s: %v", reqID, req.Action, time.Since(start), err)
		writeError(w, status, err.Error())
		return
	}

	klog.V(1).Infof("request %s action=%s ok in %s", reqID, req.Action, time.Since(start))
	writeJSON(w, http.StatusOK, response{Success: true, Result: result})
}

// dispatch runs one action under the handler mutex. Reads share the mutex
// too: they are cheap, and the tokenizer itself is not concurrency-safe.
func (h *handler) dispatch(req request) (any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch req.Action {
	case ActionTokenize:
		return map[string]any{"tokens": h.tok.Tokenize(req.Text)}, nil
	case ActionEncode:
		ids, err := h.tok.Encode(req.Text, req.Expand)
		if err != nil {
			return nil, err
		}
		return map[string]any{"ids": ids}, nil
	case ActionDecode:
		if req.IDs == nil {
			return nil, errors.Wrap(errInvalidInput, `decode requires an "ids" array`)
		}
		text, err := h.tok.Decode(req.IDs)
		if err != nil {
			return nil, err
		}
		return map[string]any{"text": text}, nil
	case ActionGetVocab:
		return map[string]any{
			"vocabulary": h.tok.Vocabulary().Entries(),
			"stats":      h.tok.Stats(),
		}, nil
	case "":
		return nil, errors.Wrap(errInvalidInput, `missing "action" field`)
	default:
		return nil, errors.Wrapf(errInvalidInput, "unknown action %q (want tokenize|encode|decode|getVocab)", req.Action)
	}
}

// errInvalidInput marks failures that are the caller's fault.
var errInvalidInput = errors.New("invalid input")

// isCallerError reports whether err should map to a 400 (bad input, or the
// vocabulary has not been built yet) rather than a 500.
func isCallerError(err error) bool {
	return errors.Is(err, errInvalidInput) || errors.Is(err, vocab.ErrUninitialized)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, response{Success: false, Error: msg})
}

// Server wires the handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg config.Config
	tok *words.Tokenizer
}

// New returns a Server for the given configuration and tokenizer.
func New(cfg config.Config, tok *words.Tokenizer) *Server {
	return &Server{cfg: cfg, tok: tok}
}

// Start serves until ctx is cancelled, then shuts down gracefully within the
// configured timeout.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Server.ListenAddr,
		Handler: NewHandler(s.tok, WithMaxBodyBytes(s.cfg.Server.MaxBodyBytes)),
	}

	errCh := make(chan error, 1)
	go func() {
		klog.Infof("listening on %s", s.cfg.Server.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "http server")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(s.cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	klog.Infof("server stopped")
	return nil
}
