// Package server exposes analysis runs over HTTP: a static front page and a
// POST /analyze endpoint that streams run events as server-sent events.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"

	"github.com/tradepulse/tradepulse/config"
	"github.com/tradepulse/tradepulse/internal/graph"
	"github.com/tradepulse/tradepulse/internal/orchestration"
	"github.com/tradepulse/tradepulse/models"
)

// streamPacing spaces SSE frames so the front page renders progress
// incrementally instead of in one burst.
const streamPacing = 100 * time.Millisecond

// EngineFactory builds the workflow engine for one request. Tests swap in a
// scripted engine here.
type EngineFactory func(ctx context.Context, rc *orchestration.RunConfig, cfg *config.Config) (orchestration.Engine, error)

// Server is the streaming HTTP variant.
type Server struct {
	cfgSource func() *config.Config
	router    *mux.Router
	staticDir string
	newEngine EngineFactory
	pacing    time.Duration
}

// Option customizes a Server.
type Option func(*Server)

// WithEngineFactory replaces the default eino-backed engine constructor.
func WithEngineFactory(f EngineFactory) Option {
	return func(s *Server) { s.newEngine = f }
}

// WithStaticDir points the front page routes at dir.
func WithStaticDir(dir string) Option {
	return func(s *Server) { s.staticDir = dir }
}

// WithPacing overrides the inter-frame delay.
func WithPacing(d time.Duration) Option {
	return func(s *Server) { s.pacing = d }
}

// WithConfigSource makes every request re-resolve its configuration, so a
// hot-reloaded config.Manager takes effect without a restart.
func WithConfigSource(source func() *config.Config) Option {
	return func(s *Server) { s.cfgSource = source }
}

// New builds the server and its routes.
func New(cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		cfgSource: func() *config.Config { return cfg },
		staticDir: "static",
		pacing:    streamPacing,
		newEngine: func(ctx context.Context, rc *orchestration.RunConfig, cfg *config.Config) (orchestration.Engine, error) {
			return graph.NewTradingGraph(ctx, rc, cfg)
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir))))
	r.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost)
	s.router = r
	return s
}

// Handler returns the routing entry point.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving on addr until the listener fails or ctx ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
}

// frame is one SSE payload. Type is message, report, complete, or error.
type frame struct {
	Type     string `json:"type"`
	Message  string `json:"message,omitempty"`
	Field    string `json:"field,omitempty"`
	Author   string `json:"author,omitempty"`
	Report   string `json:"report,omitempty"`
	Decision string `json:"decision,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "", "invalid request body")
		return
	}

	cfg := s.cfgSource()
	rc, err := orchestration.BuildRunConfig(&req, cfg)
	if err != nil {
		var verr *orchestration.ValidationError
		if errors.As(err, &verr) {
			writeJSONError(w, http.StatusBadRequest, verr.Field, verr.Error())
			return
		}
		writeJSONError(w, http.StatusBadRequest, "", err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSONError(w, http.StatusInternalServerError, "", "streaming unsupported")
		return
	}

	engine, err := s.newEngine(r.Context(), rc, cfg)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	orch := orchestration.New(engine,
		orchestration.WithPacing(s.pacing),
		orchestration.WithDebug(cfg.Debug))

	for ev := range orch.Stream(r.Context(), rc) {
		switch ev.Type {
		case orchestration.EventMessage:
			s.writeFrame(w, flusher, frame{Type: "message", Message: ev.Message})
		case orchestration.EventUpdate:
			s.writeFrame(w, flusher, frame{
				Type:    "report",
				Field:   ev.Update.Field,
				Author:  ev.Update.Author,
				Message: ev.Update.Body,
			})
		case orchestration.EventComplete:
			s.writeFrame(w, flusher, frame{
				Type:     "complete",
				Report:   ev.Report.Markdown(),
				Decision: string(ev.Decision),
			})
		case orchestration.EventError:
			s.writeFrame(w, flusher, frame{Type: "error", Error: ev.Err.Error()})
		}
	}
}

func (s *Server) writeFrame(w http.ResponseWriter, flusher http.Flusher, f frame) {
	b, err := json.Marshal(f)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", b)
	flusher.Flush()
}

func writeJSONError(w http.ResponseWriter, status int, field, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]string{"error": msg}
	if field != "" {
		body["field"] = field
	}
	_ = json.NewEncoder(w).Encode(body)
}
