package site

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ziadkadry99/sidenav/internal/logging"
)

// ServerConfig holds preview server configuration.
type ServerConfig struct {
	Port     int
	Dir      string // directory containing the generated site
	AllowAll bool   // allow all CORS origins
	Open     bool   // open a browser once listening
}

// Server serves a generated site with its navigation API and live reload.
type Server struct {
	cfg        ServerConfig
	gen        *Generator
	hub        *Hub
	logger     *zap.Logger
	router     chi.Router
	httpServer *http.Server
}

// NewServer creates a preview server for the output of gen.
func NewServer(cfg ServerConfig, gen *Generator, hub *Hub, logger *zap.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		gen:    gen,
		hub:    hub,
		logger: logging.OrNop(logger),
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Websocket connections outlive any request timeout.
	if s.hub != nil {
		r.Get("/livereload", s.hub.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/api/manifest", s.handleManifest)
		r.Get("/api/search-index", s.handleSearchIndex)
		r.Get("/api/nav/*", s.handleNav)
		r.Handle("/*", http.FileServer(http.Dir(s.cfg.Dir)))
	})

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	result := s.gen.Last()
	if result == nil {
		http.Error(w, "site not built", http.StatusServiceUnavailable)
		return
	}
	respondJSON(w, http.StatusOK, NewManifest(result))
}

func (s *Server) handleSearchIndex(w http.ResponseWriter, r *http.Request) {
	result := s.gen.Last()
	if result == nil {
		http.Error(w, "site not built", http.StatusServiceUnavailable)
		return
	}
	entries := BuildSearchIndex(result.Pages)
	if entries == nil {
		entries = []SearchEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// handleNav returns the sidebar navigation of one page. The page is named
// by its HTML path; an empty path means index.html.
func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	result := s.gen.Last()
	if result == nil {
		http.Error(w, "site not built", http.StatusServiceUnavailable)
		return
	}
	path := strings.Trim(chi.URLParam(r, "*"), "/")
	if path == "" {
		path = "index.html"
	}
	page, ok := result.Page(path)
	if !ok {
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, page.Nav)
}

// Start listens on the configured port and serves until Shutdown. It
// returns nil after a graceful shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	url := fmt.Sprintf("http://localhost:%d", s.cfg.Port)
	s.logger.Info("serving documentation", zap.String("url", url), zap.String("dir", s.cfg.Dir))
	if s.cfg.Open {
		go openBrowser(url)
	}

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server and closes live reload clients.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.hub != nil {
		s.hub.Close()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
