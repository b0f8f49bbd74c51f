// Package dashboard serves the static viewer and the generated data file
// over HTTP for local inspection.
package dashboard

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	logger "github.com/sirupsen/logrus"
)

const (
	readHeaderTimeout = 5 * time.Second
)

// Server wraps the HTTP surface for the dashboard directory.
type Server struct {
	dir  string
	addr string
}

// NewServer creates a server rooted at dir (typically docs/).
func NewServer(dir, addr string) *Server {
	return &Server{dir: dir, addr: addr}
}

// Router builds the chi router: a health probe plus the static file tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	r.Handle("/*", http.FileServer(http.Dir(s.dir)))

	return r
}

// ListenAndServe blocks serving the dashboard until the listener fails.
func (s *Server) ListenAndServe() error {
	logger.Infof("Serving dashboard from %s on %s", s.dir, s.addr)

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("dashboard server failed: %w", err)
	}
	return nil
}
