package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/user/neongallery/internal/logging"
)

// refreshDelay batches bursts of file events into one rescan.
const refreshDelay = 100 * time.Millisecond

// Server serves an output root with caching disabled and keeps a catalogue of its
// images for /api/gallery.
type Server struct {
	root string
	log  *zap.Logger

	mu  sync.RWMutex
	cat Catalogue
}

// NewServer creates root if needed and scans it.
func NewServer(root string, log *zap.Logger) (*Server, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create gallery root: %w", err)
	}
	s := &Server{root: root, log: logging.OrNop(log)}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Catalogue returns the current catalogue.
func (s *Server) Catalogue() Catalogue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat
}

// Refresh rescans the root.
func (s *Server) Refresh() error {
	cat, err := Scan(s.root)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cat = cat
	s.mu.Unlock()
	s.log.Debug("gallery catalogue refreshed", zap.Int("images", cat.Len()), zap.String("version", cat.Version))
	return nil
}

// Handler serves /api/gallery and the files under the root.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/gallery", s.serveCatalogue)
	mux.Handle("/", http.FileServer(http.Dir(s.root)))
	return s.withHeaders(mux)
}

func (s *Server) withHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Cache-Control", "no-store, no-cache, must-revalidate")
		h.Set("Access-Control-Allow-Origin", "*")
		s.log.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) serveCatalogue(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Catalogue()); err != nil {
		s.log.Warn("encode catalogue", zap.Error(err))
	}
}

// Watch rescans the root whenever images or version.json change below it, until
// ctx is done.
func (s *Server) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	err = filepath.WalkDir(s.root, func(p string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		return w.Add(p)
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", s.root, err)
	}

	ticker := time.NewTicker(refreshDelay)
	defer ticker.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.Add(ev.Name); err != nil {
						s.log.Warn("watch new directory", zap.String("dir", ev.Name), zap.Error(err))
					}
					pending = true
				}
			}
			if relevant(ev) {
				pending = true
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("watcher error", zap.Error(err))

		case <-ticker.C:
			if !pending {
				continue
			}
			pending = false
			if err := s.Refresh(); err != nil {
				s.log.Warn("refresh catalogue", zap.Error(err))
			}
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		return true
	}
	name := filepath.Base(ev.Name)
	return strings.EqualFold(filepath.Ext(name), ".png") || name == VersionFile
}

// Serve serves on ln and watches the root until ctx is done, then shuts down,
// giving open requests up to shutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Watch(gctx)
	})
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.log.Info("serving gallery", zap.String("addr", ln.Addr().String()), zap.String("root", s.root))
	return s.Serve(ctx, ln, shutdownTimeout)
}
