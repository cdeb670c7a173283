package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gimlet-io/project-notifier/pkg/notifier"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatusNotifier handles a single parsed project item event
type StatusNotifier interface {
	Notify(ctx context.Context, event *notifier.StatusChangeEvent) notifier.Result
}

// Server receives Github webhook deliveries and notifies asynchronously
type Server struct {
	notifier      StatusNotifier
	webhookSecret []byte
	limiter       *rateLimiter

	inflight sync.WaitGroup
}

// New creates a webhook server. A rateLimitPerMin of 0 disables rate limiting.
func New(n StatusNotifier, webhookSecret string, rateLimitPerMin int) *Server {
	s := &Server{
		notifier:      n,
		webhookSecret: []byte(webhookSecret),
	}
	if rateLimitPerMin > 0 {
		s.limiter = newRateLimiter(rateLimitPerMin)
	}
	return s
}

func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	// no RealIP, the rate limiter keys on the TCP peer address
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Post("/hook", s.hook)

	return r
}

// Drain waits for the in-flight notifications to finish
func (s *Server) Drain() {
	s.inflight.Wait()
}

// Serve accepts deliveries on l until ctx is done.
// It then stops accepting, waits for the running handlers
// and drains the notifications they started before returning.
func (s *Server) Serve(ctx context.Context, l net.Listener, shutdownTimeout time.Duration) error {
	httpServer := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdown := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdown <- httpServer.Shutdown(shutdownCtx)
	}()

	err := httpServer.Serve(l)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// Serve returns as soon as Shutdown starts, handlers may still be running
	err = <-shutdown
	s.Drain()
	return err
}

func MetricsRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	return r
}
