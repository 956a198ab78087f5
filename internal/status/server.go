package status

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/common/expfmt"
)

// Server exposes the status registry and metric collector over HTTP:
// GET /status for the key/value page, GET /metrics for Prometheus text.
type Server struct {
	reg *Registry
	col *Collector
	mux *http.ServeMux
}

func NewServer(reg *Registry, col *Collector) *Server {
	s := &Server{reg: reg, col: col, mux: http.NewServeMux()}
	s.mux.HandleFunc("/status", s.status)
	s.mux.HandleFunc("/metrics", s.metrics)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, kv := range s.reg.Snapshot() {
		fmt.Fprintf(w, "%s: %s\n", kv.Key, kv.Value)
	}
}

func (s *Server) metrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	format := expfmt.NewFormat(expfmt.TypeTextPlain)
	w.Header().Set("Content-Type", string(format))
	enc := expfmt.NewEncoder(w, format)
	for _, mf := range s.col.Families() {
		if err := enc.Encode(mf); err != nil {
			slog.Error("status: encode metric family", "family", mf.GetName(), "err", err)
			return
		}
	}
}

// Serve runs an HTTP server for handler on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	slog.Info("status: listening", "addr", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
