package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riverrun/contextual-search/pkg/logger"
)

// StartServer starts an HTTP server exposing the crawler's, work queue's,
// and query processor's Prometheus collectors on /metrics, and returns a
// shutdown func the caller should defer. It also serves /healthz, a bare
// liveness probe distinct from /metrics: an orchestrator can poll it
// without having to parse the Prometheus text format just to know the
// process is up. The root page is a plain pointer to both rather than a
// dashboard — this engine has no UI to host here.
func StartServer(port int) (shutdown func(context.Context) error) {
	log := logger.WithComponent("metrics")
	server := newServer(port, mux())

	go func() {
		log.Info("metrics server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server error", "error", err)
		}
	}()

	return server.Shutdown
}

func mux() *http.ServeMux {
	m := http.NewServeMux()
	m.Handle("/metrics", Handler())
	m.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	m.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><h1>Contextual Search Engine</h1>`+
			`<p><a href="/metrics">/metrics</a> &middot; <a href="/healthz">/healthz</a></p></body></html>`)
	})
	return m
}

func newServer(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}
