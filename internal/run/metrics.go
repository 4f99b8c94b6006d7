package run

import (
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
)

type metrics struct {
	requests    atomic.Int64
	transcripts atomic.Int64
	errors      atomic.Int64
	hooksSent   atomic.Int64
	urlRejected atomic.Int64
}

func (m *metrics) reset() {
	m.requests.Store(0)
	m.transcripts.Store(0)
	m.errors.Store(0)
	m.hooksSent.Store(0)
	m.urlRejected.Store(0)
}

func (m *metrics) incRequests()    { m.requests.Add(1) }
func (m *metrics) incTranscripts() { m.transcripts.Add(1) }
func (m *metrics) incErrors()      { m.errors.Add(1) }
func (m *metrics) incHooksSent()   { m.hooksSent.Add(1) }
func (m *metrics) incURLRejected() { m.urlRejected.Add(1) }

func (s *Server) metricsServe(ctxDone <-chan struct{}, addr string, logger interface {
	Infof(string, ...any)
	Warnf(string, ...any)
}) {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "voxnote_requests_total %d\n", s.metrics.requests.Load())
		fmt.Fprintf(w, "voxnote_transcripts_total %d\n", s.metrics.transcripts.Load())
		fmt.Fprintf(w, "voxnote_errors_total %d\n", s.metrics.errors.Load())
		fmt.Fprintf(w, "voxnote_hooks_sent_total %d\n", s.metrics.hooksSent.Load())
		fmt.Fprintf(w, "voxnote_url_rejected_total %d\n", s.metrics.urlRejected.Load())
	})
	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	go func() {
		<-ctxDone
		_ = server.Close()
	}()
	logger.Infof("metrics listening on http://%s/metrics", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warnf("metrics server: %v", err)
	}
}
