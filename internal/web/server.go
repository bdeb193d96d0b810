package web

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vitalsim/internal/logging"
	"vitalsim/internal/sim"
)

//go:embed templates/index.html
var content embed.FS

// Server exposes the dashboard page and the polling data endpoint.
type Server struct {
	Sim      *sim.Simulator
	tpl      *template.Template
	registry *prometheus.Registry
	metrics  *Metrics
	limiter  *IPRateLimiter
}

// indexData feeds the dashboard template.
type indexData struct {
	MonitorID      string
	PollIntervalMS int
	ChartPoints    int
	AlertThreshold int
}

// NewServer creates a dashboard server. registry may carry collectors from a
// PromWriter; if nil a fresh registry is used.
func NewServer(simulator *sim.Simulator, registry *prometheus.Registry) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	srvCfg := simulator.GetConfig().Server
	rps := srvCfg.DataRateRPS
	if rps <= 0 {
		rps = 5
	}
	burst := srvCfg.DataRateBurst
	if burst <= 0 {
		burst = 10
	}
	return &Server{
		Sim:      simulator,
		tpl:      tpl,
		registry: registry,
		metrics:  NewMetrics(registry),
		limiter:  NewIPRateLimiter(rps, burst),
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.Handle("/data", RateLimit(s.limiter, s.metrics.RateLimitDropped)(http.HandlerFunc(s.handleData)))
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

// Start runs the HTTP server until ctx is done, then shuts it down
// gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.metrics.Middleware(s.routes()),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.FromContext(ctx).Error("server shutdown failed", "err", err)
		}
	}()

	return srv.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// ServeMux sends every unregistered path here; anything but the root is
	// a 404 (delegated default behavior).
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := indexData{
		MonitorID:      s.Sim.DataSnapshot().MonitorID,
		PollIntervalMS: 1000,
		ChartPoints:    20,
		AlertThreshold: 50,
	}
	s.tpl.Execute(w, data)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.DataSnapshot())
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
