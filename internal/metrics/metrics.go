// Package metrics exports widget activity as Prometheus metrics.
//
// A Collector subscribes to the event bus; the widget never calls it
// directly. Handler serves /metrics and /healthz.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Iron-Ham/clap/internal/event"
	"github.com/Iron-Ham/clap/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "clap"

// Collector holds the widget metrics.
type Collector struct {
	registry *prometheus.Registry

	claps       *prometheus.CounterVec
	rejected    *prometheus.CounterVec
	resets      *prometheus.CounterVec
	builds      *prometheus.CounterVec
	replays     *prometheus.CounterVec
	uploads     *prometheus.CounterVec
	count       *prometheus.GaugeVec
	countTotal  *prometheus.GaugeVec
	mountedRole *prometheus.CounterVec

	bus    *event.Bus
	subIDs []string
}

// New creates a Collector registered on its own registry.
func New() *Collector {
	widget := []string{"widget_id"}
	c := &Collector{
		registry: prometheus.NewRegistry(),
		claps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "claps_total",
			Help:      "Claps that changed the widget state.",
		}, widget),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "claps_rejected_total",
			Help:      "Claps that left the counter unchanged.",
		}, []string{"widget_id", "reason"}),
		resets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "resets_total",
			Help:      "Resets applied.",
		}, widget),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "timeline_builds_total",
			Help:      "Animation timelines built.",
		}, widget),
		replays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "timeline_replays_total",
			Help:      "Animation replays.",
		}, widget),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "reset_uploads_total",
			Help:      "Reset uploads by phase.",
		}, []string{"widget_id", "phase"}),
		count: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "count",
			Help:      "Current user clap count.",
		}, widget),
		countTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "count_total",
			Help:      "Current total clap count.",
		}, widget),
		mountedRole: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "targets_mounted_total",
			Help:      "Visual targets registered, by role.",
		}, []string{"widget_id", "role"}),
	}

	c.registry.MustRegister(
		c.claps, c.rejected, c.resets, c.builds, c.replays,
		c.uploads, c.count, c.countTotal, c.mountedRole,
	)
	return c
}

// Registry returns the registry the collectors live on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Attach subscribes the Collector to bus. Attaching again moves it.
func (c *Collector) Attach(bus *event.Bus) {
	c.Detach()
	c.bus = bus
	c.subIDs = []string{
		bus.Subscribe(event.TypeClapAccepted, func(e event.Event) {
			ev := e.(event.ClapAcceptedEvent)
			c.claps.WithLabelValues(ev.WidgetID()).Inc()
			c.count.WithLabelValues(ev.WidgetID()).Set(float64(ev.State.Count))
			c.countTotal.WithLabelValues(ev.WidgetID()).Set(float64(ev.State.CountTotal))
		}),
		bus.Subscribe(event.TypeClapRejected, func(e event.Event) {
			ev := e.(event.ClapRejectedEvent)
			c.rejected.WithLabelValues(ev.WidgetID(), ev.Reason).Inc()
		}),
		bus.Subscribe(event.TypeResetApplied, func(e event.Event) {
			ev := e.(event.ResetAppliedEvent)
			c.resets.WithLabelValues(ev.WidgetID()).Inc()
			c.count.WithLabelValues(ev.WidgetID()).Set(float64(ev.State.Count))
			c.countTotal.WithLabelValues(ev.WidgetID()).Set(float64(ev.State.CountTotal))
		}),
		bus.Subscribe(event.TypeTargetMounted, func(e event.Event) {
			ev := e.(event.TargetMountedEvent)
			c.mountedRole.WithLabelValues(ev.WidgetID(), string(ev.Role)).Inc()
		}),
		bus.Subscribe(event.TypeTimelineBuilt, func(e event.Event) {
			ev := e.(event.TimelineBuiltEvent)
			c.builds.WithLabelValues(ev.WidgetID()).Inc()
		}),
		bus.Subscribe(event.TypeTimelineReplayed, func(e event.Event) {
			ev := e.(event.TimelineReplayedEvent)
			c.replays.WithLabelValues(ev.WidgetID()).Inc()
		}),
		bus.Subscribe(event.TypeUploadStarted, func(e event.Event) {
			ev := e.(event.UploadStartedEvent)
			c.uploads.WithLabelValues(ev.WidgetID(), "started").Inc()
		}),
		bus.Subscribe(event.TypeUploadCompleted, func(e event.Event) {
			ev := e.(event.UploadCompletedEvent)
			c.uploads.WithLabelValues(ev.WidgetID(), "completed").Inc()
		}),
	}
}

// Detach removes the Collector's subscriptions.
func (c *Collector) Detach() {
	if c.bus == nil {
		return
	}
	for _, id := range c.subIDs {
		c.bus.Unsubscribe(id)
	}
	c.bus = nil
	c.subIDs = nil
}

// Handler returns a router serving /metrics and /healthz.
func (c *Collector) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry}))
	return r
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (c *Collector) Serve(ctx context.Context, addr string, logger *logging.Logger) error {
	if logger == nil {
		logger = logging.NopLogger()
	}
	logger = logger.WithComponent("metrics")

	srv := &http.Server{
		Addr:              addr,
		Handler:           c.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting metrics server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown failed", "error", err)
			return err
		}
		logger.Info("metrics server stopped")
		return nil
	}
}
