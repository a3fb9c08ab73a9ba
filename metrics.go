package scipaper

import "github.com/prometheus/client_golang/prometheus"

// stats holds the optional per-backend call/error counters. A Library
// with no metrics registered (the default) pays no cost: every counter
// method call below is guarded on stats being non-nil.
type stats struct {
	calls  *prometheus.CounterVec
	errors *prometheus.CounterVec
}

// RegisterMetrics wires per-backend call/error counters into reg, adapted
// from the teacher's health/metrics server pattern
// (libaf/healthserver.Start's promhttp.Handler mount) but exposed as
// plain Prometheus collectors since this is a library, not a service with
// its own HTTP listener — the caller mounts /metrics itself.
func (lib *Library) RegisterMetrics(reg *prometheus.Registry) error {
	s := &stats{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scipaper",
			Name:      "backend_calls_total",
			Help:      "Number of operations invoked per backend and operation kind.",
		}, []string{"backend", "op"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scipaper",
			Name:      "backend_errors_total",
			Help:      "Number of operations that returned nil (no result) per backend and operation kind.",
		}, []string{"backend", "op"}),
	}
	if err := reg.Register(s.calls); err != nil {
		return err
	}
	if err := reg.Register(s.errors); err != nil {
		return err
	}
	lib.metrics = s
	return nil
}

func (s *stats) observe(backend, op string, hit bool) {
	if s == nil {
		return
	}
	s.calls.WithLabelValues(backend, op).Inc()
	if !hit {
		s.errors.WithLabelValues(backend, op).Inc()
	}
}
