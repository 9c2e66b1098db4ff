package prometheus

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"channelcall"
)

var _ channelcall.Observer = (*Observer)(nil)

// ObserverBuilder names the metrics of an Observer.
type ObserverBuilder struct {
	Namespace string
	Subsystem string
	Name      string
	Help      string
}

// Observer records latency and cleanup outcomes of invocations.
type Observer struct {
	latency      *prometheus.HistogramVec
	dispositions *prometheus.CounterVec
	suppressed   *prometheus.CounterVec
	failures     *prometheus.CounterVec
	active       prometheus.Gauge
}

// Build registers the metrics on reg.
func (b ObserverBuilder) Build(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: b.Namespace,
			Subsystem: b.Subsystem,
			Name:      b.Name + "_duration_seconds",
			Help:      b.Help,
			Buckets:   prometheus.DefBuckets,
		}, []string{"address"}),
		dispositions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: b.Namespace,
			Subsystem: b.Subsystem,
			Name:      b.Name + "_release_total",
			Help:      b.Help,
		}, []string{"address", "disposition"}),
		suppressed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: b.Namespace,
			Subsystem: b.Subsystem,
			Name:      b.Name + "_suppressed_close_failure_total",
			Help:      b.Help,
		}, []string{"address"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: b.Namespace,
			Subsystem: b.Subsystem,
			Name:      b.Name + "_error_total",
			Help:      b.Help,
		}, []string{"address"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: b.Namespace,
			Subsystem: b.Subsystem,
			Name:      b.Name + "_active",
			Help:      b.Help,
		}),
	}
	for _, c := range []prometheus.Collector{o.latency, o.dispositions, o.suppressed, o.failures, o.active} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *Observer) Begin(ctx context.Context, address string) (context.Context, func(channelcall.Report)) {
	o.active.Inc()
	return ctx, func(r channelcall.Report) {
		o.active.Dec()
		o.latency.WithLabelValues(address).Observe(r.Duration.Seconds())
		if r.Disposition != channelcall.DispositionNone {
			o.dispositions.WithLabelValues(address, r.Disposition.String()).Inc()
		}
		if r.Suppressed != nil {
			o.suppressed.WithLabelValues(address).Inc()
		}
		if r.Err != nil {
			o.failures.WithLabelValues(address).Inc()
		}
	}
}
