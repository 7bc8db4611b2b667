// Package metrics реализует syncer.Recorder на prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iudanet/fitsync/internal/client/entity"
	"github.com/iudanet/fitsync/internal/client/syncer"
)

const (
	namespace = "fitsync"
	subsystem = "client"

	outcomeOK = "ok"
)

// Recorder метрики мутаций клиента
type Recorder struct {
	started   *prometheus.CounterVec
	finished  *prometheus.CounterVec
	rollbacks *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	inFlight  *prometheus.GaugeVec
}

var _ syncer.Recorder = (*Recorder)(nil)

// New регистрирует метрики в reg. nil означает prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		started: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "mutations_started_total",
			Help:      "Mutations sent to the server",
		}, []string{"collection", "op"}),
		finished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "mutations_finished_total",
			Help:      "Resolved mutations by outcome class",
		}, []string{"collection", "op", "outcome"}),
		rollbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rollbacks_total",
			Help:      "Optimistic changes reverted after a failed remote call",
		}, []string{"collection", "op"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "remote_call_duration_seconds",
			Help:      "Latency of remote mutation calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collection", "op"}),
		inFlight: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "mutations_in_flight",
			Help:      "Accepted mutations not yet resolved",
		}, []string{"collection"}),
	}
}

func (r *Recorder) MutationStarted(collection string, op entity.OpKind) {
	r.started.WithLabelValues(collection, op.String()).Inc()
}

func (r *Recorder) MutationFinished(collection string, op entity.OpKind, class syncer.Class) {
	outcome := string(class)
	if outcome == "" {
		outcome = outcomeOK
	}
	r.finished.WithLabelValues(collection, op.String(), outcome).Inc()
}

func (r *Recorder) Rollback(collection string, op entity.OpKind) {
	r.rollbacks.WithLabelValues(collection, op.String()).Inc()
}

func (r *Recorder) RemoteLatency(collection string, op entity.OpKind, d time.Duration) {
	r.latency.WithLabelValues(collection, op.String()).Observe(d.Seconds())
}

func (r *Recorder) InFlight(collection string, delta int) {
	r.inFlight.WithLabelValues(collection).Add(float64(delta))
}
