package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/domain"
)

const metricsNamespace = "codejudge"

var _ primary.JudgeMetrics = (*Prometheus)(nil)

var (
	// 1ms -> 10s
	timeBuckets = []float64{
		0.001, 0.002, 0.005, 0.010, 0.025, 0.050, 0.1, 0.2,
		0.4, 0.6, 0.8, 1.0, 1.5, 2, 5, 10,
	}

	// 1MB -> 2GB
	memoryBuckets = prometheus.ExponentialBuckets(1, 2, 12)
)

// Prometheus records judging telemetry as Prometheus collectors.
type Prometheus struct {
	executions    *prometheus.CounterVec
	execTime      *prometheus.HistogramVec
	execMemory    *prometheus.HistogramVec
	verdicts      *prometheus.CounterVec
	judgeDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "executions_total",
			Help:      "Number of executor runs by outcome",
		}, []string{"language", "outcome"}),
		execTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "execution_time_seconds",
			Help:      "Histogram for the wall time of a single run",
			Buckets:   timeBuckets,
		}, []string{"language"}),
		execMemory: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "execution_memory_megabytes",
			Help:      "Histogram for the peak memory of a single run",
			Buckets:   memoryBuckets,
		}, []string{"language"}),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "verdicts_total",
			Help:      "Number of judged submissions by status",
		}, []string{"language", "status"}),
		judgeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "judge_duration_seconds",
			Help:      "Histogram for the time spent judging a submission",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
		}, []string{"status"}),
	}
	reg.MustRegister(p.executions, p.execTime, p.execMemory, p.verdicts, p.judgeDuration)
	return p
}

func (p *Prometheus) ObserveExecution(language string, outcome *domain.ExecutionOutcome) {
	p.executions.WithLabelValues(language, outcomeLabel(outcome)).Inc()
	p.execTime.WithLabelValues(language).Observe(outcome.ElapsedTimeMs / 1000)
	p.execMemory.WithLabelValues(language).Observe(outcome.PeakMemoryMb)
}

func (p *Prometheus) ObserveVerdict(language string, status domain.Status, elapsed time.Duration) {
	p.verdicts.WithLabelValues(language, status.String()).Inc()
	p.judgeDuration.WithLabelValues(status.String()).Observe(elapsed.Seconds())
}

func outcomeLabel(o *domain.ExecutionOutcome) string {
	switch {
	case o.TimedOut:
		return "timeout"
	case o.Error != "":
		return "fault"
	default:
		return "ok"
	}
}
