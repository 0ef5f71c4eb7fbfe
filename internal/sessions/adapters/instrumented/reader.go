package instrumented

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"web-analytics-dashboard/internal/sessions/core/ports"
)

const (
	opStreamDomains = "stream_domains"
	opCountSessions = "count_sessions"
)

// InstrumentedReader records latency and failures of every store query made
// through the wrapped reader.
type InstrumentedReader struct {
	next     ports.SessionReaderPort
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

var _ ports.SessionReaderPort = (*InstrumentedReader)(nil)

func NewInstrumentedReader(next ports.SessionReaderPort, reg prometheus.Registerer) (*InstrumentedReader, error) {
	r := &InstrumentedReader{
		next: next,
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dashboard",
			Subsystem: "store",
			Name:      "query_duration_seconds",
			Help:      "Duration of analytics store queries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dashboard",
			Subsystem: "store",
			Name:      "query_errors_total",
			Help:      "Number of failed analytics store queries.",
		}, []string{"operation"}),
	}

	for _, c := range []prometheus.Collector{r.duration, r.errors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// StreamDomains only measures the time to open the cursor; iteration cost
// shows up in the request latency.
func (r *InstrumentedReader) StreamDomains(ctx context.Context) (ports.DomainBlockStream, error) {
	start := time.Now()
	stream, err := r.next.StreamDomains(ctx)
	r.observe(opStreamDomains, start, err)
	return stream, err
}

func (r *InstrumentedReader) CountSessions(ctx context.Context, domains []string) (uint64, error) {
	start := time.Now()
	count, err := r.next.CountSessions(ctx, domains)
	r.observe(opCountSessions, start, err)
	return count, err
}

func (r *InstrumentedReader) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

func (r *InstrumentedReader) observe(op string, start time.Time, err error) {
	r.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		r.errors.WithLabelValues(op).Inc()
	}
}
