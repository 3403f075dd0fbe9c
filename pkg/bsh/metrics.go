package bsh

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
)

// Call outcomes recorded by Metrics.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics records call outcomes and dispatch latency as Prometheus series.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg when it is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: constants.MetricsNamespace,
				Name:      "calls_total",
				Help:      "Engine calls by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: constants.MetricsNamespace,
				Name:      "dispatch_duration_seconds",
				Help:      "Time spent in the transport per request",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "status"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.calls, m.duration)
	}

	return m
}

// Calls exposes the outcome counter.
func (m *Metrics) Calls() *prometheus.CounterVec {
	return m.calls
}

// Duration exposes the dispatch latency histogram.
func (m *Metrics) Duration() *prometheus.HistogramVec {
	return m.duration
}

// PostInterceptor counts successful calls. It never replaces the envelope.
func (m *Metrics) PostInterceptor() PostInterceptor {
	return func(_ context.Context, env *Envelope, req *Request) *Envelope {
		operation := env.OperationName
		if operation == "" {
			operation = req.OperationName
		}

		m.calls.WithLabelValues(operationLabel(operation), OutcomeSuccess).Inc()

		return nil
	}
}

// ErrorInterceptor counts failed calls. It never replaces the error.
func (m *Metrics) ErrorInterceptor() ErrorInterceptor {
	return func(_ context.Context, _ *Error, _ *Envelope, req *Request) *Error {
		m.calls.WithLabelValues(operationLabel(req.OperationName), OutcomeError).Inc()

		return nil
	}
}

// InstrumentTransport times every dispatch through next.
func (m *Metrics) InstrumentTransport(next Transport) Transport {
	return TransportFunc(func(ctx context.Context, req *Request) (*RawResponse, error) {
		start := time.Now()
		resp, err := next.Do(ctx, req)

		status := "transport_error"
		if err == nil && resp != nil {
			status = strconv.Itoa(resp.StatusCode)
		}

		m.duration.WithLabelValues(req.Method, status).Observe(time.Since(start).Seconds())

		return resp, err
	})
}

func operationLabel(operation string) string {
	if operation == "" {
		return "unknown"
	}

	return operation
}
