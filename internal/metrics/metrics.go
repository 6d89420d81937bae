package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Poll kinds.
const (
	PollData     = "data"
	PollTraining = "training"
)

// Collector counts Cortex requests, RPC errors and stream receives.
// A nil *Collector is valid and records nothing.
type Collector struct {
	requests     *prometheus.CounterVec
	rpcErrors    *prometheus.CounterVec
	failures     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	pollReceives *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg skips registration.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cortex",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "JSON-RPC requests that received a response, by method.",
		}, []string{"method"}),
		rpcErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cortex",
			Subsystem: "client",
			Name:      "rpc_errors_total",
			Help:      "JSON-RPC error responses, by method and error code.",
		}, []string{"method", "code"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cortex",
			Subsystem: "client",
			Name:      "transport_failures_total",
			Help:      "Requests that failed before a response was decoded, by method.",
		}, []string{"method"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cortex",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Round-trip latency of JSON-RPC requests, by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		pollReceives: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cortex",
			Subsystem: "client",
			Name:      "poll_receives_total",
			Help:      "Blocking receives performed by the stream pollers, by poll kind.",
		}, []string{"kind"}),
	}

	if reg == nil {
		return c, nil
	}

	for _, collector := range []prometheus.Collector{c.requests, c.rpcErrors, c.failures, c.latency, c.pollReceives} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ObserveRequest records one round trip.
func (c *Collector) ObserveRequest(method string, started time.Time) {
	if c == nil {
		return
	}

	c.requests.WithLabelValues(method).Inc()
	c.latency.WithLabelValues(method).Observe(time.Since(started).Seconds())
}

// ObserveRPCError records one error response.
func (c *Collector) ObserveRPCError(method string, code int) {
	if c == nil {
		return
	}

	c.rpcErrors.WithLabelValues(method, strconv.Itoa(code)).Inc()
}

// ObserveFailure records a request that failed on the transport.
func (c *Collector) ObserveFailure(method string) {
	if c == nil {
		return
	}

	c.failures.WithLabelValues(method).Inc()
}

// ObservePollReceive records one blocking receive of a poller.
func (c *Collector) ObservePollReceive(kind string) {
	if c == nil {
		return
	}

	c.pollReceives.WithLabelValues(kind).Inc()
}

// Requests returns the request counter for tests and status output.
func (c *Collector) Requests() *prometheus.CounterVec {
	return c.requests
}

// PollReceives returns the poll receive counter for tests and status output.
func (c *Collector) PollReceives() *prometheus.CounterVec {
	return c.pollReceives
}

// RPCErrors returns the RPC error counter for tests and status output.
func (c *Collector) RPCErrors() *prometheus.CounterVec {
	return c.rpcErrors
}

// Failures returns the transport failure counter.
func (c *Collector) Failures() *prometheus.CounterVec {
	return c.failures
}
