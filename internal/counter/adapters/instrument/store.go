package instrument

import (
	"context"
	"time"

	"event-counter-service/internal/counter/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

// Field names for metric labels.
const (
	FieldMethod = "method"
	FieldStore  = "store"
)

const namespace = "event_counter"

// StoreMetrics holds the collectors shared by every instrumented store.
type StoreMetrics struct {
	ErrCount  *prometheus.CounterVec
	OpCount   *prometheus.CounterVec
	OpLatency *prometheus.HistogramVec
}

// NewStoreMetrics creates the store collectors and registers them with reg.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	fieldKeys := []string{FieldMethod, FieldStore}

	m := &StoreMetrics{
		ErrCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store_err",
			Name:      "count",
			Help:      "Number of failed store operations",
		}, fieldKeys),
		OpCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store_op",
			Name:      "count",
			Help:      "Number of store operations performed",
		}, fieldKeys),
		OpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store_op",
			Name:      "latency_seconds",
			Help:      "Distribution of store op duration in seconds",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, fieldKeys),
	}
	reg.MustRegister(m.ErrCount, m.OpCount, m.OpLatency)

	return m
}

// StoreMiddleware is a chainable behaviour modifier for ports.KeyValueStore.
type StoreMiddleware func(ports.KeyValueStore) ports.KeyValueStore

type instrumentStore struct {
	metrics *StoreMetrics
	next    ports.KeyValueStore
	store   string
}

// InstrumentStoreMiddleware records every call under the given store label.
func InstrumentStoreMiddleware(store string, metrics *StoreMetrics) StoreMiddleware {
	return func(next ports.KeyValueStore) ports.KeyValueStore {
		return &instrumentStore{
			metrics: metrics,
			next:    next,
			store:   store,
		}
	}
}

func (s *instrumentStore) GetInteger(ctx context.Context, key string) (value int64, err error) {
	defer func(begin time.Time) {
		s.track("GetInteger", begin, err)
	}(time.Now())

	return s.next.GetInteger(ctx, key)
}

func (s *instrumentStore) HasValue(ctx context.Context, key string) (ok bool, err error) {
	defer func(begin time.Time) {
		s.track("HasValue", begin, err)
	}(time.Now())

	return s.next.HasValue(ctx, key)
}

func (s *instrumentStore) SetInteger(ctx context.Context, key string, value int64) (err error) {
	defer func(begin time.Time) {
		s.track("SetInteger", begin, err)
	}(time.Now())

	return s.next.SetInteger(ctx, key, value)
}

func (s *instrumentStore) track(method string, begin time.Time, err error) {
	labels := prometheus.Labels{
		FieldMethod: method,
		FieldStore:  s.store,
	}

	if err != nil {
		s.metrics.ErrCount.With(labels).Inc()
	}

	s.metrics.OpCount.With(labels).Inc()
	s.metrics.OpLatency.With(labels).Observe(time.Since(begin).Seconds())
}
