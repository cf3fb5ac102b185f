package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "catalog"

type Metrics struct {
	registry      *prometheus.Registry
	fetchDuration prometheus.Histogram
	fetchTotal    *prometheus.CounterVec
	products      prometheus.Gauge
	requests      *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of product list fetches.",
			Buckets:   prometheus.DefBuckets,
		}),
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Product list fetches by result.",
		}, []string{"result"}),
		products: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "products",
			Help:      "Products in the loaded snapshot.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.fetchDuration,
		m.fetchTotal,
		m.products,
		m.requests,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveFetch(d time.Duration, nProducts int, err error) {
	m.fetchDuration.Observe(d.Seconds())
	if err != nil {
		m.fetchTotal.WithLabelValues("error").Inc()
		return
	}
	m.fetchTotal.WithLabelValues("ok").Inc()
	m.products.Set(float64(nProducts))
}

func (m *Metrics) ObserveRequest(route string, code int) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

var _ port.ProductsFetcher = (*InstrumentedFetcher)(nil)

type InstrumentedFetcher struct {
	next    port.ProductsFetcher
	metrics *Metrics
}

func InstrumentFetcher(next port.ProductsFetcher, m *Metrics) InstrumentedFetcher {
	return InstrumentedFetcher{next, m}
}

func (f InstrumentedFetcher) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	start := time.Now()
	ps, err := f.next.FetchProducts(ctx)
	f.metrics.ObserveFetch(time.Since(start), len(ps), err)
	return ps, err
}
