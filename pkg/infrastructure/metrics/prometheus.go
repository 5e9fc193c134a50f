package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/TFMV/azquery/pkg/errors"
)

// PrometheusCollector implements Collector on a private Prometheus registry.
// A CLI run has no scrape endpoint, so metrics are written out once at exit.
type PrometheusCollector struct {
	mu         sync.Mutex
	registry   *prometheus.Registry
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
	gauges     map[string]*prometheus.GaugeVec
}

var _ Collector = (*PrometheusCollector)(nil)

// NewPrometheusCollector creates a new Prometheus collector.
func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{
		registry:   prometheus.NewRegistry(),
		counters:   make(map[string]*prometheus.CounterVec),
		histograms: make(map[string]*prometheus.HistogramVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
	}
}

// IncrementCounter increments a counter metric.
func (p *PrometheusCollector) IncrementCounter(name string, labels ...string) {
	labelNames, labelValues := parseLabelPairs(labels)

	p.mu.Lock()
	counter, exists := p.counters[name]
	if !exists {
		counter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: name,
				Help: fmt.Sprintf("Counter for %s", name),
			},
			labelNames,
		)
		p.registry.MustRegister(counter)
		p.counters[name] = counter
	}
	p.mu.Unlock()

	counter.WithLabelValues(labelValues...).Inc()
}

// RecordHistogram records a value in a histogram metric.
func (p *PrometheusCollector) RecordHistogram(name string, value float64, labels ...string) {
	labelNames, labelValues := parseLabelPairs(labels)

	p.mu.Lock()
	histogram, exists := p.histograms[name]
	if !exists {
		histogram = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    name,
				Help:    fmt.Sprintf("Histogram for %s", name),
				Buckets: prometheus.DefBuckets,
			},
			labelNames,
		)
		p.registry.MustRegister(histogram)
		p.histograms[name] = histogram
	}
	p.mu.Unlock()

	histogram.WithLabelValues(labelValues...).Observe(value)
}

// RecordGauge records a gauge metric value.
func (p *PrometheusCollector) RecordGauge(name string, value float64, labels ...string) {
	labelNames, labelValues := parseLabelPairs(labels)

	p.mu.Lock()
	gauge, exists := p.gauges[name]
	if !exists {
		gauge = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: name,
				Help: fmt.Sprintf("Gauge for %s", name),
			},
			labelNames,
		)
		p.registry.MustRegister(gauge)
		p.gauges[name] = gauge
	}
	p.mu.Unlock()

	gauge.WithLabelValues(labelValues...).Set(value)
}

// StartTimer starts a timer whose Stop observes the histogram name.
func (p *PrometheusCollector) StartTimer(name string, labels ...string) Timer {
	return newStopwatch(func(seconds float64) {
		p.RecordHistogram(name, seconds, labels...)
	})
}

// WriteTextfile writes the registry to path in the text exposition format.
func (p *PrometheusCollector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return errors.Wrapf(err, errors.CodeOutput, "failed to write metrics file %s", path).
			WithDetail("path", path)
	}
	return nil
}

// parseLabelPairs parses label pairs from variadic string arguments.
// Expected format: "key1", "value1", "key2", "value2", ...
func parseLabelPairs(labels []string) ([]string, []string) {
	if len(labels)%2 != 0 {
		// odd trailing label is dropped
		labels = labels[:len(labels)-1]
	}

	labelNames := make([]string, 0, len(labels)/2)
	labelValues := make([]string, 0, len(labels)/2)

	for i := 0; i < len(labels); i += 2 {
		labelNames = append(labelNames, labels[i])
		labelValues = append(labelValues, labels[i+1])
	}

	return labelNames, labelValues
}
