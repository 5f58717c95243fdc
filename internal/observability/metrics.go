package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "urban_fire"

// Metrics holds the Prometheus collectors for simulations and weather lookups.
type Metrics struct {
	Simulations        *prometheus.CounterVec // labels: outcome={success,invalid,error}
	SimulationDuration prometheus.Histogram
	SimulationSteps    prometheus.Histogram

	WeatherRequests    *prometheus.CounterVec // labels: source={live,mock,fallback}
	WeatherAPIDuration prometheus.Histogram
	WeatherCache       *prometheus.CounterVec // labels: result={hit,miss}
}

func newMetrics() *Metrics {
	return &Metrics{
		Simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulations_total",
			Help:      "Spread simulations by outcome.",
		}, []string{"outcome"}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulation_duration_seconds",
			Help:      "Time spent computing a spread simulation.",
			Buckets:   []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
		SimulationSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulation_steps",
			Help:      "Number of time steps requested per simulation.",
			Buckets:   []float64{1, 5, 10, 15, 20, 50, 100},
		}),
		WeatherRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_requests_total",
			Help:      "Weather lookups by data source.",
		}, []string{"source"}),
		WeatherAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "weather_api_duration_seconds",
			Help:      "OpenWeatherMap request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		WeatherCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_cache_total",
			Help:      "Weather cache lookups by result.",
		}, []string{"result"}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Simulations,
		m.SimulationDuration,
		m.SimulationSteps,
		m.WeatherRequests,
		m.WeatherAPIDuration,
		m.WeatherCache,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as
// many as they like without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
