package metrics

import "github.com/prometheus/client_golang/prometheus"

// Workspace Prometheus metrics.
var (
	SliceMaterializeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sliceboard",
			Name:      "slice_materialize_duration_seconds",
			Help:      "Slice materialization duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"slice"},
	)

	SliceCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sliceboard",
			Name:      "slice_cache_total",
			Help:      "Slice id cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	MetricComputeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sliceboard",
			Name:      "metric_compute_duration_seconds",
			Help:      "Metric computation duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"metric", "model"},
	)

	MetricComputeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sliceboard",
			Name:      "metric_compute_total",
			Help:      "Total metric computations",
		},
		[]string{"metric", "model", "status"},
	)

	ReportEvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sliceboard",
			Name:      "report_evaluations_total",
			Help:      "Report predicate evaluations by outcome",
		},
		[]string{"report", "status"},
	)

	DatasetRows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "sliceboard",
			Name:      "dataset_rows",
			Help:      "Number of rows in the loaded dataset",
		},
	)
)

var registered bool

// Register registers workspace Prometheus metrics. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(SliceMaterializeDuration)
	prometheus.MustRegister(SliceCacheTotal)
	prometheus.MustRegister(MetricComputeDuration)
	prometheus.MustRegister(MetricComputeTotal)
	prometheus.MustRegister(ReportEvaluationsTotal)
	prometheus.MustRegister(DatasetRows)
	registered = true
}
