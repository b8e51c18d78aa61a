package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	trainingRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "segmentation",
			Subsystem: "training",
			Name:      "runs_total",
			Help:      "Training pipeline runs by outcome.",
		},
		[]string{"status"},
	)

	trainingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "segmentation",
			Subsystem: "training",
			Name:      "duration_seconds",
			Help:      "Wall time of a training pipeline run.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		},
	)

	modelClusters = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "segmentation",
			Subsystem: "model",
			Name:      "clusters",
			Help:      "Number of clusters in the most recently trained model.",
		},
	)

	predictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "segmentation",
			Subsystem: "prediction",
			Name:      "requests_total",
			Help:      "Prediction requests by outcome.",
		},
		[]string{"status"},
	)

	assignments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "segmentation",
			Subsystem: "prediction",
			Name:      "cluster_assignments_total",
			Help:      "Predicted cluster labels.",
		},
		[]string{"cluster"},
	)
)

func init() {
	prometheus.MustRegister(trainingRuns, trainingDuration, modelClusters, predictions, assignments)
}

func ObserveTraining(seconds float64, k int, err error) {
	trainingDuration.Observe(seconds)
	if err != nil {
		trainingRuns.WithLabelValues("failed").Inc()
		return
	}
	trainingRuns.WithLabelValues("succeeded").Inc()
	modelClusters.Set(float64(k))
}

func ObservePrediction(cluster int, err error) {
	if err != nil {
		predictions.WithLabelValues("failed").Inc()
		return
	}
	predictions.WithLabelValues("succeeded").Inc()
	assignments.WithLabelValues(strconv.Itoa(cluster)).Inc()
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
