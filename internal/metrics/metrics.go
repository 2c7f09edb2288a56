// Package metrics defines the Prometheus instruments for tool calls and
// crop results.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "image_crop_mcp"

// Tool call metrics
var (
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Total number of MCP tool calls",
		},
		[]string{"tool", "status"},
	)

	ToolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_call_duration_seconds",
			Help:      "MCP tool call latency distribution",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"tool"},
	)
)

// Image metrics
var (
	CropOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "crop_outcomes_total",
			Help:      "Total number of per-file crop outcomes",
		},
		[]string{"status"},
	)

	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of image errors by kind",
		},
		[]string{"kind"},
	)
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ObserveToolCall records one finished tool call.
func ObserveToolCall(tool string, start time.Time, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	ToolCallsTotal.WithLabelValues(tool, status).Inc()
	ToolCallDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
}

// ObserveCrop records the result of cropping one file. kind is the error
// category and is ignored on success.
func ObserveCrop(success bool, kind string) {
	if success {
		CropOutcomesTotal.WithLabelValues(StatusSuccess).Inc()
		return
	}
	CropOutcomesTotal.WithLabelValues(StatusError).Inc()
	ObserveError(kind)
}

// ObserveError counts an image error of the given kind.
func ObserveError(kind string) {
	if kind == "" {
		return
	}
	ErrorsTotal.WithLabelValues(kind).Inc()
}
