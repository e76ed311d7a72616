package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration *prom.HistogramVec
	runDuration   prom.Histogram
	stageResults  *prom.CounterVec
	documents     prom.Counter
	linkChecks    *prom.CounterVec
	urlCacheHits  prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on the
// given registry (a fresh one when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docgen",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docgen",
			Name:      "run_duration_seconds",
			Help:      "Total run duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docgen",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		documents: prom.NewCounter(prom.CounterOpts{
			Namespace: "docgen",
			Name:      "documents_processed_total",
			Help:      "Documents fully processed by the pipeline",
		}),
		linkChecks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docgen",
			Name:      "link_checks_total",
			Help:      "External link liveness checks by outcome",
		}, []string{"outcome"}),
		urlCacheHits: prom.NewCounter(prom.CounterOpts{
			Namespace: "docgen",
			Name:      "url_cache_hits_total",
			Help:      "External link checks answered from the liveness cache",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.runDuration, pr.stageResults, pr.documents, pr.linkChecks, pr.urlCacheHits)
	return pr
}

func (pr *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	pr.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (pr *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	pr.runDuration.Observe(d.Seconds())
}

func (pr *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	pr.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (pr *PrometheusRecorder) IncDocumentProcessed() {
	pr.documents.Inc()
}

func (pr *PrometheusRecorder) IncLinkCheck(outcome string) {
	pr.linkChecks.WithLabelValues(outcome).Inc()
}

func (pr *PrometheusRecorder) IncURLCacheHit() {
	pr.urlCacheHits.Inc()
}
