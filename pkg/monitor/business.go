package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics 储蓄业务指标
type BusinessMetrics struct {
	SessionsActive     prometheus.Gauge
	ActionsTotal       *prometheus.CounterVec
	ValidationTotal    *prometheus.CounterVec
	MarketDataErrors   *prometheus.CounterVec
	MarketDataDuration prometheus.Histogram
	ManifestsTotal     *prometheus.CounterVec
	ReceiptsTotal      *prometheus.CounterVec
}

// Business 全局业务指标，未初始化时为 nil，调用方需要判空
var Business *BusinessMetrics

// InitBusinessMetrics 初始化业务指标
func InitBusinessMetrics() {
	Business = &BusinessMetrics{
		SessionsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "savings_sessions_active",
			Help: "Number of open save form sessions",
		}),
		ActionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "savings_actions_total",
			Help: "Actions dispatched into save form stores",
		}, []string{"action"}),
		ValidationTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "savings_validation_total",
			Help: "Validation outcomes after each transition",
		}, []string{"type", "reason"}),
		MarketDataErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "savings_market_data_errors_total",
			Help: "Failed market data fetches",
		}, []string{"provider"}),
		MarketDataDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "savings_market_data_fetch_seconds",
			Help:    "Duration of market data fetches",
			Buckets: prometheus.DefBuckets,
		}),
		ManifestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "savings_manifests_total",
			Help: "Transaction manifests handed to the submission queue",
		}, []string{"type", "function"}),
		ReceiptsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "savings_receipts_total",
			Help: "Transaction receipts received from the broadcaster",
		}, []string{"status"}),
	}
}
