package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "carwash_"

// KPIEmitter receives fire-and-forget signals that business KPIs changed.
// Emission must never fail the operation that triggered it.
type KPIEmitter interface {
	OrderCompleted()
	OrderCancelled()
	PaymentRecorded(currency string, amountUSD float64)
	EarningsPaid(count int64)
}

// PrometheusEmitter exposes the KPI signals as Prometheus counters
type PrometheusEmitter struct {
	ordersCompleted prometheus.Counter
	ordersCancelled prometheus.Counter
	paymentsTotal   *prometheus.CounterVec
	paymentsUSD     *prometheus.CounterVec
	earningsPaid    prometheus.Counter
}

// NewPrometheusEmitter registers the KPI counters with the default registry
func NewPrometheusEmitter() *PrometheusEmitter {
	e := &PrometheusEmitter{
		ordersCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "orders_completed_total",
			Help: "Orders promoted to COMPLETED",
		}),
		ordersCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "orders_cancelled_total",
			Help: "Orders transitioned to CANCELLED",
		}),
		paymentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricPrefix + "payments_recorded_total",
			Help: "Payment ledger entries recorded",
		}, []string{"currency"}),
		paymentsUSD: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricPrefix + "payments_usd_total",
			Help: "Settlement-currency value of recorded payments",
		}, []string{"currency"}),
		earningsPaid: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "earnings_paid_total",
			Help: "Washer earnings marked as paid",
		}),
	}

	prometheus.MustRegister(
		e.ordersCompleted,
		e.ordersCancelled,
		e.paymentsTotal,
		e.paymentsUSD,
		e.earningsPaid,
	)
	return e
}

func (e *PrometheusEmitter) OrderCompleted() {
	e.ordersCompleted.Inc()
}

func (e *PrometheusEmitter) OrderCancelled() {
	e.ordersCancelled.Inc()
}

func (e *PrometheusEmitter) PaymentRecorded(currency string, amountUSD float64) {
	e.paymentsTotal.WithLabelValues(currency).Inc()
	e.paymentsUSD.WithLabelValues(currency).Add(amountUSD)
}

func (e *PrometheusEmitter) EarningsPaid(count int64) {
	e.earningsPaid.Add(float64(count))
}

// Handler returns the scrape endpoint handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// NoopEmitter discards all KPI signals. Used in tests.
type NoopEmitter struct{}

func (NoopEmitter) OrderCompleted() {}

func (NoopEmitter) OrderCancelled() {}

func (NoopEmitter) PaymentRecorded(currency string, amountUSD float64) {}

func (NoopEmitter) EarningsPaid(count int64) {}
