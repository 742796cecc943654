package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the API.
	Registry = prometheus.NewRegistry()

	// OrdersCreated counts orders registered with the backend.
	OrdersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "orders_created_total", Help: "Total orders created."},
	)
	// PaymentsProcessed counts successful payments.
	PaymentsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "payments_processed_total", Help: "Total successful payments."},
	)
	// PaymentsFailed counts declined or invalid payment attempts.
	PaymentsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "payments_failed_total", Help: "Total failed payment attempts."},
	)
	// PhotoAnalyses counts completed photo analysis runs.
	PhotoAnalyses = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "photo_analyses_total", Help: "Total photo analysis runs."},
	)
)

var regOnce sync.Once

// RegisterDefault registers collectors to the dedicated registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(OrdersCreated)
		Registry.MustRegister(PaymentsProcessed)
		Registry.MustRegister(PaymentsFailed)
		Registry.MustRegister(PhotoAnalyses)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
