package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records request-level and storefront domain metrics.
type StoreMetrics struct {
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	ordersCreated    *prometheus.CounterVec
	promoApplied     *prometheus.CounterVec
	receiptsPrinted  prometheus.Counter
	transmitFailures prometheus.Counter
}

// NewStoreMetrics registers the storefront metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests handled, by route and status class.",
	}, []string{"method", "route", "status"})
	ordersCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders placed, by order type and payment method.",
	}, []string{"order_type", "payment_method"})
	promoApplied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "promo_applications_total",
		Help: "Promo code application attempts, by outcome.",
	}, []string{"outcome"})
	receiptsPrinted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "receipts_printed_total",
		Help: "Receipts successfully transmitted to the printer.",
	})
	transmitFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "receipt_transmit_failures_total",
		Help: "Receipt transmissions aborted by a channel write failure.",
	})
	reg.MustRegister(requestDuration, requestTotal, ordersCreated, promoApplied, receiptsPrinted, transmitFailures)
	return &StoreMetrics{
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		ordersCreated:    ordersCreated,
		promoApplied:     promoApplied,
		receiptsPrinted:  receiptsPrinted,
		transmitFailures: transmitFailures,
	}
}

// ObserveRequest records one handled HTTP request.
func (m *StoreMetrics) ObserveRequest(method, route, status string, duration time.Duration) {
	if m == nil || m.requestDuration == nil {
		return
	}
	method = normalizeLabel(method)
	route = normalizeLabel(route)
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, route, normalizeLabel(status)).Inc()
}

// IncOrderCreated increments the order counter for the given type and payment method.
func (m *StoreMetrics) IncOrderCreated(orderType, paymentMethod string) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.WithLabelValues(normalizeLabel(orderType), normalizeLabel(paymentMethod)).Inc()
}

// IncPromoApplied increments the promo application counter for the given outcome.
func (m *StoreMetrics) IncPromoApplied(outcome string) {
	if m == nil || m.promoApplied == nil {
		return
	}
	m.promoApplied.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncReceiptPrinted increments the printed receipt counter.
func (m *StoreMetrics) IncReceiptPrinted() {
	if m == nil || m.receiptsPrinted == nil {
		return
	}
	m.receiptsPrinted.Inc()
}

// IncTransmitFailure increments the aborted transmission counter.
func (m *StoreMetrics) IncTransmitFailure() {
	if m == nil || m.transmitFailures == nil {
		return
	}
	m.transmitFailures.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
