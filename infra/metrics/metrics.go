// Package metrics exposes Prometheus instrumentation for the settlement
// paths, served on a dedicated listener so the API port stays clean.
package metrics

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	WalletActivationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gigmart_wallet_activations_total",
			Help: "Total number of wallet activations",
		},
	)

	WalletTopUpsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gigmart_wallet_topups_total",
			Help: "Total number of wallet top-ups",
		},
	)

	PurchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigmart_purchases_total",
			Help: "Total number of purchase attempts",
		},
		[]string{"result"},
	)

	TransactionsFinishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gigmart_transactions_finished_total",
			Help: "Total number of transactions marked finished",
		},
	)

	RefundRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gigmart_refund_requests_total",
			Help: "Total number of refund requests created",
		},
	)

	RefundsResolvedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigmart_refunds_resolved_total",
			Help: "Total number of refund requests resolved",
		},
		[]string{"outcome"},
	)
)

// RecordPurchase counts one purchase attempt with its result label
// ("settled", "insufficient_funds", "rejected" or "error").
func RecordPurchase(result string) {
	PurchasesTotal.WithLabelValues(result).Inc()
}

// RecordRefundResolved counts one resolved refund request.
func RecordRefundResolved(approved bool) {
	outcome := "rejected"
	if approved {
		outcome = "approved"
	}
	RefundsResolvedTotal.WithLabelValues(outcome).Inc()
}

// Serve exposes /metrics on its own port. It blocks, so callers run it in a
// goroutine.
func Serve(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	slog.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("metrics listener failed", "error", err)
	}
}
