// Package metrics provides Prometheus metrics for the custody server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PollCyclesTotal counts completed balance poll cycles
	PollCyclesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "custody_poll_cycles_total",
			Help: "Total number of completed balance poll cycles",
		},
	)

	// FeeTransfersTotal counts fee skim transfers by status
	FeeTransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custody_fee_transfers_total",
			Help: "Total number of platform fee transfers attempted",
		},
		[]string{"status"},
	)

	// FeesCollectedLamports accumulates skimmed platform fees
	FeesCollectedLamports = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "custody_fees_collected_lamports_total",
			Help: "Total lamports collected as platform fees",
		},
	)

	// RedemptionsTotal counts redemption attempts by status
	RedemptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custody_redemptions_total",
			Help: "Total number of redemption attempts",
		},
		[]string{"status"},
	)

	// DonationsIngestedTotal counts donation records created by sync cycles
	DonationsIngestedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "custody_donations_ingested_total",
			Help: "Total number of donation records ingested from chain history",
		},
	)

	// PollCycleDuration tracks poll cycle processing time
	PollCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "custody_poll_cycle_duration_seconds",
			Help:    "Balance poll cycle duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// WalletsPolled tracks how many wallets each cycle observed
	WalletsPolled = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "custody_wallets_polled",
			Help:    "Number of unredeemed wallets observed per poll cycle",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)
)
