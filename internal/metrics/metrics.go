package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AuctionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "koimarket_auctions_created_total",
		Help: "Total number of auctions successfully created.",
	})

	BidsAcceptedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "koimarket_bids_accepted_total",
		Help: "Total number of bids accepted.",
	})

	BidsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "koimarket_bids_rejected_total",
		Help: "Total number of bids rejected, by reject reason.",
	},
		[]string{"reason"},
	)

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "koimarket_orders_created_total",
		Help: "Total number of orders successfully created.",
	})

	OrdersConfirmedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "koimarket_orders_confirmed_total",
		Help: "Total number of orders confirmed by buyers.",
	})

	OrdersShippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "koimarket_orders_shipped_total",
		Help: "Total number of orders marked as shipped.",
	})

	FeedbackLeftTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "koimarket_feedback_left_total",
		Help: "Total number of feedback entries left on delivered orders.",
	})

	InconsistentStatusTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "koimarket_auction_status_inconsistent_total",
		Help: "Times a stored auction status drifted from the time-derived one.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "koimarket_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	AuctionCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "koimarket_auction_cache_items",
		Help: "Current number of items in the active-auction cache.",
	})
)
