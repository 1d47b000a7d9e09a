package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrderTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_transitions_total",
			Help: "Total number of order status transitions by target status",
		},
		[]string{"status"},
	)

	DeliveryTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_transitions_total",
			Help: "Total number of delivery status transitions by target status",
		},
		[]string{"status"},
	)

	DeliveryClaimsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_claims_total",
			Help: "Total number of delivery claim attempts by outcome",
		},
		[]string{"outcome"},
	)

	DispatchPoolSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dispatch_pool_size",
			Help: "Number of deliveries in the dispatch pool by delivery status",
		},
		[]string{"status"},
	)

	PoolAlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_pool_alerts_total",
			Help: "Total number of pool alerts published by kind",
		},
		[]string{"kind"},
	)
)
