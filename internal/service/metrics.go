package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	quoteEstimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_quote_estimates_total",
			Help: "Total number of quote estimates and summaries produced",
		},
		[]string{"project_type"},
	)

	contactDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_contact_deliveries_total",
			Help: "Total number of contact email delivery attempts by outcome",
		},
		[]string{"kind", "provider", "status"},
	)
)
