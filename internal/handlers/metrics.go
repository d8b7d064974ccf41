package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	verdictCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riyadhre_moderation_verdicts_total",
		Help: "Group messages processed by the moderation pipeline, by outcome.",
	}, []string{"action", "reason"})

	listingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riyadhre_listings_created_total",
		Help: "Listings submitted through the intake conversation.",
	})

	listingsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riyadhre_listings_approved_total",
		Help: "Listings approved and published.",
	})

	listingsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riyadhre_listings_rejected_total",
		Help: "Listings rejected by an admin.",
	})
)
