package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qwiky_admin_client",
			Name:      "requests_total",
			Help:      "Admin API calls by operation and outcome (success, server, network, request).",
		},
		[]string{"operation", "outcome"},
	)

	tokenStoreFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qwiky_admin_client",
			Name:      "token_store_failures_total",
			Help:      "Token store operations that returned an error.",
		},
		[]string{"op"},
	)
)
