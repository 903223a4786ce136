package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fallbackRepliesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "nelfi_client",
		Name:      "fallback_replies_total",
		Help:      "Replies served from the canned fallback corpus.",
	},
)
