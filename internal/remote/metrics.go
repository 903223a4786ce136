package remote

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK           = "ok"
	outcomeServiceError = "service_error"
	outcomeUnreachable  = "unreachable"
)

var sendTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "nelfi_client",
		Name:      "chat_requests_total",
		Help:      "Chat requests by outcome.",
	},
	[]string{"outcome"},
)
