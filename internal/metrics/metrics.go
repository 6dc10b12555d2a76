// Package metrics holds the Prometheus collectors of the simulator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sale outcomes.
const (
	OutcomeAuthorized = "authorized"
	OutcomeDeclined   = "processor_declined"
	OutcomeInvalid    = "validation_failed"
)

// Result labels for settlement and redirect counters.
const (
	ResultOK    = "ok"
	ResultFault = "fault"
)

var (
	SalesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gateway_sim",
			Name:      "sales_total",
			Help:      "Total sales submitted, by outcome.",
		},
		[]string{"outcome"},
	)

	SettlementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gateway_sim",
			Name:      "settlements_total",
			Help:      "Total submit-for-settlement calls, by result.",
		},
		[]string{"result"},
	)

	RedirectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gateway_sim",
			Name:      "transparent_redirects_total",
			Help:      "Total transparent redirect invocations, by result.",
		},
		[]string{"result"},
	)
)
