// Package metrics defines the custom Prometheus metrics exposed by the API
// stub. It is the single source of truth for metric names, labels, and help
// strings; per-route HTTP metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agrowork_stub"

// RegistrationsTotal counts account registrations by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts by outcome ("ok" or "rejected").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// OrdersCreatedTotal counts orders successfully created.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of work orders created.",
	},
)

// TransitionsTotal counts status transitions applied, by resulting status.
var TransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Total number of order status transitions applied.",
	},
	[]string{"status"},
)

// TransitionsRejectedTotal counts transitions refused by the state machine.
var TransitionsRejectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_rejected_total",
		Help:      "Total number of order status transitions rejected as invalid.",
	},
)
