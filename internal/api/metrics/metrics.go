// Package metrics defines and registers all custom Prometheus metrics for
// the admin portal. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry via promauto at
// package initialisation; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "admin_portal"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts successful logins.
// Label:
//   - role: the role selected at login ("admin", "director", "dean", "faculty")
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of successful logins, by selected role.",
	},
	[]string{"role"},
)

// LoginFailuresTotal counts failed login attempts.
// Label:
//   - reason: "invalid_credentials", "account_inactive" or "role_mismatch"
var LoginFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Total number of failed login attempts, by failure reason.",
	},
	[]string{"reason"},
)

// ── Account management metrics ────────────────────────────────────────────────

// UsersCreatedTotal counts accounts created through the admin panel.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created.",
	},
)

// UsersDeletedTotal counts accounts permanently deleted.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of user accounts deleted.",
	},
)

// ── Photo metrics ─────────────────────────────────────────────────────────────

// PhotoUploadsTotal counts photo uploads that completed successfully.
var PhotoUploadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "photo_uploads_total",
		Help:      "Total number of user photos uploaded.",
	},
)
