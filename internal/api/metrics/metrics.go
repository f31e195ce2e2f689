// Package metrics defines all custom Prometheus metrics for the Promosynch
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "promosynch"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "not_found", "wrong_password"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// PromoterRegistrationsTotal counts created promoter accounts.
// Label:
//   - method: "password" or "google"
var PromoterRegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "promoter_registrations_total",
		Help:      "Total number of promoter accounts created, by auth method.",
	},
	[]string{"method"},
)

// ── Attendee metrics ──────────────────────────────────────────────────────────

// AttendeeRegistrationsTotal counts public attendee registrations.
// Label:
//   - result: "ok", "duplicate", "error"
var AttendeeRegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attendee_registrations_total",
		Help:      "Total number of attendee registration attempts, labelled by result.",
	},
	[]string{"result"},
)

// AttendeeRegistrationDuration measures the registration round trip,
// including the confirmation email call.
var AttendeeRegistrationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "attendee_registration_duration_seconds",
		Help:      "Duration of attendee registration including email delivery.",
		Buckets:   prometheus.DefBuckets,
	},
)
