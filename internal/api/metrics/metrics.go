// Package metrics defines and registers all custom Prometheus metrics for the
// dashboard API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default registry at package init; the router
// exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - method: "password" or "google"
//   - result: "ok" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "ok" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostsCreatedTotal counts post uploads.
// Label:
//   - result: "ok" or "error"
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of post uploads, by result.",
	},
	[]string{"result"},
)

// FeedRequestsTotal counts successful public feed page loads.
var FeedRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_requests_total",
		Help:      "Total number of public feed pages served.",
	},
)

// UploadBytes measures accepted image sizes.
var UploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_bytes",
		Help:      "Size distribution of accepted image uploads.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 7), // 1KiB … 4MiB
	},
)
