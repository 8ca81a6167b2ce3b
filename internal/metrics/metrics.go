// Package metrics registers the Prometheus instruments exposed on /metrics.
//
// The decrypt-failure counter exists because record decryption fails closed:
// a corrupted or tampered blob degrades to an empty field mapping instead of
// an error, so without a metric silent data loss would be invisible.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DecryptFailures counts payload decryptions that failed closed
	// (bad base64, truncated blob, or GCM authentication mismatch).
	DecryptFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mypass_decrypt_failures_total",
		Help: "Vault payload decryptions that failed closed and returned empty data.",
	})

	// DisclosureIssued counts disclosure tokens handed out.
	DisclosureIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mypass_disclosure_tokens_issued_total",
		Help: "Disclosure tokens issued.",
	})

	// DisclosureRedeemed counts tokens successfully redeemed (marked used).
	DisclosureRedeemed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mypass_disclosure_tokens_redeemed_total",
		Help: "Disclosure tokens redeemed exactly once.",
	})

	// DisclosureRejected counts validation failures: missing, expired,
	// wrong scope, or already used. The reasons are deliberately not
	// labelled apart to keep the metric as uniform as the API response.
	DisclosureRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mypass_disclosure_tokens_rejected_total",
		Help: "Disclosure token validations that returned no token.",
	})

	// UnmaskDenied counts unmask attempts stopped by the session rate limiter.
	UnmaskDenied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mypass_unmask_denied_total",
		Help: "Unmask operations denied by the sliding-window rate limiter.",
	})
)
