package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the authentication core, registered on the default
// registry at init so callers can Inc without any setup.
var (
	TokensIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_tokens_issued_total",
		Help: "Total number of token pairs minted through the password grant.",
	})
	TokensRefreshedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_tokens_refreshed_total",
		Help: "Total number of token pairs rotated through the refresh grant.",
	})
	LoginSuccessTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_logins_success_total",
		Help: "Total number of successful logins.",
	})
	LoginFailureTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_logins_failure_total",
		Help: "Total number of failed logins.",
	})
	SessionsDestroyedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_sessions_destroyed_total",
		Help: "Total number of sessions removed from the token store.",
	})
)
