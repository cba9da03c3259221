package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	Logins         *prometheus.CounterVec
	VotersCreated  prometheus.Counter
	HashMigrations prometheus.Counter
	CodesIssued    *prometheus.CounterVec
	TokensIssued   *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "votegate_logins_total",
			Help: "Login attempts by method and outcome",
		}, []string{"method", "outcome"}),
		VotersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "votegate_voters_created_total",
			Help: "Total number of voter records created",
		}),
		HashMigrations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "votegate_hash_migrations_total",
			Help: "Legacy password hashes upgraded to the modern scheme",
		}),
		CodesIssued: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "votegate_verify_codes_issued_total",
			Help: "One-time verification codes issued by channel",
		}, []string{"channel"}),
		TokensIssued: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "votegate_tokens_issued_total",
			Help: "Signed tokens issued by audience",
		}, []string{"audience"}),
	}
}

// ObserveLogin records one login attempt.
func (m *Metrics) ObserveLogin(method, outcome string) {
	m.Logins.WithLabelValues(method, outcome).Inc()
}

// VoterCreated counts one created voter record.
func (m *Metrics) VoterCreated() {
	m.VotersCreated.Inc()
}

// HashMigrated counts one legacy hash upgrade.
func (m *Metrics) HashMigrated() {
	m.HashMigrations.Inc()
}

// CodeIssued counts one issued verification code.
func (m *Metrics) CodeIssued(channel string) {
	m.CodesIssued.WithLabelValues(channel).Inc()
}

// TokenIssued counts one signed token.
func (m *Metrics) TokenIssued(audience string) {
	m.TokensIssued.WithLabelValues(audience).Inc()
}
