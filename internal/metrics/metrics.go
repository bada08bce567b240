// Package metrics counts signing, verification and profile lifecycle events
// on a dedicated prometheus registry.
//
// A nil *Metrics is valid and records nothing, so library code can take one
// unconditionally.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "snartnet"

// Verification results.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
)

// Restore outcomes reported by the identity session.
const (
	RestoreEmpty   = "empty"
	RestoreKeyOnly = "key_only"
	RestoreProfile = "profile"
	RestoreCorrupt = "corrupt"
	RestoreFailed  = "failed"
)

// Metrics holds the counters.
type Metrics struct {
	registry *prometheus.Registry

	Signatures       *prometheus.CounterVec
	Verifications    *prometheus.CounterVec
	ProfileMutations *prometheus.CounterVec
	Restores         *prometheus.CounterVec
}

// New registers every counter on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Signatures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signatures_total",
			Help:      "Signatures produced, by entity.",
		}, []string{"entity"}),
		Verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Signature verifications, by entity and result.",
		}, []string{"entity", "result"}),
		ProfileMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_mutations_total",
			Help:      "Accepted profile mutations, by operation.",
		}, []string{"op"}),
		Restores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restore_total",
			Help:      "Session restores from storage, by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.Signatures, m.Verifications, m.ProfileMutations, m.Restores)
	return m
}

// Registry exposes the registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveSignature counts one signature over entity.
func (m *Metrics) ObserveSignature(entity string) {
	if m == nil {
		return
	}
	m.Signatures.WithLabelValues(entity).Inc()
}

// ObserveVerification counts one verification of entity.
func (m *Metrics) ObserveVerification(entity string, ok bool) {
	if m == nil {
		return
	}
	result := ResultInvalid
	if ok {
		result = ResultValid
	}
	m.Verifications.WithLabelValues(entity, result).Inc()
}

// ObserveProfileMutation counts one accepted profile change.
func (m *Metrics) ObserveProfileMutation(op string) {
	if m == nil {
		return
	}
	m.ProfileMutations.WithLabelValues(op).Inc()
}

// ObserveRestore counts one restore attempt.
func (m *Metrics) ObserveRestore(outcome string) {
	if m == nil {
		return
	}
	m.Restores.WithLabelValues(outcome).Inc()
}

// WriteTextfile writes the registry in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
