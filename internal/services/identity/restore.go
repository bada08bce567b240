package identity

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"snartnet/internal/crypto"
	"snartnet/internal/domain"
	"snartnet/internal/metrics"
	"snartnet/internal/signing"
	"snartnet/internal/store"
)

// Warning describes stored data that was present but could not be trusted.
// The session ignores such data and starts from what remains.
type Warning struct {
	Key string
	Err error
}

func (w Warning) Error() string { return w.Key + ": " + w.Err.Error() }

func (w Warning) Unwrap() error { return w.Err }

// RestoreReport describes the outcome of Init.
type RestoreReport struct {
	State    string
	Warnings []Warning
}

// Corrupt reports whether any stored value was discarded.
func (r RestoreReport) Corrupt() bool { return len(r.Warnings) > 0 }

// Init restores the key pair and signed profile from storage. Absent keys
// leave the session in NoIdentity or HasKeyOnly. Values that are present but
// undecodable, inconsistent or badly signed are reported as warnings and
// ignored. Only a failing store is an error, in which case the session state
// is unchanged.
func (s *Session) Init() (RestoreReport, error) {
	var report RestoreReport
	corrupt := func(key string, err error) {
		w := Warning{Key: key, Err: fmt.Errorf("%w: %w", domain.ErrCorruptState, err)}
		report.Warnings = append(report.Warnings, w)
		s.log.Warn("ignoring stored value", zap.String("key", key), zap.Error(err))
	}

	kp, hasKey, err := s.loadKeyPair(corrupt)
	if err != nil {
		s.metrics.ObserveRestore(metrics.RestoreFailed)
		return RestoreReport{}, err
	}
	profile, hasProfile, err := s.loadProfile(kp, hasKey, corrupt)
	if err != nil {
		s.metrics.ObserveRestore(metrics.RestoreFailed)
		return RestoreReport{}, err
	}

	outcome := metrics.RestoreEmpty
	switch {
	case hasProfile:
		s.state = HasProfile{KeyPair: kp, Profile: profile}
		outcome = metrics.RestoreProfile
	case hasKey:
		s.state = HasKeyOnly{KeyPair: kp}
		outcome = metrics.RestoreKeyOnly
	default:
		s.state = NoIdentity{}
	}
	if report.Corrupt() {
		outcome = metrics.RestoreCorrupt
	}
	report.State = s.state.Name()
	s.metrics.ObserveRestore(outcome)
	s.log.Info("session restored", zap.String("state", report.State), zap.Int("warnings", len(report.Warnings)))
	return report, nil
}

func (s *Session) loadKeyPair(corrupt func(string, error)) (domain.KeyPair, bool, error) {
	kp, ok, err := store.GetJSON[domain.KeyPair](s.store, KeyPairKey)
	switch {
	case errors.Is(err, domain.ErrSerialization):
		corrupt(KeyPairKey, err)
		return domain.KeyPair{}, false, nil
	case err != nil:
		return domain.KeyPair{}, false, err
	case !ok:
		return domain.KeyPair{}, false, nil
	}
	if err := crypto.ValidateKeyPair(kp); err != nil {
		corrupt(KeyPairKey, err)
		return domain.KeyPair{}, false, nil
	}
	return kp, true, nil
}

func (s *Session) loadProfile(kp domain.KeyPair, hasKey bool, corrupt func(string, error)) (domain.SignedProfile, bool, error) {
	sp, ok, err := store.GetJSON[domain.SignedProfile](s.store, ProfileKey)
	switch {
	case errors.Is(err, domain.ErrSerialization):
		corrupt(ProfileKey, err)
		return domain.SignedProfile{}, false, nil
	case err != nil:
		return domain.SignedProfile{}, false, err
	case !ok:
		return domain.SignedProfile{}, false, nil
	}
	if err := checkProfileOwner(sp, kp, hasKey); err != nil {
		corrupt(ProfileKey, err)
		return domain.SignedProfile{}, false, nil
	}
	s.metrics.ObserveVerification(sp.Value.EnvelopeKey(), true)
	return sp, true, nil
}

// checkProfileOwner requires sp to be validly signed by kp.
func checkProfileOwner(sp domain.SignedProfile, kp domain.KeyPair, hasKey bool) error {
	if !hasKey {
		return fmt.Errorf("%w: profile %s has no usable key pair", domain.ErrKeyMismatch, sp.Value.ID)
	}
	if sp.Value.PublicKey != kp.PublicKey || sp.Value.Fingerprint != kp.Fingerprint {
		return fmt.Errorf("%w: profile %s belongs to another key", domain.ErrKeyMismatch, sp.Value.ID)
	}
	if !signing.VerifyProfile(sp) {
		return fmt.Errorf("profile %s: signature does not verify", sp.Value.ID)
	}
	return nil
}
