package identity

import "snartnet/internal/domain"

// State is one of NoIdentity, HasKeyOnly or HasProfile.
type State interface {
	Name() string
	isState()
}

// NoIdentity holds nothing.
type NoIdentity struct{}

// HasKeyOnly holds a key pair without a profile.
type HasKeyOnly struct {
	KeyPair domain.KeyPair
}

// HasProfile holds a key pair and the signed profile it owns.
type HasProfile struct {
	KeyPair domain.KeyPair
	Profile domain.SignedProfile
}

func (NoIdentity) Name() string { return "no_identity" }
func (HasKeyOnly) Name() string { return "key_only" }
func (HasProfile) Name() string { return "profile" }

func (NoIdentity) isState() {}
func (HasKeyOnly) isState() {}
func (HasProfile) isState() {}

// keyOf returns the key pair held by st, if any.
func keyOf(st State) (domain.KeyPair, bool) {
	switch s := st.(type) {
	case HasKeyOnly:
		return s.KeyPair, true
	case HasProfile:
		return s.KeyPair, true
	default:
		return domain.KeyPair{}, false
	}
}
