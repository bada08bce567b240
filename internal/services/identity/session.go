package identity

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"snartnet/internal/address"
	"snartnet/internal/crypto"
	"snartnet/internal/domain"
	"snartnet/internal/metrics"
	"snartnet/internal/signing"
	"snartnet/internal/store"
)

// Storage keys.
const (
	KeyPairKey = "snartnet_keypair"
	ProfileKey = "snartnet_current_profile"
)

// Session is the single-user identity session.
type Session struct {
	store   domain.KeyValueStore
	log     *zap.Logger
	metrics *metrics.Metrics
	state   State
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics records session events on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// New returns a session in NoIdentity backed by kv. Call Init to restore
// stored state.
func New(kv domain.KeyValueStore, opts ...Option) *Session {
	s := &Session{
		store: kv,
		log:   zap.NewNop(),
		state: NoIdentity{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// HasProfile reports whether a signed profile is held.
func (s *Session) HasProfile() bool {
	_, ok := s.state.(HasProfile)
	return ok
}

// PublicKey returns the base64 public key.
func (s *Session) PublicKey() (string, error) {
	kp, ok := keyOf(s.state)
	if !ok {
		return "", fmt.Errorf("%w: no key pair", domain.ErrNoIdentity)
	}
	return kp.PublicKey, nil
}

// Fingerprint returns the fingerprint of the held public key.
func (s *Session) Fingerprint() (string, error) {
	kp, ok := keyOf(s.state)
	if !ok {
		return "", fmt.Errorf("%w: no key pair", domain.ErrNoIdentity)
	}
	return kp.Fingerprint, nil
}

// CurrentProfile returns a copy of the held signed profile.
func (s *Session) CurrentProfile() (domain.SignedProfile, bool) {
	st, ok := s.state.(HasProfile)
	if !ok {
		return domain.SignedProfile{}, false
	}
	return cloneSigned(st.Profile), true
}

func cloneSigned(sp domain.SignedProfile) domain.SignedProfile {
	return domain.SignedProfile{Value: sp.Value.Clone(), Signature: sp.Signature}
}

// EnsureKeyPair returns the held key pair, generating and persisting one
// first when the session is in NoIdentity.
func (s *Session) EnsureKeyPair() (domain.KeyPair, error) {
	if kp, ok := keyOf(s.state); ok {
		return kp, nil
	}
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		return domain.KeyPair{}, err
	}
	if err := store.SetJSON(s.store, KeyPairKey, kp); err != nil {
		return domain.KeyPair{}, err
	}
	s.state = HasKeyOnly{KeyPair: kp}
	s.log.Info("key pair generated", zap.String("fingerprint", kp.Fingerprint))
	return kp, nil
}

// CreateProfile builds a profile for the held key pair, generating one if
// needed, applies displayName and bio as its first update, then addresses,
// signs and persists it. An existing profile is replaced.
func (s *Session) CreateProfile(username string, displayName, bio *string) (domain.SignedProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.SignedProfile{}, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}

	kp, hadKey := keyOf(s.state)
	if !hadKey {
		var err error
		if kp, err = crypto.GenerateKeyPair(); err != nil {
			return domain.SignedProfile{}, err
		}
	}

	p := domain.NewProfile(username, kp.Info())
	p.Update(displayName, bio)
	signed, err := s.addressAndSign(p, kp)
	if err != nil {
		return domain.SignedProfile{}, err
	}

	if err := store.SetJSON(s.store, KeyPairKey, kp); err != nil {
		return domain.SignedProfile{}, err
	}
	if err := store.SetJSON(s.store, ProfileKey, signed); err != nil {
		if !hadKey {
			// The new key reached storage; keep memory in step with it.
			s.state = HasKeyOnly{KeyPair: kp}
		}
		return domain.SignedProfile{}, err
	}

	s.state = HasProfile{KeyPair: kp, Profile: signed}
	s.metrics.ObserveProfileMutation("create")
	s.log.Info("profile created",
		zap.String("fingerprint", kp.Fingerprint),
		zap.String("profile_id", p.ID),
		zap.String("username", p.Username))
	return cloneSigned(signed), nil
}

// UpdateProfile applies u to the held profile, re-derives its address,
// re-signs and persists it. On any failure the session keeps the previous
// profile.
func (s *Session) UpdateProfile(u domain.ProfileUpdate) (domain.SignedProfile, error) {
	st, ok := s.state.(HasProfile)
	if !ok {
		return domain.SignedProfile{}, fmt.Errorf("%w: no profile to update", domain.ErrNoIdentity)
	}

	p := st.Profile.Value.Clone()
	p.Apply(u)
	signed, err := s.addressAndSign(p, st.KeyPair)
	if err != nil {
		return domain.SignedProfile{}, err
	}
	if err := store.SetJSON(s.store, ProfileKey, signed); err != nil {
		return domain.SignedProfile{}, err
	}

	s.state = HasProfile{KeyPair: st.KeyPair, Profile: signed}
	s.metrics.ObserveProfileMutation("update")
	s.log.Info("profile updated",
		zap.String("profile_id", p.ID),
		zap.Uint32("version", p.Version))
	return cloneSigned(signed), nil
}

func (s *Session) addressAndSign(p domain.Profile, kp domain.KeyPair) (domain.SignedProfile, error) {
	uri, err := address.MagnetURI(p)
	if err != nil {
		return domain.SignedProfile{}, err
	}
	p.MagnetURI = &uri
	signed, err := signing.Create(p, kp)
	if err != nil {
		return domain.SignedProfile{}, err
	}
	s.metrics.ObserveSignature(p.EnvelopeKey())
	return signed, nil
}

// CreatePost builds and signs a post by the profile owner. The returned post
// is sealed: attachments must be supplied here.
func (s *Session) CreatePost(content string, tags []string, replyTo *string, attachments []string) (domain.SignedPost, error) {
	st, ok := s.state.(HasProfile)
	if !ok {
		return domain.SignedPost{}, fmt.Errorf("%w: create a profile before posting", domain.ErrNoIdentity)
	}
	post := domain.NewPost(st.KeyPair.Fingerprint, content, tags, replyTo)
	for _, h := range attachments {
		if err := post.AddAttachment(h); err != nil {
			return domain.SignedPost{}, err
		}
	}
	signed, err := signing.SignPost(&post, st.KeyPair)
	if err != nil {
		return domain.SignedPost{}, err
	}
	s.metrics.ObserveSignature(post.EnvelopeKey())
	s.log.Debug("post signed", zap.String("post_id", post.ID))
	return signed, nil
}

// CreateMessage signs a direct message to recipientFingerprint.
func (s *Session) CreateMessage(recipientFingerprint, content string) (domain.SignedMessage, error) {
	st, ok := s.state.(HasProfile)
	if !ok {
		return domain.SignedMessage{}, fmt.Errorf("%w: create a profile before messaging", domain.ErrNoIdentity)
	}
	return s.signMessage(domain.NewDirectMessage(st.KeyPair.Fingerprint, recipientFingerprint, content), st.KeyPair)
}

// CreateGroupMessage signs a message to recipientFingerprint within groupID.
func (s *Session) CreateGroupMessage(recipientFingerprint, groupID, content string) (domain.SignedMessage, error) {
	st, ok := s.state.(HasProfile)
	if !ok {
		return domain.SignedMessage{}, fmt.Errorf("%w: create a profile before messaging", domain.ErrNoIdentity)
	}
	if groupID == "" {
		return domain.SignedMessage{}, fmt.Errorf("%w: group id is required", domain.ErrInvalidInput)
	}
	return s.signMessage(domain.NewGroupMessage(st.KeyPair.Fingerprint, recipientFingerprint, groupID, content), st.KeyPair)
}

func (s *Session) signMessage(m domain.Message, kp domain.KeyPair) (domain.SignedMessage, error) {
	signed, err := signing.Create(m, kp)
	if err != nil {
		return domain.SignedMessage{}, err
	}
	s.metrics.ObserveSignature(m.EnvelopeKey())
	s.log.Debug("message signed", zap.String("message_id", m.ID), zap.String("kind", string(m.Kind.Type)))
	return signed, nil
}

// SignData signs arbitrary bytes with the held key.
func (s *Session) SignData(data []byte) (string, error) {
	kp, ok := keyOf(s.state)
	if !ok {
		return "", fmt.Errorf("%w: no key pair", domain.ErrNoIdentity)
	}
	sig, err := crypto.Sign(kp.SecretKey, data)
	if err != nil {
		return "", err
	}
	s.metrics.ObserveSignature("data")
	return sig, nil
}

// Reset removes both storage keys and returns to NoIdentity.
func (s *Session) Reset() error {
	if err := store.Remove(s.store, ProfileKey); err != nil {
		return err
	}
	if err := store.Remove(s.store, KeyPairKey); err != nil {
		if st, ok := s.state.(HasProfile); ok {
			s.state = HasKeyOnly{KeyPair: st.KeyPair}
		}
		return err
	}
	s.state = NoIdentity{}
	s.log.Info("identity reset")
	return nil
}

// Compile-time assertion that Session implements domain.IdentityService.
var _ domain.IdentityService = (*Session)(nil)
