package api

import (
	"encoding/json"
	"fmt"

	"snartnet/internal/domain"
	"snartnet/internal/metrics"
	"snartnet/internal/signing"
	"snartnet/internal/store"
)

// Handler serves the JSON entry points on top of an identity service.
type Handler struct {
	svc     domain.IdentityService
	metrics *metrics.Metrics
}

// NewHandler returns a Handler for svc. m may be nil.
func NewHandler(svc domain.IdentityService, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, metrics: m}
}

// Capabilities describes this build's entry points.
func Capabilities() CapabilityDescriptor {
	return CapabilityDescriptor{
		ProfileJSONAPI: true,
		PostJSONAPI:    true,
		MessageJSONAPI: true,
		Version:        CapabilityVersion,
	}
}

// CapabilitiesJSON encodes Capabilities.
func (h *Handler) CapabilitiesJSON() ([]byte, error) { return encode(Capabilities()) }

// CreateProfileJSON creates and signs a profile from a CreateProfileRequest.
func (h *Handler) CreateProfileJSON(req []byte) ([]byte, error) {
	var r CreateProfileRequest
	if err := decode("create profile request", req, &r); err != nil {
		return nil, err
	}
	sp, err := h.svc.CreateProfile(r.Username, r.DisplayName, r.Bio)
	if err != nil {
		return nil, err
	}
	return encode(profileEnvelope(sp))
}

// UpdateProfileJSON applies an UpdateProfileRequest to the held profile.
func (h *Handler) UpdateProfileJSON(req []byte) ([]byte, error) {
	var r UpdateProfileRequest
	if err := decode("update profile request", req, &r); err != nil {
		return nil, err
	}
	sp, err := h.svc.UpdateProfile(domain.ProfileUpdate{
		DisplayName: r.DisplayName,
		Bio:         r.Bio,
		AvatarHash:  r.AvatarHash,
	})
	if err != nil {
		return nil, err
	}
	return encode(profileEnvelope(sp))
}

// CurrentProfileJSON returns the held profile envelope.
func (h *Handler) CurrentProfileJSON() ([]byte, error) {
	sp, ok := h.svc.CurrentProfile()
	if !ok {
		return nil, fmt.Errorf("%w: no profile", domain.ErrNoIdentity)
	}
	return encode(profileEnvelope(sp))
}

// CreatePostJSON signs a post from a CreatePostRequest.
func (h *Handler) CreatePostJSON(req []byte) ([]byte, error) {
	var r CreatePostRequest
	if err := decode("create post request", req, &r); err != nil {
		return nil, err
	}
	sp, err := h.svc.CreatePost(r.Content, r.Tags, r.ReplyTo, r.AttachmentHashes)
	if err != nil {
		return nil, err
	}
	return encode(PostEnvelope{Post: sp.Value, Signature: sp.Signature, API: PostAPI})
}

// CreateMessageJSON signs a direct or group message from a
// CreateMessageRequest.
func (h *Handler) CreateMessageJSON(req []byte) ([]byte, error) {
	var r CreateMessageRequest
	if err := decode("create message request", req, &r); err != nil {
		return nil, err
	}
	var (
		sm  domain.SignedMessage
		err error
	)
	if r.GroupID != nil {
		sm, err = h.svc.CreateGroupMessage(r.RecipientFingerprint, *r.GroupID, r.Content)
	} else {
		sm, err = h.svc.CreateMessage(r.RecipientFingerprint, r.Content)
	}
	if err != nil {
		return nil, err
	}
	return encode(MessageEnvelope{Message: sm.Value, Signature: sm.Signature, API: MessageAPI})
}

// VerifyProfileJSON checks a signed profile or profile envelope against the
// key it embeds.
func (h *Handler) VerifyProfileJSON(signed []byte) (VerifyResult, error) {
	var sp domain.SignedProfile
	if err := decode("signed profile", signed, &sp); err != nil {
		return VerifyResult{}, err
	}
	return h.result(sp.Value.EnvelopeKey(), signing.VerifyProfile(sp)), nil
}

// VerifyPostJSON checks a signed post or post envelope under publicKey.
func (h *Handler) VerifyPostJSON(signed []byte, publicKey string) (VerifyResult, error) {
	var sp domain.SignedPost
	if err := decode("signed post", signed, &sp); err != nil {
		return VerifyResult{}, err
	}
	return h.result(sp.Value.EnvelopeKey(), signing.VerifyPost(sp, publicKey)), nil
}

// VerifyMessageJSON checks a signed message or message envelope under
// publicKey.
func (h *Handler) VerifyMessageJSON(signed []byte, publicKey string) (VerifyResult, error) {
	var sm domain.SignedMessage
	if err := decode("signed message", signed, &sm); err != nil {
		return VerifyResult{}, err
	}
	return h.result(sm.Value.EnvelopeKey(), signing.VerifyMessage(sm, publicKey)), nil
}

func (h *Handler) result(entity string, ok bool) VerifyResult {
	h.metrics.ObserveVerification(entity, ok)
	return VerifyResult{Valid: ok, Entity: entity}
}

func profileEnvelope(sp domain.SignedProfile) ProfileEnvelope {
	env := ProfileEnvelope{
		Profile:   sp.Value,
		Signature: sp.Signature,
		API:       ProfileAPI,
		Version:   sp.Value.Version,
	}
	if sp.Value.MagnetURI != nil {
		env.MagnetURI = *sp.Value.MagnetURI
	}
	return env
}

func decode(what string, data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrSerialization, what, err)
	}
	return nil
}

func encode(v any) ([]byte, error) {
	b, err := store.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSerialization, err)
	}
	return b, nil
}
