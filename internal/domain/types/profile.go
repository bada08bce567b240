package types

import (
	"time"

	"snartnet/internal/canonical"
)

// Profile is the public, signed description of a local identity.
//
// ID, Username, PublicKey, Fingerprint and CreatedAt never change after
// construction. Every accepted mutation bumps Version by one and moves
// UpdatedAt forward.
type Profile struct {
	ID          string
	Username    string
	DisplayName *string
	Bio         *string
	AvatarHash  *string
	PublicKey   string
	Fingerprint string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     uint32
	MagnetURI   *string
}

// ProfileUpdate carries a partial update. Nil fields are left untouched; a
// non-nil empty string overwrites.
type ProfileUpdate struct {
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
	AvatarHash  *string `json:"avatarHash"`
}

// IsEmpty reports whether u changes nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return u.DisplayName == nil && u.Bio == nil && u.AvatarHash == nil
}

// NewProfile builds version 1 of a profile for the given key.
func NewProfile(username string, key KeyInfo) Profile {
	t := timestamp()
	return Profile{
		ID:          newID(),
		Username:    username,
		PublicKey:   key.PublicKey,
		Fingerprint: key.Fingerprint,
		CreatedAt:   t,
		UpdatedAt:   t,
		Version:     1,
	}
}

// Update applies displayName and bio with partial-update semantics. It does
// not re-sign; any signature over p is stale afterwards.
func (p *Profile) Update(displayName, bio *string) {
	p.Apply(ProfileUpdate{DisplayName: displayName, Bio: bio})
}

// Apply is Update generalised to every mutable field.
func (p *Profile) Apply(u ProfileUpdate) {
	if u.DisplayName != nil {
		p.DisplayName = cloneString(u.DisplayName)
	}
	if u.Bio != nil {
		p.Bio = cloneString(u.Bio)
	}
	if u.AvatarHash != nil {
		p.AvatarHash = cloneString(u.AvatarHash)
	}
	p.UpdatedAt = nextTimestamp(p.UpdatedAt)
	p.Version++
}

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	p.DisplayName = cloneString(p.DisplayName)
	p.Bio = cloneString(p.Bio)
	p.AvatarHash = cloneString(p.AvatarHash)
	p.MagnetURI = cloneString(p.MagnetURI)
	return p
}

// EnvelopeKey implements Signable.
func (Profile) EnvelopeKey() string { return "profile" }

// CanonicalBytes implements Signable.
func (p Profile) CanonicalBytes() ([]byte, error) {
	b, err := canonical.NewObject().
		String("id", p.ID).
		String("username", p.Username).
		OptString("displayName", p.DisplayName).
		OptString("bio", p.Bio).
		OptString("avatarHash", p.AvatarHash).
		String("publicKey", p.PublicKey).
		String("fingerprint", p.Fingerprint).
		Time("createdAt", p.CreatedAt).
		Time("updatedAt", p.UpdatedAt).
		Uint("version", uint64(p.Version)).
		OptString("magnetUri", p.MagnetURI).
		Bytes()
	if err != nil {
		return nil, canonicalError("profile", err)
	}
	return b, nil
}

// MarshalJSON writes the canonical form.
func (p Profile) MarshalJSON() ([]byte, error) { return p.CanonicalBytes() }

type wireProfile struct {
	ID          *string `json:"id"`
	Username    *string `json:"username"`
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
	AvatarHash  *string `json:"avatarHash"`
	PublicKey   *string `json:"publicKey"`
	Fingerprint *string `json:"fingerprint"`
	CreatedAt   *string `json:"createdAt"`
	UpdatedAt   *string `json:"updatedAt"`
	Version     *uint32 `json:"version"`
	MagnetURI   *string `json:"magnetUri"`
}

// UnmarshalJSON reads the wire form. Every non-nullable field is required.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var w wireProfile
	if err := decodeWire("profile", data, &w); err != nil {
		return err
	}
	if err := checkRequired("profile",
		fieldCheck{"id", w.ID != nil},
		fieldCheck{"username", w.Username != nil},
		fieldCheck{"publicKey", w.PublicKey != nil},
		fieldCheck{"fingerprint", w.Fingerprint != nil},
		fieldCheck{"createdAt", w.CreatedAt != nil},
		fieldCheck{"updatedAt", w.UpdatedAt != nil},
		fieldCheck{"version", w.Version != nil},
	); err != nil {
		return err
	}
	created, err := parseTime("profile", "createdAt", *w.CreatedAt)
	if err != nil {
		return err
	}
	updated, err := parseTime("profile", "updatedAt", *w.UpdatedAt)
	if err != nil {
		return err
	}
	*p = Profile{
		ID:          *w.ID,
		Username:    *w.Username,
		DisplayName: w.DisplayName,
		Bio:         w.Bio,
		AvatarHash:  w.AvatarHash,
		PublicKey:   *w.PublicKey,
		Fingerprint: *w.Fingerprint,
		CreatedAt:   created,
		UpdatedAt:   updated,
		Version:     *w.Version,
		MagnetURI:   w.MagnetURI,
	}
	return nil
}
