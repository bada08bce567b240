package domain

import (
	interfaces "snartnet/internal/domain/interfaces"
	types "snartnet/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	KeyPair       = types.KeyPair
	KeyInfo       = types.KeyInfo
	Profile       = types.Profile
	ProfileUpdate = types.ProfileUpdate
	Post          = types.Post
	Message       = types.Message
	MessageKind   = types.MessageKind
	Signable      = types.Signable
	SignedProfile = types.SignedProfile
	SignedPost    = types.SignedPost
	SignedMessage = types.SignedMessage
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyValueStore   = interfaces.KeyValueStore
	IdentityService = interfaces.IdentityService
)

// Sentinel errors, re-exported so callers can match with errors.Is.
var (
	ErrDecode        = types.ErrDecode
	ErrNoIdentity    = types.ErrNoIdentity
	ErrSerialization = types.ErrSerialization
	ErrStorage       = types.ErrStorage
	ErrPostSealed    = types.ErrPostSealed
	ErrInvalidInput  = types.ErrInvalidInput
	ErrCorruptState  = types.ErrCorruptState
	ErrKeyMismatch   = types.ErrKeyMismatch
)

// Constructors, re-exported alongside the types they build.
var (
	NewProfile       = types.NewProfile
	NewPost          = types.NewPost
	NewDirectMessage = types.NewDirectMessage
	NewGroupMessage  = types.NewGroupMessage
	DirectKind       = types.DirectKind
	GroupKind        = types.GroupKind
)

const (
	MessageDirect = types.MessageDirect
	MessageGroup  = types.MessageGroup
)
