package api

import "snartnet/internal/domain"

// Entry point versions.
const (
	ProfileAPI = "profile-json-v1"
	PostAPI    = "post-json-v1"
	MessageAPI = "message-json-v1"

	// CapabilityVersion is bumped when a capability flag is added.
	CapabilityVersion = "1"
)

// CreateProfileRequest is the body of CreateProfileJSON.
type CreateProfileRequest struct {
	Username    string  `json:"username"`
	DisplayName *string `json:"displayName,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

// UpdateProfileRequest is the body of UpdateProfileJSON. Absent or null
// fields are left unchanged.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	AvatarHash  *string `json:"avatarHash,omitempty"`
}

// ProfileEnvelope is returned by the profile entry points.
type ProfileEnvelope struct {
	Profile   domain.Profile `json:"profile"`
	Signature string         `json:"signature"`
	MagnetURI string         `json:"magnetUri"`
	API       string         `json:"api"`
	Version   uint32         `json:"version"`
}

// CreatePostRequest is the body of CreatePostJSON.
type CreatePostRequest struct {
	Content          string   `json:"content"`
	Tags             []string `json:"tags,omitempty"`
	ReplyTo          *string  `json:"replyTo,omitempty"`
	AttachmentHashes []string `json:"attachmentHashes,omitempty"`
}

// PostEnvelope is returned by CreatePostJSON.
type PostEnvelope struct {
	Post      domain.Post `json:"post"`
	Signature string      `json:"signature"`
	API       string      `json:"api"`
}

// CreateMessageRequest is the body of CreateMessageJSON. A non-empty GroupID
// makes a group message.
type CreateMessageRequest struct {
	RecipientFingerprint string  `json:"recipientFingerprint"`
	Content              string  `json:"content"`
	GroupID              *string `json:"groupId,omitempty"`
}

// MessageEnvelope is returned by CreateMessageJSON.
type MessageEnvelope struct {
	Message   domain.Message `json:"message"`
	Signature string         `json:"signature"`
	API       string         `json:"api"`
}

// VerifyResult is returned by the verify entry points.
type VerifyResult struct {
	Valid  bool   `json:"valid"`
	Entity string `json:"entity"`
}

// CapabilityDescriptor advertises the implemented entry points. Fields are
// only ever added.
type CapabilityDescriptor struct {
	ProfileJSONAPI bool   `json:"profileJsonApi"`
	PostJSONAPI    bool   `json:"postJsonApi"`
	MessageJSONAPI bool   `json:"messageJsonApi"`
	Version        string `json:"version"`
}
