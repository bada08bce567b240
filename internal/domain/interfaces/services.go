package interfaces

import domaintypes "snartnet/internal/domain/types"

// IdentityService is the single-user identity session.
type IdentityService interface {
	HasProfile() bool
	PublicKey() (string, error)
	Fingerprint() (string, error)
	CurrentProfile() (domaintypes.SignedProfile, bool)

	CreateProfile(username string, displayName, bio *string) (domaintypes.SignedProfile, error)
	UpdateProfile(update domaintypes.ProfileUpdate) (domaintypes.SignedProfile, error)

	CreatePost(content string, tags []string, replyTo *string, attachments []string) (domaintypes.SignedPost, error)
	CreateMessage(recipientFingerprint, content string) (domaintypes.SignedMessage, error)
	CreateGroupMessage(recipientFingerprint, groupID, content string) (domaintypes.SignedMessage, error)
}
