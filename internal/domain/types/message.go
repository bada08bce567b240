package types

import (
	"fmt"
	"time"

	"snartnet/internal/canonical"
)

// MessageKindType discriminates MessageKind.
type MessageKindType string

const (
	MessageDirect MessageKindType = "direct"
	MessageGroup  MessageKindType = "group"
)

// MessageKind is either {direct} or {group, groupId}.
type MessageKind struct {
	Type    MessageKindType
	GroupID string
}

// DirectKind returns the direct message kind.
func DirectKind() MessageKind { return MessageKind{Type: MessageDirect} }

// GroupKind returns the group message kind for groupID.
func GroupKind(groupID string) MessageKind {
	return MessageKind{Type: MessageGroup, GroupID: groupID}
}

func (k MessageKind) canonical() (*canonical.Object, error) {
	switch k.Type {
	case MessageDirect:
		return canonical.NewObject().String("type", string(MessageDirect)), nil
	case MessageGroup:
		return canonical.NewObject().
			String("type", string(MessageGroup)).
			String("groupId", k.GroupID), nil
	default:
		return nil, fmt.Errorf("unknown message kind %q", k.Type)
	}
}

// Message is a signed note from one fingerprint to another. It has no
// update path. Encrypted is reserved and always false.
type Message struct {
	ID                   string
	SenderFingerprint    string
	RecipientFingerprint string
	Content              string
	CreatedAt            time.Time
	Encrypted            bool
	Kind                 MessageKind
}

// NewDirectMessage builds a direct message.
func NewDirectMessage(sender, recipient, content string) Message {
	return newMessage(sender, recipient, content, DirectKind())
}

// NewGroupMessage builds a message addressed within groupID.
func NewGroupMessage(sender, recipient, groupID, content string) Message {
	return newMessage(sender, recipient, content, GroupKind(groupID))
}

func newMessage(sender, recipient, content string, kind MessageKind) Message {
	return Message{
		ID:                   newID(),
		SenderFingerprint:    sender,
		RecipientFingerprint: recipient,
		Content:              content,
		CreatedAt:            timestamp(),
		Kind:                 kind,
	}
}

// EnvelopeKey implements Signable.
func (Message) EnvelopeKey() string { return "message" }

// CanonicalBytes implements Signable.
func (m Message) CanonicalBytes() ([]byte, error) {
	kind, err := m.Kind.canonical()
	if err != nil {
		return nil, canonicalError("message", err)
	}
	b, err := canonical.NewObject().
		String("id", m.ID).
		String("senderFingerprint", m.SenderFingerprint).
		String("recipientFingerprint", m.RecipientFingerprint).
		String("content", m.Content).
		Time("createdAt", m.CreatedAt).
		Bool("encrypted", m.Encrypted).
		Object("kind", kind).
		Bytes()
	if err != nil {
		return nil, canonicalError("message", err)
	}
	return b, nil
}

// MarshalJSON writes the canonical form.
func (m Message) MarshalJSON() ([]byte, error) { return m.CanonicalBytes() }

type wireMessageKind struct {
	Type    *string `json:"type"`
	GroupID *string `json:"groupId"`
}

type wireMessage struct {
	ID                   *string          `json:"id"`
	SenderFingerprint    *string          `json:"senderFingerprint"`
	RecipientFingerprint *string          `json:"recipientFingerprint"`
	Content              *string          `json:"content"`
	CreatedAt            *string          `json:"createdAt"`
	Encrypted            *bool            `json:"encrypted"`
	Kind                 *wireMessageKind `json:"kind"`
}

// UnmarshalJSON reads the wire form.
func (m *Message) UnmarshalJSON(data []byte) error {
	var w wireMessage
	if err := decodeWire("message", data, &w); err != nil {
		return err
	}
	if err := checkRequired("message",
		fieldCheck{"id", w.ID != nil},
		fieldCheck{"senderFingerprint", w.SenderFingerprint != nil},
		fieldCheck{"recipientFingerprint", w.RecipientFingerprint != nil},
		fieldCheck{"content", w.Content != nil},
		fieldCheck{"createdAt", w.CreatedAt != nil},
		fieldCheck{"encrypted", w.Encrypted != nil},
		fieldCheck{"kind", w.Kind != nil && w.Kind.Type != nil},
	); err != nil {
		return err
	}
	var kind MessageKind
	switch MessageKindType(*w.Kind.Type) {
	case MessageDirect:
		kind = DirectKind()
	case MessageGroup:
		if w.Kind.GroupID == nil {
			return fmt.Errorf("%w: message: group kind without groupId", ErrSerialization)
		}
		kind = GroupKind(*w.Kind.GroupID)
	default:
		return fmt.Errorf("%w: message: unknown kind %q", ErrSerialization, *w.Kind.Type)
	}
	created, err := parseTime("message", "createdAt", *w.CreatedAt)
	if err != nil {
		return err
	}
	*m = Message{
		ID:                   *w.ID,
		SenderFingerprint:    *w.SenderFingerprint,
		RecipientFingerprint: *w.RecipientFingerprint,
		Content:              *w.Content,
		CreatedAt:            created,
		Encrypted:            *w.Encrypted,
		Kind:                 kind,
	}
	return nil
}
