package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snartnet/internal/domain/types"
)

var fixedTime = time.Date(2024, 5, 1, 12, 30, 45, 123456000, time.UTC)

func strp(s string) *string { return &s }

func TestProfile_CanonicalBytes(t *testing.T) {
	p := types.Profile{
		ID:          "id-1",
		Username:    "alice",
		DisplayName: strp("Alice \"A\""),
		PublicKey:   "PUB",
		Fingerprint: "FP",
		CreatedAt:   fixedTime,
		UpdatedAt:   fixedTime,
		Version:     3,
	}
	b, err := p.CanonicalBytes()
	require.NoError(t, err)
	assert.Equal(t,
		`{"id":"id-1","username":"alice","displayName":"Alice \"A\"","bio":null,"avatarHash":null,`+
			`"publicKey":"PUB","fingerprint":"FP","createdAt":"2024-05-01T12:30:45.123456Z",`+
			`"updatedAt":"2024-05-01T12:30:45.123456Z","version":3,"magnetUri":null}`,
		string(b))
}

func TestPost_CanonicalBytes(t *testing.T) {
	p := types.Post{
		ID:                "p1",
		AuthorFingerprint: "FP",
		Content:           "<b>&</b>",
		CreatedAt:         fixedTime,
	}
	b, err := p.CanonicalBytes()
	require.NoError(t, err)
	assert.Equal(t,
		`{"id":"p1","authorFingerprint":"FP","content":"<b>&</b>","tags":[],`+
			`"createdAt":"2024-05-01T12:30:45.123456Z","replyTo":null,"attachmentHashes":[]}`,
		string(b))
}

func TestMessage_CanonicalBytes(t *testing.T) {
	m := types.Message{
		ID:                   "m1",
		SenderFingerprint:    "S",
		RecipientFingerprint: "R",
		Content:              "hi",
		CreatedAt:            fixedTime,
		Kind:                 types.GroupKind("g"),
	}
	b, err := m.CanonicalBytes()
	require.NoError(t, err)
	assert.Equal(t,
		`{"id":"m1","senderFingerprint":"S","recipientFingerprint":"R","content":"hi",`+
			`"createdAt":"2024-05-01T12:30:45.123456Z","encrypted":false,"kind":{"type":"group","groupId":"g"}}`,
		string(b))

	m.Kind = types.DirectKind()
	b, err = m.CanonicalBytes()
	require.NoError(t, err)
	assert.Contains(t, string(b), `"kind":{"type":"direct"}}`)
}

func TestCanonical_RoundTripIsIdempotent(t *testing.T) {
	inputs := []string{
		`{"id":"x","username":"u","displayName":null,"bio":"b","avatarHash":null,"publicKey":"k","fingerprint":"f",` +
			`"createdAt":"2024-05-01T12:30:45.1Z","updatedAt":"2024-05-01T14:30:45.123456789+02:00","version":7,"magnetUri":null}`,
	}
	for _, in := range inputs {
		var p types.Profile
		require.NoError(t, json.Unmarshal([]byte(in), &p))
		first, err := p.CanonicalBytes()
		require.NoError(t, err)

		var again types.Profile
		require.NoError(t, json.Unmarshal(first, &again))
		second, err := again.CanonicalBytes()
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second))
		assert.Contains(t, string(first), `"updatedAt":"2024-05-01T12:30:45.123456Z"`)
	}
}

func TestUnmarshal_MissingRequiredField(t *testing.T) {
	var p types.Profile
	err := json.Unmarshal([]byte(`{"id":"x","username":"u"}`), &p)
	require.ErrorIs(t, err, types.ErrSerialization)

	var post types.Post
	err = json.Unmarshal([]byte(`{"id":"p","authorFingerprint":"a","content":"c","createdAt":"2024-05-01T12:30:45Z","attachmentHashes":[]}`), &post)
	require.ErrorIs(t, err, types.ErrSerialization)

	var m types.Message
	err = json.Unmarshal([]byte(`{"id":"m","senderFingerprint":"s","recipientFingerprint":"r","content":"c",`+
		`"createdAt":"2024-05-01T12:30:45Z","encrypted":false,"kind":{"type":"broadcast"}}`), &m)
	require.ErrorIs(t, err, types.ErrSerialization)
}

func TestCanonical_InvalidUTF8(t *testing.T) {
	p := types.Post{ID: "p", Content: string([]byte{0xff, 0xfe}), CreatedAt: fixedTime}
	_, err := p.CanonicalBytes()
	require.ErrorIs(t, err, types.ErrSerialization)
}

func TestNewEntities(t *testing.T) {
	key := types.KeyInfo{PublicKey: "PUB", Fingerprint: "FP"}
	a := types.NewProfile("a", key)
	b := types.NewProfile("a", key)
	assert.NotEqual(t, a.ID, b.ID)
	assert.EqualValues(t, 1, a.Version)
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
	assert.Equal(t, time.UTC, a.CreatedAt.Location())
	assert.Equal(t, 0, a.CreatedAt.Nanosecond()%1000)

	post := types.NewPost("FP", "c", nil, nil)
	assert.Nil(t, post.ReplyTo)
	assert.False(t, post.Sealed())
	require.NoError(t, post.AddAttachment("h"))
	post.Seal()
	require.ErrorIs(t, post.AddAttachment("h"), types.ErrPostSealed)
	assert.Equal(t, []string{"h"}, post.AttachmentHashes)
}
