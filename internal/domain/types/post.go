package types

import (
	"fmt"
	"time"

	"snartnet/internal/canonical"
)

// Post is an authored status update. It is immutable after construction
// apart from AttachmentHashes, which may grow until the post is signed.
type Post struct {
	ID                string
	AuthorFingerprint string
	Content           string
	Tags              []string
	CreatedAt         time.Time
	ReplyTo           *string
	AttachmentHashes  []string

	sealed bool
}

// NewPost builds a post by the given author. Tags keep their order and
// duplicates.
func NewPost(authorFingerprint, content string, tags []string, replyTo *string) Post {
	return Post{
		ID:                newID(),
		AuthorFingerprint: authorFingerprint,
		Content:           content,
		Tags:              cloneStrings(tags),
		CreatedAt:         timestamp(),
		ReplyTo:           cloneString(replyTo),
	}
}

// AddAttachment appends a content hash. It fails once the post is sealed.
func (p *Post) AddAttachment(hash string) error {
	if p.sealed {
		return fmt.Errorf("%w: post %s", ErrPostSealed, p.ID)
	}
	p.AttachmentHashes = append(p.AttachmentHashes, hash)
	return nil
}

// Seal finalises the attachment list. Signing seals the post.
func (p *Post) Seal() { p.sealed = true }

// Sealed reports whether further attachments are rejected.
func (p Post) Sealed() bool { return p.sealed }

// Clone returns a deep copy of p, including its sealed state.
func (p Post) Clone() Post {
	p.Tags = cloneStrings(p.Tags)
	p.ReplyTo = cloneString(p.ReplyTo)
	p.AttachmentHashes = cloneStrings(p.AttachmentHashes)
	return p
}

// EnvelopeKey implements Signable.
func (Post) EnvelopeKey() string { return "post" }

// CanonicalBytes implements Signable.
func (p Post) CanonicalBytes() ([]byte, error) {
	b, err := canonical.NewObject().
		String("id", p.ID).
		String("authorFingerprint", p.AuthorFingerprint).
		String("content", p.Content).
		Strings("tags", p.Tags).
		Time("createdAt", p.CreatedAt).
		OptString("replyTo", p.ReplyTo).
		Strings("attachmentHashes", p.AttachmentHashes).
		Bytes()
	if err != nil {
		return nil, canonicalError("post", err)
	}
	return b, nil
}

// MarshalJSON writes the canonical form.
func (p Post) MarshalJSON() ([]byte, error) { return p.CanonicalBytes() }

type wirePost struct {
	ID                *string   `json:"id"`
	AuthorFingerprint *string   `json:"authorFingerprint"`
	Content           *string   `json:"content"`
	Tags              *[]string `json:"tags"`
	CreatedAt         *string   `json:"createdAt"`
	ReplyTo           *string   `json:"replyTo"`
	AttachmentHashes  *[]string `json:"attachmentHashes"`
}

// UnmarshalJSON reads the wire form. A decoded post is not sealed.
func (p *Post) UnmarshalJSON(data []byte) error {
	var w wirePost
	if err := decodeWire("post", data, &w); err != nil {
		return err
	}
	if err := checkRequired("post",
		fieldCheck{"id", w.ID != nil},
		fieldCheck{"authorFingerprint", w.AuthorFingerprint != nil},
		fieldCheck{"content", w.Content != nil},
		fieldCheck{"tags", w.Tags != nil},
		fieldCheck{"createdAt", w.CreatedAt != nil},
		fieldCheck{"attachmentHashes", w.AttachmentHashes != nil},
	); err != nil {
		return err
	}
	created, err := parseTime("post", "createdAt", *w.CreatedAt)
	if err != nil {
		return err
	}
	*p = Post{
		ID:                *w.ID,
		AuthorFingerprint: *w.AuthorFingerprint,
		Content:           *w.Content,
		Tags:              *w.Tags,
		CreatedAt:         created,
		ReplyTo:           w.ReplyTo,
		AttachmentHashes:  *w.AttachmentHashes,
	}
	return nil
}
