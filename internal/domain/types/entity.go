package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"snartnet/internal/canonical"
)

// Signable is implemented by every entity that can be wrapped in a
// SignedEntity.
type Signable interface {
	// CanonicalBytes returns the exact bytes a signature covers.
	CanonicalBytes() ([]byte, error)
	// EnvelopeKey names the entity field in the signed JSON envelope.
	EnvelopeKey() string
}

// now is the entity clock.
var now = time.Now

func newID() string { return uuid.NewString() }

func timestamp() time.Time { return canonical.Truncate(now()) }

// nextTimestamp returns the current time, or one microsecond after prev when
// the clock has not moved past it, so successive mutations are strictly
// ordered.
func nextTimestamp(prev time.Time) time.Time {
	t := timestamp()
	if !t.After(prev) {
		t = prev.Add(time.Microsecond)
	}
	return t
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

type fieldCheck struct {
	name    string
	present bool
}

func checkRequired(entity string, checks ...fieldCheck) error {
	for _, c := range checks {
		if !c.present {
			return fmt.Errorf("%w: %s: missing field %q", ErrSerialization, entity, c.name)
		}
	}
	return nil
}

func parseTime(entity, field, s string) (time.Time, error) {
	t, err := canonical.ParseTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s.%s: %v", ErrSerialization, entity, field, err)
	}
	return t, nil
}

func decodeWire(entity string, data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSerialization, entity, err)
	}
	return nil
}

func canonicalError(entity string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrSerialization, entity, err)
}
