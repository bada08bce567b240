package crypto

import (
	"encoding/base64"
	"fmt"

	"snartnet/internal/domain"
)

// B64 returns standard base64 encoding without newlines.
func B64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// strict rejects non-zero padding bits: every value has one accepted form.
var strict = base64.StdEncoding.Strict()

// decodeFixed decodes standard base64 and requires exactly size bytes.
func decodeFixed(what, s string, size int) ([]byte, error) {
	b, err := strict.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDecode, what, err)
	}
	if len(b) != size {
		Wipe(b)
		return nil, fmt.Errorf("%w: %s: want %d bytes, got %d", domain.ErrDecode, what, size, len(b))
	}
	return b, nil
}
