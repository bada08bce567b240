package canonical

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

// Schema names the canonical encoding version.
const Schema = "snartnet-canonical-v1"

// TimeLayout is the fixed timestamp format. Values are always UTC.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

// ErrInvalidString is returned for strings that are not valid UTF-8.
var ErrInvalidString = errors.New("canonical: string is not valid UTF-8")

const hexDigits = "0123456789abcdef"

// Object writes one JSON object in canonical form. The first error sticks and
// is reported by Bytes.
type Object struct {
	buf    bytes.Buffer
	fields int
	err    error
}

// NewObject starts an empty object.
func NewObject() *Object {
	o := &Object{}
	o.buf.WriteByte('{')
	return o
}

func (o *Object) key(name string) bool {
	if o.err != nil {
		return false
	}
	if o.fields > 0 {
		o.buf.WriteByte(',')
	}
	o.fields++
	if err := writeString(&o.buf, name); err != nil {
		o.err = fmt.Errorf("field name %q: %w", name, err)
		return false
	}
	o.buf.WriteByte(':')
	return true
}

// String writes a string field.
func (o *Object) String(name, v string) *Object {
	if o.key(name) {
		if err := writeString(&o.buf, v); err != nil {
			o.err = fmt.Errorf("field %q: %w", name, err)
		}
	}
	return o
}

// OptString writes a nullable string field.
func (o *Object) OptString(name string, v *string) *Object {
	if v == nil {
		if o.key(name) {
			o.buf.WriteString("null")
		}
		return o
	}
	return o.String(name, *v)
}

// Uint writes an unsigned integer field in base 10.
func (o *Object) Uint(name string, v uint64) *Object {
	if o.key(name) {
		o.buf.WriteString(strconv.FormatUint(v, 10))
	}
	return o
}

// Bool writes a boolean field.
func (o *Object) Bool(name string, v bool) *Object {
	if o.key(name) {
		o.buf.WriteString(strconv.FormatBool(v))
	}
	return o
}

// Time writes a timestamp field using TimeLayout.
func (o *Object) Time(name string, t time.Time) *Object {
	if o.key(name) {
		o.buf.WriteByte('"')
		o.buf.WriteString(FormatTime(t))
		o.buf.WriteByte('"')
	}
	return o
}

// Strings writes a list of strings; a nil list is written as [].
func (o *Object) Strings(name string, v []string) *Object {
	if !o.key(name) {
		return o
	}
	o.buf.WriteByte('[')
	for i, s := range v {
		if i > 0 {
			o.buf.WriteByte(',')
		}
		if err := writeString(&o.buf, s); err != nil {
			o.err = fmt.Errorf("field %q[%d]: %w", name, i, err)
			return o
		}
	}
	o.buf.WriteByte(']')
	return o
}

// Object writes a nested object field.
func (o *Object) Object(name string, inner *Object) *Object {
	b, err := inner.Bytes()
	if err != nil {
		if o.err == nil {
			o.err = fmt.Errorf("field %q: %w", name, err)
		}
		return o
	}
	return o.Raw(name, b)
}

// Raw writes pre-encoded canonical bytes as the field value.
func (o *Object) Raw(name string, raw []byte) *Object {
	if o.key(name) {
		o.buf.Write(raw)
	}
	return o
}

// Bytes closes the object and returns its encoding.
func (o *Object) Bytes() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	out := make([]byte, o.buf.Len()+1)
	copy(out, o.buf.Bytes())
	out[len(out)-1] = '}'
	return out, nil
}

// FormatTime renders t in UTC with microsecond precision.
func FormatTime(t time.Time) string {
	return t.UTC().Truncate(time.Microsecond).Format(TimeLayout)
}

// ParseTime accepts any RFC 3339 timestamp and normalises it to the
// precision FormatTime writes.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return Truncate(t), nil
}

// Truncate normalises t to UTC at microsecond precision.
func Truncate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func writeString(buf *bytes.Buffer, s string) error {
	if !utf8.ValidString(s) {
		return ErrInvalidString
	}
	buf.WriteByte('"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		buf.WriteString(s[start:i])
		switch c {
		case '"', '\\':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexDigits[c>>4])
			buf.WriteByte(hexDigits[c&0xF])
		}
		start = i + 1
	}
	buf.WriteString(s[start:])
	buf.WriteByte('"')
	return nil
}
