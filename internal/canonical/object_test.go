package canonical_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snartnet/internal/canonical"
)

func TestObject_FieldOrderAndNulls(t *testing.T) {
	bio := "hello"
	b, err := canonical.NewObject().
		String("z", "last-declared-first").
		OptString("bio", &bio).
		OptString("avatar", nil).
		Uint("version", 3).
		Bool("encrypted", false).
		Strings("tags", nil).
		Bytes()
	require.NoError(t, err)
	assert.Equal(t,
		`{"z":"last-declared-first","bio":"hello","avatar":null,"version":3,"encrypted":false,"tags":[]}`,
		string(b))
}

func TestObject_Empty(t *testing.T) {
	b, err := canonical.NewObject().Bytes()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))
}

func TestObject_Nested(t *testing.T) {
	inner := canonical.NewObject().String("type", "group").String("groupId", "g1")
	b, err := canonical.NewObject().Object("kind", inner).Bytes()
	require.NoError(t, err)
	assert.Equal(t, `{"kind":{"type":"group","groupId":"g1"}}`, string(b))
}

func TestObject_StringEscaping(t *testing.T) {
	in := "a\"b\\c\n\t\x01<tag>&é "
	b, err := canonical.NewObject().String("s", in).Bytes()
	require.NoError(t, err)
	assert.Equal(t, `{"s":"a\"b\\c\n\t\u0001<tag>&é`+" "+`"}`, string(b))

	// Still valid JSON that decodes back to the input.
	var out map[string]string
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out["s"])
}

func TestObject_InvalidUTF8(t *testing.T) {
	_, err := canonical.NewObject().String("s", "ok").String("bad", "\xff").Bytes()
	require.ErrorIs(t, err, canonical.ErrInvalidString)
}

func TestTime_FixedPrecision(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2024, 5, 6, 9, 8, 7, 123456789, loc)
	assert.Equal(t, "2024-05-06T07:08:07.123456Z", canonical.FormatTime(ts))

	whole := time.Date(2024, 5, 6, 7, 8, 7, 0, time.UTC)
	assert.Equal(t, "2024-05-06T07:08:07.000000Z", canonical.FormatTime(whole))
}

func TestTime_ParseRoundTrip(t *testing.T) {
	s := "2024-05-06T07:08:07.123456Z"
	ts, err := canonical.ParseTime(s)
	require.NoError(t, err)
	assert.Equal(t, s, canonical.FormatTime(ts))

	ts, err = canonical.ParseTime("2024-05-06T09:08:07.1234567+02:00")
	require.NoError(t, err)
	assert.Equal(t, s, canonical.FormatTime(ts))

	_, err = canonical.ParseTime("yesterday")
	require.Error(t, err)
}
