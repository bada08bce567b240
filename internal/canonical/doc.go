// Package canonical produces the byte form that every signed entity is
// signed over.
//
// The encoding is a compact JSON object written field by field in the order
// the caller supplies, never in map or reflection order. Rules (schema
// snartnet-canonical-v1):
//
//   - no insignificant whitespace
//   - absent optional values are written as null, never omitted
//   - empty lists are written as []
//   - timestamps are RFC 3339 UTC with exactly six fractional digits
//   - strings must be valid UTF-8; only '"', '\\' and control characters
//     below U+0020 are escaped, everything else is written literally
//
// Any reimplementation that follows these rules reproduces the same bytes.
package canonical
