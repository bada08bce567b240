// Package signing creates and checks SignedEntity values.
//
// A signature always covers the entity's canonical bytes. Verification is a
// boolean trust decision: malformed keys, malformed signatures and
// cryptographic mismatches all report false.
package signing
