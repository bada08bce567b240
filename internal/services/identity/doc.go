// Package identity implements the local identity session.
//
// A Session moves through three states: NoIdentity, HasKeyOnly and
// HasProfile. It owns at most one key pair and one signed profile, persists
// both through a domain.KeyValueStore under fixed keys, and hands freshly
// signed posts and messages to the caller. Every transition that touches
// storage either lands in both memory and storage or in neither.
//
// A Session is not safe for concurrent use; callers serialise access.
package identity
