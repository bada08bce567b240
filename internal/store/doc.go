// Package store provides the key-value storage collaborators used by the
// identity session.
//
// Every store implements domain.KeyValueStore over opaque byte values and is
// safe for concurrent use via internal locking:
//   - MemoryStore keeps values in a map (tests, --backend memory)
//   - FileStore writes one file per key under a directory, optionally sealed
//     with a passphrase
//   - SQLiteStore keeps values in a single keystore table
//
// GetJSON and SetJSON add the JSON codec on top and classify failures as
// domain.ErrStorage or domain.ErrSerialization.
package store
