package interfaces

// KeyValueStore is the persistence collaborator. Values are opaque bytes;
// JSON conveniences live in the store package.
type KeyValueStore interface {
	// Get returns ok == false, with a nil error, when key is absent.
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	// Remove succeeds when key is already absent.
	Remove(key string) error
}
