// package storage provides the durable key-value surface backing the session store.
//
// Values are opaque strings (JSON documents in practice). A missing key is
// reported via the bool return, not an error; callers treat unparseable
// values as absent.
package storage

// KV is the persistent key-value surface the session store writes through to.
//
// Implementations must be safe for use from multiple goroutines.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any existing value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}
