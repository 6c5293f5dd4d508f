// Package storage provides the key-value persistence layer shared by the
// profile, score and settings stores. Two backends implement the same
// interface; the application picks one at startup and the rest of the code
// never branches on it.
package storage

// KeyValueStore is the persistence capability the domain stores build on.
// Values are opaque JSON documents under short keys ("profiles", "scores",
// "settings"). A single process is assumed to be the only writer.
type KeyValueStore interface {
	// Get returns the stored value for key. The second result is false
	// when the key has never been written.
	Get(key string) ([]byte, bool, error)

	// Set writes the value for key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(key string) error

	// Close releases backend resources.
	Close() error
}
