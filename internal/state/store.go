// Package state implements the client's persisted key-value state container.
// It is the Go counterpart of the browser's localStorage slice owned by the
// web client: every store (session identity, cart, credentials) keeps its
// state under a well-known key and is the single writer for that key.
package state

// Well-known state keys. Each key is exclusively owned by one store.
const (
	KeySessionID     = "session_id"
	KeyTableNumber   = "table_number"
	KeyActiveOrder   = "active_order"
	KeyCart          = "cart"
	KeyStaffToken    = "staff_token"
	KeyMemberToken   = "member_token"
	KeyMemberProfile = "member_profile"
)

// Store is the persistence adapter boundary. Values are opaque byte slices;
// callers own their encoding. Implementations must notify subscribers of a
// key after every successful Set or Delete of that key.
type Store interface {
	// Get returns the stored value and whether the key is present.
	Get(key string) ([]byte, bool)

	// Set stores the value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error

	// Subscribe registers fn to run after every mutation of key.
	// The returned func cancels the subscription.
	Subscribe(key string, fn func(key string)) (cancel func())
}
