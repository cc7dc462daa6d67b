package state

import "context"

// Keys under which the workspace state is persisted.
const (
	KeyTree     = "treeContent"
	KeyMnemonic = "mnemonicStorage"
)

// Store is an opaque key/value store for global extension state.
type Store interface {
	// Get returns the value for key. ok is false when the key is unset.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
