package blob

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the length in bytes of the asset encryption key.
const KeySize = chacha20poly1305.KeySize

// LoadOrCreateKey returns the symmetric key stored at path, generating and
// persisting a fresh one on first start. Creation is guarded by a file lock
// so two cold-starting processes cannot mint different keys for the same
// store.
//
// Operational invariant: this file is the only copy of the key. Losing or
// overwriting it makes every asset already in the store permanently
// unrecoverable. There is no rotation support; rotating means provisioning
// a new key and re-encrypting all assets out of band.
func LoadOrCreateKey(path string) ([]byte, error) {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock key file: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != KeySize {
			return nil, fmt.Errorf("key file %s has %d bytes, want %d", path, len(key), KeySize)
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	key = make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}
	return key, nil
}
