// Package store provides durable key-value storage for launcher state.
//
// Each key is stored as its own JSON document under a single data directory,
// mirroring the browser local-storage layout of the web launcher.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Namespace prefixes every key written by kittengames.
const Namespace = "kittengames-"

// Persisted state keys.
const (
	KeySettings     = Namespace + "settings"
	KeyCustomThemes = Namespace + "custom-themes"
	KeyCloak        = Namespace + "cloak"
)

var (
	// ErrNotFound is returned when a key has no stored value.
	ErrNotFound = errors.New("key not found")
	// ErrInvalidKey is returned for keys that cannot be mapped to a file name.
	ErrInvalidKey = errors.New("invalid key")
	// ErrCorrupt is returned when a stored value is not valid JSON for its type.
	ErrCorrupt = errors.New("stored value is corrupt")
)

// KV is durable key-value storage.
type KV interface {
	// Get returns the stored bytes or ErrNotFound.
	Get(key string) ([]byte, error)

	// Set replaces the stored bytes for key.
	Set(key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}

// validateKey rejects keys that would escape the data directory.
func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// LoadJSON decodes the value stored under key into v.
// Returns false with a nil error if the key is not present.
func LoadJSON(kv KV, key string, v any) (bool, error) {
	data, err := kv.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(kv KV, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(key, data)
}
