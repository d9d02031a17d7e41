package storage

import (
	"context"
	"errors"
)

// DefaultKey is the storage key used when no session-specific key is given
const DefaultKey = "resume-data"

// ErrNotFound is returned by Backend.Get when no record exists for the key
var ErrNotFound = errors.New("storage: record not found")

// ErrQuotaExceeded is returned by a backend that refuses a write for size
var ErrQuotaExceeded = errors.New("storage: quota exceeded")

// Backend is a key-value store of serialized records
type Backend interface {
	// Get returns the stored bytes for key, or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value under key, replacing any previous value
	Put(ctx context.Context, key string, value []byte) error
	// Close releases any resources held by the backend
	Close() error
}

// SessionKey returns the storage key for an editing session
func SessionKey(sessionID string) string {
	if sessionID == "" {
		return DefaultKey
	}
	return DefaultKey + ":" + sessionID
}
