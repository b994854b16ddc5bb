package overlay

import (
	"errors"
	"fmt"
	"log/slog"

	"tableflip.dev/satcat/pkg/store"
)

// StorageCorruptError reports a stored overlay record that could not be
// parsed. Load substitutes an empty overlay when it returns this error.
type StorageCorruptError struct {
	Key string
	Err error
}

func (e *StorageCorruptError) Error() string {
	return fmt.Sprintf("overlay: stored record %q is corrupt: %v", e.Key, e.Err)
}

func (e *StorageCorruptError) Unwrap() error {
	return e.Err
}

// Store persists an overlay as a single record in a KV.
type Store struct {
	KV     store.KV
	Key    string
	Logger *slog.Logger
}

// NewStore returns a Store writing to key, or store.DefaultOverlayKey when
// key is empty.
func NewStore(kv store.KV, key string, logger *slog.Logger) *Store {
	if key == "" {
		key = store.DefaultOverlayKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{KV: kv, Key: key, Logger: logger}
}

// Load reads the stored overlay. A missing record is an empty overlay. A
// corrupt record is logged and also yields an empty overlay, together with a
// *StorageCorruptError the caller may surface; any other error is an I/O
// failure of the KV.
func (s *Store) Load() (Overlay, error) {
	if s.KV == nil {
		return Empty(), errors.New("overlay: no store configured")
	}
	data, err := s.KV.Read(s.Key)
	if errors.Is(err, store.ErrNotFound) {
		return Empty(), nil
	}
	if err != nil {
		return Empty(), err
	}
	o, err := Unmarshal(data)
	if err != nil {
		corrupt := &StorageCorruptError{Key: s.Key, Err: err}
		s.logger().Warn("discarding unreadable overlay", "key", s.Key, "error", err)
		return Empty(), corrupt
	}
	return o, nil
}

// Save replaces the stored record with o.
func (s *Store) Save(o Overlay) error {
	if s.KV == nil {
		return errors.New("overlay: no store configured")
	}
	data, err := Marshal(o)
	if err != nil {
		return fmt.Errorf("overlay: marshal: %w", err)
	}
	return s.KV.Write(s.Key, data)
}

// Clear removes the stored record, reverting to the baseline on next load.
func (s *Store) Clear() error {
	if s.KV == nil {
		return errors.New("overlay: no store configured")
	}
	return s.KV.Erase(s.Key)
}

func (s *Store) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
