// Package store provides the durable key-value records that satcat keeps its
// edit overlay and navigation state in.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by KV.Read when no record exists for the key.
var ErrNotFound = errors.New("store: key not found")

// Driver names accepted by Open.
const (
	DriverDiskv  = "diskv"
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
)

// sqliteFile is the database file name used inside the base path.
const sqliteFile = "satcat.sqlite"

// KV is the persistence contract the core needs: whole records addressed by a
// fixed key, read once at startup and rewritten after each mutation.
type KV interface {
	Read(key string) ([]byte, error)
	Write(key string, val []byte) error
	Erase(key string) error
	Close() error
}

// Drivers lists the supported driver names.
func Drivers() []string {
	return []string{DriverDiskv, DriverBadger, DriverSQLite}
}

// Open creates the KV selected by cfg. A nil cfg is loaded with LoadConfig.
func Open(cfg Config, logger *slog.Logger) (KV, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	base := cfg.BasePath()
	if strings.TrimSpace(base) == "" {
		return nil, errors.New("store: base path unknown")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Driver())) {
	case "", DriverDiskv:
		return OpenDiskv(base)
	case DriverBadger:
		return OpenBadger(BadgerConfig{Path: base, SyncWrites: true, Logger: logger})
	case DriverSQLite:
		return OpenSQLite(filepath.Join(base, sqliteFile))
	default:
		return nil, fmt.Errorf("store: unknown driver %q (expected one of %s)", cfg.Driver(), strings.Join(Drivers(), ", "))
	}
}
