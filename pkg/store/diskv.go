package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

type diskvKV struct {
	d        *diskv.Diskv
	basePath string
}

// OpenDiskv stores each record as a file directly under basePath. Records
// are read from disk every time so writes from other processes are seen.
func OpenDiskv(basePath string) (KV, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &diskvKV{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    flatTransform,
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

func flatTransform(string) []string {
	return []string{}
}

func (p *diskvKV) Read(key string) ([]byte, error) {
	if !p.d.Has(key) {
		return nil, ErrNotFound
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (p *diskvKV) Write(key string, val []byte) error {
	if err := p.d.Write(key, val); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *diskvKV) Erase(key string) error {
	if !p.d.Has(key) {
		return nil
	}
	if err := p.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func (p *diskvKV) Close() error {
	return nil
}
