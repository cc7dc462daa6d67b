package mnemonic

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/state"
)

// Repository stores mnemonics as files under dir and remembers their paths
// in global state.
type Repository struct {
	store state.Store
	dir   string
}

// NewRepository returns a repository writing mnemonic files into dir.
func NewRepository(store state.Store, dir string) *Repository {
	return &Repository{store: store, dir: dir}
}

// Paths returns every saved mnemonic path, oldest first.
func (r *Repository) Paths(ctx context.Context) ([]string, error) {
	raw, ok, err := r.store.Get(ctx, state.KeyMnemonic)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}
	var paths []string
	if err := json.Unmarshal(raw, &paths); err != nil {
		return nil, fmt.Errorf("decode mnemonic history: %w", err)
	}
	return paths, nil
}

// ExistingPaths returns saved paths whose files are still present.
func (r *Repository) ExistingPaths(ctx context.Context) ([]string, error) {
	paths, err := r.Paths(ctx)
	if err != nil {
		return nil, err
	}
	out := paths[:0]
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

// SavePath appends path to the history. Paths are not deduplicated.
func (r *Repository) SavePath(ctx context.Context, path string) error {
	paths, err := r.Paths(ctx)
	if err != nil {
		return err
	}
	paths = append(paths, path)
	raw, err := json.Marshal(paths)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, state.KeyMnemonic, raw)
}

// Save writes m to a new file and records its path.
func (r *Repository) Save(ctx context.Context, m string) (string, error) {
	if err := os.MkdirAll(r.dir, 0700); err != nil {
		return "", fmt.Errorf("create mnemonic dir: %w", err)
	}
	path := filepath.Join(r.dir, strconv.FormatInt(time.Now().UnixNano(), 10)+".env")
	if err := os.WriteFile(path, []byte(normalize(m)), 0600); err != nil {
		return "", fmt.Errorf("write mnemonic: %w", err)
	}
	if err := r.SavePath(ctx, path); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads the mnemonic stored at path.
func (r *Repository) Load(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read mnemonic: %w", err)
	}
	return normalize(string(raw)), nil
}
