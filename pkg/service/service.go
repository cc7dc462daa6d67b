package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/debounce"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/factory"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/state"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/tree"
)

// ErrNotFound is returned when a labelled item does not exist.
var ErrNotFound = errors.New("not found")

// DefaultRefreshDebounce is the delay between the last tree change and the
// persisted refresh.
const DefaultRefreshDebounce = 300 * time.Millisecond

// ConsortiumsLabel is the label of the root group holding consortiums.
const ConsortiumsLabel = "Consortiums"

// Config holds service configuration
type Config struct {
	RefreshDebounce time.Duration
}

// Service owns the network tree. Mutations run under the write lock so
// renders never observe a half-applied change.
type Service struct {
	Config  *Config
	Store   state.Store
	Factory *factory.Factory
	Log     logrus.FieldLogger

	mu      sync.RWMutex
	roots   []*tree.Item
	refresh *debounce.Debouncer

	// saveMu orders writes of the persisted tree against Reset.
	saveMu sync.Mutex
}

// New creates a service persisting to store. Call Load before use.
func New(config *Config, store state.Store, log logrus.FieldLogger) *Service {
	if config == nil {
		config = &Config{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	wait := config.RefreshDebounce
	if wait <= 0 {
		wait = DefaultRefreshDebounce
	}
	s := &Service{
		Config:  config,
		Store:   store,
		Factory: factory.Default(),
		Log:     log,
	}
	s.refresh = debounce.New(wait, s.onRefresh)
	return s
}

// Load restores the persisted tree and adds any missing default services.
// A malformed persisted tree aborts the load.
func (s *Service) Load(ctx context.Context) error {
	data, ok, err := s.Store.Get(ctx, state.KeyTree)
	if err != nil {
		return fmt.Errorf("read tree: %w", err)
	}
	var roots []*tree.Item
	if ok && len(data) > 0 {
		if roots, err = s.Factory.Decode(data); err != nil {
			return fmt.Errorf("load tree: %w", err)
		}
	}

	s.mu.Lock()
	s.setRoots(roots)
	s.mu.Unlock()
	s.Log.WithField("roots", len(roots)).Debug("tree loaded")
	return nil
}

// setRoots must be called with the write lock held.
func (s *Service) setRoots(roots []*tree.Item) {
	roots = withDefaults(roots)
	for _, r := range roots {
		r.SetObserver(s.observe)
	}
	s.roots = roots
}

func (s *Service) observe(changed *tree.Item) {
	s.Log.WithField("item", changed.Label).Debug("tree changed")
	s.refresh.Trigger()
}

func (s *Service) onRefresh() {
	if err := s.Save(context.Background()); err != nil {
		s.Log.WithError(err).Error("persist tree")
	}
}

// Save writes the tree to the store.
func (s *Service) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	data, err := s.Snapshot()
	if err != nil {
		return err
	}
	if err := s.Store.Put(ctx, state.KeyTree, data); err != nil {
		return fmt.Errorf("save tree: %w", err)
	}
	return nil
}

// Snapshot returns the persisted JSON form of the tree.
func (s *Service) Snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := factory.Encode(s.roots)
	if err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	return data, nil
}

// Import replaces the tree with data, which must decode cleanly.
func (s *Service) Import(ctx context.Context, data []byte) error {
	roots, err := s.Factory.Decode(data)
	if err != nil {
		return fmt.Errorf("import tree: %w", err)
	}
	s.mu.Lock()
	s.setRoots(roots)
	s.mu.Unlock()
	return s.Save(ctx)
}

// Reset drops the persisted tree and restores the default services. A save
// already in progress completes before the tree is dropped.
func (s *Service) Reset(ctx context.Context) error {
	s.refresh.Stop()
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if err := s.Store.Delete(ctx, state.KeyTree); err != nil {
		return fmt.Errorf("reset tree: %w", err)
	}
	s.mu.Lock()
	s.setRoots(nil)
	s.mu.Unlock()
	return nil
}

// Roots returns the top level items.
func (s *Service) Roots() []*tree.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*tree.Item, len(s.roots))
	copy(out, s.roots)
	return out
}

// Close flushes a pending refresh and closes the store.
func (s *Service) Close() error {
	s.refresh.Flush()
	return s.Store.Close()
}

// mutate runs fn under the write lock.
func (s *Service) mutate(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}
