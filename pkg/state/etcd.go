package state

import (
	"context"
	"fmt"
	"strings"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// EtcdConfig configures the shared etcd-backed store.
type EtcdConfig struct {
	Endpoints   []string
	Prefix      string
	DialTimeout time.Duration
}

// EtcdStore shares global state between machines through etcd. Keys are
// namespaced under Prefix.
type EtcdStore struct {
	client *clientv3.Client
	prefix string
}

// NewEtcdStore connects to the configured endpoints.
func NewEtcdStore(cfg EtcdConfig) (*EtcdStore, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, fmt.Errorf("etcd store requires at least one endpoint")
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: cfg.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("connect etcd: %w", err)
	}
	return &EtcdStore{client: client, prefix: normalizePrefix(cfg.Prefix)}, nil
}

func normalizePrefix(p string) string {
	if p == "" {
		p = "/tnet/"
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

func (s *EtcdStore) key(k string) string {
	return s.prefix + k
}

func (s *EtcdStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	resp, err := s.client.Get(ctx, s.key(key))
	if err != nil {
		return nil, false, fmt.Errorf("etcd get %s: %w", key, err)
	}
	if len(resp.Kvs) == 0 {
		return nil, false, nil
	}
	return resp.Kvs[0].Value, true, nil
}

func (s *EtcdStore) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.client.Put(ctx, s.key(key), string(value)); err != nil {
		return fmt.Errorf("etcd put %s: %w", key, err)
	}
	return nil
}

func (s *EtcdStore) Delete(ctx context.Context, key string) error {
	if _, err := s.client.Delete(ctx, s.key(key)); err != nil {
		return fmt.Errorf("etcd delete %s: %w", key, err)
	}
	return nil
}

func (s *EtcdStore) Close() error {
	return s.client.Close()
}
