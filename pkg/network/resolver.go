// Package network turns tree items into truffle network definitions: gas
// settings, RPC addresses and mnemonic-backed providers.
package network

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/keys"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/mnemonic"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/models"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/prompt"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/tree"
)

// ErrNotReady is returned when a network has no usable RPC address yet,
// typically because its access key could not be fetched.
var ErrNotReady = errors.New("network is not ready")

// ErrCancelled is returned by GasPrice and GasLimit when the user dismisses
// the prompt. An empty answer is not a cancellation.
var ErrCancelled = errors.New("prompt dismissed")

// MnemonicSource picks the mnemonic used to sign for a network.
type MnemonicSource interface {
	Select(ctx context.Context) (*mnemonic.Selection, error)
}

// Resolver resolves network settings for tree items.
type Resolver struct {
	Prompter  prompt.Prompter
	Keys      keys.Provider
	Mnemonics MnemonicSource
	Log       logrus.FieldLogger
}

func (r *Resolver) log() logrus.FieldLogger {
	if r.Log == nil {
		return logrus.StandardLogger()
	}
	return r.Log
}

func lookup(item *tree.Item) (behavior, error) {
	b, ok := behaviors[item.Type]
	if !ok {
		return behavior{}, fmt.Errorf("%s %q is not a network", item.Type, item.Label)
	}
	return b, nil
}

// GasPrice returns nil when the build tool should use its default.
func (r *Resolver) GasPrice(ctx context.Context, item *tree.Item) (*uint64, error) {
	return r.gas(item, "Enter gas price")
}

// GasLimit returns nil when the build tool should use its default.
func (r *Resolver) GasLimit(ctx context.Context, item *tree.Item) (*uint64, error) {
	return r.gas(item, "Enter gas limit")
}

func (r *Resolver) gas(item *tree.Item, label string) (*uint64, error) {
	b, err := lookup(item)
	if err != nil {
		return nil, err
	}
	switch b.gas {
	case gasFree:
		var zero uint64
		return &zero, nil
	case gasPrompt:
		if r.Prompter == nil {
			return nil, fmt.Errorf("%s: no prompter configured", label)
		}
		v, ok, err := r.Prompter.Input(label, ValidateGas)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrCancelled
		}
		return parseGas(v)
	}
	return nil, nil
}

// ValidateGas accepts an empty string or a non-negative integer.
func ValidateGas(v string) error {
	_, err := parseGas(v)
	return err
}

func parseGas(v string) (*uint64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("value must be a non-negative integer: %q", v)
	}
	return &n, nil
}

// URL returns the endpoint of a node or the first url of a consortium.
func URL(item *tree.Item) (*url.URL, bool) {
	if ep, ok := item.Endpoint(); ok && ep.URL != nil {
		return ep.URL, true
	}
	if c, ok := item.Payload.(*tree.Consortium); ok && len(c.URLs) > 0 {
		return c.URLs[0], true
	}
	return nil, false
}

// Address renders u the way RPC clients expect it: the bare origin when
// the path is empty, the full href otherwise.
func Address(u *url.URL) string {
	if u.Path == "" || u.Path == "/" {
		return tree.Origin(u)
	}
	return u.String()
}

// RPCAddress returns the address to send JSON-RPC requests to. An empty
// string means the network is not ready.
func (r *Resolver) RPCAddress(ctx context.Context, item *tree.Item) string {
	u, ok := URL(item)
	if !ok {
		return ""
	}
	b, err := lookup(item)
	if err != nil || b.keyPath == "" {
		return Address(u)
	}
	if r.Keys == nil {
		r.telemetry(item, errors.New("no access key provider configured"))
		return ""
	}
	key, err := r.Keys.AccessKey(ctx, item)
	if err != nil {
		r.telemetry(item, err)
		return ""
	}
	return tree.Origin(u) + b.keyPath + key
}

func (r *Resolver) telemetry(item *tree.Item, err error) {
	r.log().WithError(err).WithFields(logrus.Fields{
		"item":     item.Label,
		"itemType": int(item.Type),
	}).Warn("access key unavailable")
}

// NetworkID returns the chain id a truffle network should match.
func NetworkID(item *tree.Item) tree.NetworkID {
	if ep, ok := item.Endpoint(); ok && ep.NetworkID != "" {
		return ep.NetworkID
	}
	switch item.Type {
	case tree.TypeMainNetConsortium:
		return MainNetID
	case tree.TypeTestNetConsortium:
		if id, ok := TestNetID(item.Label); ok {
			return id
		}
	}
	return tree.AnyNetwork
}

// TruffleNetwork builds the network definition for item. It returns nil
// without error when the user dismisses any prompt; nothing after the
// dismissed prompt is asked.
func (r *Resolver) TruffleNetwork(ctx context.Context, item *tree.Item) (*models.TruffleNetwork, error) {
	b, err := lookup(item)
	if err != nil {
		return nil, err
	}
	u, ok := URL(item)
	if !ok {
		return nil, fmt.Errorf("%s %q has no url", item.Type, item.Label)
	}

	n := &models.TruffleNetwork{
		Name: item.Label,
		Options: models.NetworkOptions{
			NetworkID: string(NetworkID(item)),
		},
	}
	if n.Options.GasPrice, err = r.GasPrice(ctx, item); err != nil {
		return nil, ignoreCancel(err)
	}
	if n.Options.Gas, err = r.GasLimit(ctx, item); err != nil {
		return nil, ignoreCancel(err)
	}

	switch b.provider {
	case providerHostPort:
		n.Options.Host = u.Hostname()
		n.Options.Port = port(u)
	case providerMnemonic:
		addr := r.RPCAddress(ctx, item)
		if addr == "" {
			return nil, fmt.Errorf("%s %q: %w", item.Type, item.Label, ErrNotReady)
		}
		if r.Mnemonics == nil {
			return nil, fmt.Errorf("%s %q: no mnemonic source configured", item.Type, item.Label)
		}
		sel, err := r.Mnemonics.Select(ctx)
		if err != nil || sel == nil {
			return nil, err
		}
		n.Options.Provider = &models.Provider{Mnemonic: sel.Path, URL: addr}
	}

	r.log().WithFields(logrus.Fields{
		"network": n.Name,
		"type":    item.Type.String(),
	}).Debug("resolved truffle network")
	return n, nil
}

func ignoreCancel(err error) error {
	if errors.Is(err, ErrCancelled) {
		return nil
	}
	return err
}

func port(u *url.URL) int {
	if p, err := strconv.Atoi(u.Port()); err == nil {
		return p
	}
	if u.Scheme == "https" {
		return 443
	}
	return 80
}
