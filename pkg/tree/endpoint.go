package tree

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// NetworkID is a chain id, or the wildcard "*" accepting any chain.
type NetworkID string

// AnyNetwork matches every chain id.
const AnyNetwork NetworkID = "*"

// ParseNetworkID accepts "*" or a base-10 integer.
func ParseNetworkID(raw string) (NetworkID, error) {
	raw = strings.TrimSpace(raw)
	if raw == string(AnyNetwork) {
		return AnyNetwork, nil
	}
	if _, err := strconv.ParseUint(raw, 10, 64); err != nil {
		return "", fmt.Errorf("invalid network id %q: must be '*' or a base-10 integer", raw)
	}
	return NetworkID(raw), nil
}

// Uint returns the numeric chain id. ok is false for the wildcard.
func (n NetworkID) Uint() (uint64, bool) {
	v, err := strconv.ParseUint(string(n), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseURL parses an endpoint, applying defaultScheme when raw carries none.
// An empty path is normalised to "/" so that serialised urls are stable.
func ParseURL(raw, defaultScheme string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("url cannot be empty")
	}
	if !strings.Contains(raw, "://") {
		raw = defaultScheme + "://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("url %q has no host", raw)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}

// Origin returns scheme://host[:port] of u.
func Origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}
