package ethrpc

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/rpc/v2/json2"
)

// Client issues JSON-RPC 2.0 calls against Ethereum endpoints.
type Client struct {
	HTTPClient *http.Client
}

// New returns a client with the given request timeout.
func New(timeout time.Duration) *Client {
	return &Client{HTTPClient: &http.Client{Timeout: timeout}}
}

// Call sends method with positional params and decodes the result into reply.
func (c *Client) Call(ctx context.Context, endpoint, method string, params []any, reply any) error {
	if params == nil {
		params = []any{}
	}
	body, err := json2.EncodeClientRequest(method, params)
	if err != nil {
		return fmt.Errorf("encode %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%s %s: unexpected status %s", method, endpoint, resp.Status)
	}
	if err := json2.DecodeClientResponse(resp.Body, reply); err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	return nil
}

// NetVersion returns the network id reported by the node.
func (c *Client) NetVersion(ctx context.Context, endpoint string) (string, error) {
	var version string
	if err := c.Call(ctx, endpoint, "net_version", nil, &version); err != nil {
		return "", err
	}
	return version, nil
}
