package ethrpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	Version string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      json.RawMessage `json:"id"`
}

func node(t *testing.T, handler func(req rpcRequest) (any, *map[string]any)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		result, rpcErr := handler(req)
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if rpcErr != nil {
			resp["error"] = *rpcErr
		} else {
			resp["result"] = result
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestNetVersion(t *testing.T) {
	srv := node(t, func(req rpcRequest) (any, *map[string]any) {
		assert.Equal(t, "2.0", req.Version)
		assert.Equal(t, "net_version", req.Method)
		assert.JSONEq(t, `[]`, string(req.Params))
		return "5777", nil
	})
	defer srv.Close()

	v, err := New(time.Second).NetVersion(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "5777", v)
}

func TestRPCError(t *testing.T) {
	srv := node(t, func(req rpcRequest) (any, *map[string]any) {
		return nil, &map[string]any{"code": -32601, "message": "method not found"}
	})
	defer srv.Close()

	_, err := New(time.Second).NetVersion(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "method not found")
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := New(200*time.Millisecond).NetVersion(context.Background(), srv.URL)
	assert.Error(t, err)
}
