package config

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/zkpm/internal/config"
	"github.com/trebuchet-org/zkpm/internal/domain"
)

func TestNetworkResolverAdapter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID json.RawMessage `json:"id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": "0x144"})
	}))
	defer server.Close()

	adapter := NewNetworkResolverAdapter(config.NewNetworkResolver(map[string]string{
		"zksync": server.URL,
		"down":   "http://127.0.0.1:1",
	}))
	ctx := context.Background()

	assert.Equal(t, []string{"down", "zksync"}, adapter.GetNetworks(ctx))

	network, err := adapter.ResolveNetwork(ctx, "zksync")
	require.NoError(t, err)
	assert.Equal(t, uint64(324), network.ChainID)
	assert.Equal(t, server.URL, network.RPCURL)

	_, err = adapter.ResolveNetwork(ctx, "down")
	assert.ErrorContains(t, err, "failed to fetch chain ID for network down")

	_, err = adapter.ResolveNetwork(ctx, "zksyn")
	assert.ErrorIs(t, err, domain.ErrNetworkNotFound)
}
