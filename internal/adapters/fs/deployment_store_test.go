package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/zkpm/internal/domain"
	"github.com/trebuchet-org/zkpm/internal/domain/models"
)

func TestDeploymentStoreAdapter(t *testing.T) {
	ctx := context.Background()
	store := NewDeploymentStoreAdapter()
	path := filepath.Join(t.TempDir(), "records", "deployment.yaml")

	record := &models.DeploymentRecord{
		Network:    "zksync-sepolia",
		ChainID:    300,
		ERC20:      "0x00000000000000000000000000000000000000Aa",
		Paymaster:  "0x00000000000000000000000000000000000000bB",
		Wallet:     "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23",
		DeployedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, path, record))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "chain_id: 300")
	assert.Contains(t, string(data), "network: zksync-sepolia")
	assert.NotContains(t, string(data), "key")

	loaded, err := store.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, record, loaded)
}

func TestDeploymentStoreAdapter_Missing(t *testing.T) {
	_, err := NewDeploymentStoreAdapter().Load(context.Background(), filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, domain.ErrDeploymentNotFound)
}

func TestDeploymentStoreAdapter_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chain_id: [unterminated"), 0644))

	_, err := NewDeploymentStoreAdapter().Load(context.Background(), path)
	assert.ErrorContains(t, err, "failed to parse deployment record")
}
