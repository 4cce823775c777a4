package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/zkpm/internal/domain/config"
	"github.com/trebuchet-org/zkpm/internal/usecase"
)

func TestListNetworks(t *testing.T) {
	resolver := &MockNetworkResolver{}
	resolver.On("GetNetworks", mock.Anything).Return([]string{"local", "sepolia", "zksync-sepolia"})
	resolver.On("ResolveNetwork", mock.Anything, "local").Return(nil, errors.New("connection refused"))
	resolver.On("ResolveNetwork", mock.Anything, "sepolia").Return(&config.Network{Name: "sepolia", RPCURL: "https://rpc.sepolia.org", ChainID: 11155111}, nil)
	resolver.On("ResolveNetwork", mock.Anything, "zksync-sepolia").Return(&config.Network{Name: "zksync-sepolia", RPCURL: "https://sepolia.era.zksync.dev", ChainID: 300}, nil)

	uc := usecase.NewListNetworks(testConfig(), resolver)
	result, err := uc.Run(context.Background(), usecase.ListNetworksParams{})
	require.NoError(t, err)
	require.Len(t, result.Networks, 3)

	assert.EqualError(t, result.Networks[0].Error, "connection refused")
	assert.False(t, result.Networks[0].Accepted)

	assert.Equal(t, uint64(11155111), result.Networks[1].ChainID)
	assert.False(t, result.Networks[1].Accepted)

	assert.Equal(t, uint64(300), result.Networks[2].ChainID)
	assert.Equal(t, "https://sepolia.era.zksync.dev", result.Networks[2].RPCURL)
	assert.True(t, result.Networks[2].Accepted)

	resolver.AssertExpectations(t)
}
