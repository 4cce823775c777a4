package config

import (
	"context"
	"fmt"
	"time"

	"github.com/trebuchet-org/zkpm/internal/config"
	domainconfig "github.com/trebuchet-org/zkpm/internal/domain/config"
	"github.com/trebuchet-org/zkpm/internal/usecase"
)

const chainIDTimeout = 10 * time.Second

// NetworkResolverAdapter adapts the config.NetworkResolver to the usecase.NetworkResolver interface
type NetworkResolverAdapter struct {
	resolver *config.NetworkResolver
}

// NewNetworkResolverAdapter creates a new adapter
func NewNetworkResolverAdapter(resolver *config.NetworkResolver) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		resolver: resolver,
	}
}

// GetNetworks returns all configured network names
func (a *NetworkResolverAdapter) GetNetworks(ctx context.Context) []string {
	return a.resolver.GetNetworks()
}

// ResolveNetwork resolves a network name and asks its node for the chain ID
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, networkName string) (*domainconfig.Network, error) {
	network, err := a.resolver.Resolve(networkName)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, chainIDTimeout)
	defer cancel()

	chainID, err := a.resolver.FetchChainID(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", networkName, err)
	}
	network.ChainID = chainID
	return network, nil
}

// Ensure the adapter implements the interface
var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
