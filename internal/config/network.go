package config

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/zkpm/internal/domain"
	"github.com/trebuchet-org/zkpm/internal/domain/config"
)

const maxSuggestions = 3

// NetworkResolver resolves network names to configurations with caching
type NetworkResolver struct {
	networks map[string]string
	chainIDs map[string]uint64 // rpcURL -> chainID
	mu       sync.RWMutex
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(networks map[string]string) *NetworkResolver {
	return &NetworkResolver{
		networks: networks,
		chainIDs: make(map[string]uint64),
	}
}

// GetNetworks returns the configured network names, sorted
func (r *NetworkResolver) GetNetworks() []string {
	names := lo.Keys(r.networks)
	sort.Strings(names)
	return names
}

// Resolve resolves a network name to its configuration. The chain ID is left
// zero; callers that need it query the node with FetchChainID.
func (r *NetworkResolver) Resolve(networkName string) (*config.Network, error) {
	rpcURL, exists := r.networks[networkName]
	if !exists {
		return nil, domain.UnknownNetworkErr{
			Name:        networkName,
			Suggestions: r.suggest(networkName),
		}
	}

	if name, unresolved := DetectEnvVar(rpcURL); unresolved {
		return nil, fmt.Errorf("network %s uses ${%s} which is not set (set %s in the environment or .env)", networkName, name, name)
	}
	if rpcURL == "" {
		envVar := GenerateEnvVarName(networkName)
		return nil, fmt.Errorf("network %s has an empty RPC URL (use %s = \"${%s}\" in zkpm.toml and set %s)", networkName, networkName, envVar, envVar)
	}

	r.mu.RLock()
	chainID := r.chainIDs[rpcURL]
	r.mu.RUnlock()

	return &config.Network{
		Name:    networkName,
		RPCURL:  rpcURL,
		ChainID: chainID,
	}, nil
}

// FetchChainID asks the node behind rpcURL for its chain ID. Results are cached
// per URL for the lifetime of the resolver.
func (r *NetworkResolver) FetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	r.mu.RLock()
	if chainID, ok := r.chainIDs[rpcURL]; ok {
		r.mu.RUnlock()
		return chainID, nil
	}
	r.mu.RUnlock()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to %s: %w", rpcURL, err)
	}
	defer client.Close()

	id, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch chain ID: %w", err)
	}
	if !id.IsUint64() {
		return 0, fmt.Errorf("chain ID %s out of range", id)
	}

	r.mu.Lock()
	r.chainIDs[rpcURL] = id.Uint64()
	r.mu.Unlock()

	return id.Uint64(), nil
}

func (r *NetworkResolver) suggest(name string) []string {
	matches := fuzzy.Find(name, r.GetNetworks())
	suggestions := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, m.Str)
	}
	return suggestions
}
