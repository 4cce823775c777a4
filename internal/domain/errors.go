package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Sentinel errors for domain operations
var (
	// ErrWrongNetwork is returned when the connected chain is not one of the accepted chains
	ErrWrongNetwork = errors.New("wrong network")

	// ErrWalletNotEmpty is returned when a wallet that must hold no native currency has a balance
	ErrWalletNotEmpty = errors.New("the wallet is not empty")

	// ErrNetworkNotFound is returned when a network name is not configured
	ErrNetworkNotFound = errors.New("network not found")

	// ErrNoNetwork is returned when an operation needs a network and none was selected
	ErrNoNetwork = errors.New("no network selected, --network flag is required")

	// ErrNoDeployerKey is returned when deploying without a funded signer configured
	ErrNoDeployerKey = errors.New("deployer_private_key is not configured")

	// ErrInvalidPrivateKey is returned when a private key cannot be parsed
	ErrInvalidPrivateKey = errors.New("invalid private key")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrArtifactNotFound is returned when a contract artifact can't be loaded
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrDeploymentNotFound is returned when a deployment record doesn't exist
	ErrDeploymentNotFound = errors.New("deployment record not found")

	// ErrTransactionReverted is returned when a mined transaction has a failed status
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrAborted is returned when the user declines a confirmation prompt
	ErrAborted = errors.New("aborted by user")
)

// UnsupportedChainErr reports a connected chain outside the accepted set.
type UnsupportedChainErr struct {
	ChainID  uint64
	Accepted []uint64
}

func (e UnsupportedChainErr) Error() string {
	accepted := lo.Map(e.Accepted, func(id uint64, _ int) string {
		return fmt.Sprintf("%d", id)
	})
	return fmt.Sprintf("must be connected to zkSync: chain ID %d is not one of [%s]", e.ChainID, strings.Join(accepted, ", "))
}

func (e UnsupportedChainErr) Is(target error) bool {
	return target == ErrWrongNetwork
}

// UnknownNetworkErr reports a network name missing from the configuration.
type UnknownNetworkErr struct {
	Name        string
	Suggestions []string
}

func (e UnknownNetworkErr) Error() string {
	msg := fmt.Sprintf("network '%s' not found in zkpm.toml [networks]", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e UnknownNetworkErr) Is(target error) bool {
	return target == ErrNetworkNotFound
}
