package usecase

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/trebuchet-org/zkpm/internal/domain"
	"github.com/trebuchet-org/zkpm/internal/domain/config"
)

// networkGuard verifies the connected chain before anything is broadcast
type networkGuard struct {
	config    *config.RuntimeConfig
	client    ChainClient
	confirmer Confirmer
	progress  ProgressSink
}

// check returns the connected chain ID once it is accepted and, on chains
// that require it, the user has confirmed. A confirmedChainID equal to the
// connected chain skips the prompt.
func (g *networkGuard) check(ctx context.Context, action string, confirmedChainID uint64) (uint64, error) {
	chainID, err := g.client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}

	if err := domain.CheckChainID(chainID, g.config.AcceptedChainIDs); err != nil {
		return 0, err
	}

	if g.config.NonInteractive || chainID == confirmedChainID || !lo.Contains(g.config.ConfirmChainIDs, chainID) {
		return chainID, nil
	}

	// The prompt must not share the terminal line with the spinner
	g.progress.OnProgress(ctx, ProgressEvent{Stage: StageCheckingNetwork, Message: "Waiting for confirmation", Spinner: false})

	ok, err := g.confirmer.Confirm(ctx, fmt.Sprintf("%s on chain %d spends real funds. Continue?", action, chainID))
	if err != nil {
		return 0, fmt.Errorf("failed to confirm: %w", err)
	}
	if !ok {
		return 0, domain.ErrAborted
	}

	return chainID, nil
}
