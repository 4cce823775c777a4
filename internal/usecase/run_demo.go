package usecase

import (
	"context"
	"fmt"
)

// RunDemoParams contains parameters for the full demo
type RunDemoParams struct {
	RecordPath string
}

// RunDemoResult contains the results of both phases
type RunDemoResult struct {
	Deploy *DeployPaymasterResult
	Use    *UsePaymasterResult
}

// RunDemo deploys the paymaster and then uses it from the generated wallet
type RunDemo struct {
	deploy *DeployPaymaster
	use    *UsePaymaster
}

// NewRunDemo creates a new RunDemo use case
func NewRunDemo(deploy *DeployPaymaster, use *UsePaymaster) *RunDemo {
	return &RunDemo{
		deploy: deploy,
		use:    use,
	}
}

// Run executes the deployment followed by the sponsored mint
func (uc *RunDemo) Run(ctx context.Context, params RunDemoParams) (*RunDemoResult, error) {
	deployed, err := uc.deploy.Run(ctx, DeployPaymasterParams{RecordPath: params.RecordPath})
	if err != nil {
		return nil, fmt.Errorf("deploy failed: %w", err)
	}

	used, err := uc.use.Run(ctx, UsePaymasterParams{
		PrivateKey:       deployed.PrivateKey,
		ERC20Address:     deployed.ERC20Address,
		PaymasterAddress: deployed.PaymasterAddress,
		ConfirmedChainID: deployed.ChainID,
	})
	if err != nil {
		return &RunDemoResult{Deploy: deployed}, fmt.Errorf("sponsored mint failed: %w", err)
	}

	return &RunDemoResult{
		Deploy: deployed,
		Use:    used,
	}, nil
}
