package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/zkpm/internal/cli/render"
	"github.com/trebuchet-org/zkpm/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the ERC20 token and the paymaster",
		Long: `Deploy the ERC20 token and the approval-based paymaster, fund the paymaster
with ETH and mint tokens to a freshly generated wallet.

The deployer key is read from deployer_private_key in zkpm.toml or from
ZKPM_DEPLOYER_PRIVATE_KEY. The generated private key is printed once and never
written to disk.`,
		Example: `  zkpm deploy --network zksync-sepolia
  zkpm deploy --network zksync-sepolia --out deployment.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DeployPaymaster.Run(cmd.Context(), usecase.DeployPaymasterParams{
				RecordPath: out,
			})
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write a deployment record (addresses only) to this YAML file")

	return cmd
}
