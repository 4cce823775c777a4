package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/zkpm/internal/cli/render"
	"github.com/trebuchet-org/zkpm/internal/usecase"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	var (
		erc20      string
		paymaster  string
		wallet     string
		deployment string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show paymaster and wallet balances",
		Long:  `Show native and token balances of the paymaster and, optionally, a wallet. Nothing is sent.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ShowStatusParams{DeploymentFile: deployment}
			if params.ERC20Address, err = parseAddressFlag("erc20", erc20); err != nil {
				return err
			}
			if params.PaymasterAddress, err = parseAddressFlag("paymaster", paymaster); err != nil {
				return err
			}
			if params.WalletAddress, err = parseAddressFlag("wallet", wallet); err != nil {
				return err
			}

			result, err := app.ShowStatus.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewStatusRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringVar(&erc20, "erc20", "", "ERC20 token address")
	cmd.Flags().StringVar(&paymaster, "paymaster", "", "Paymaster address")
	cmd.Flags().StringVar(&wallet, "wallet", "", "Wallet address to include")
	cmd.Flags().StringVar(&deployment, "deployment", "", "Deployment record written by 'zkpm deploy --out'")

	return cmd
}
