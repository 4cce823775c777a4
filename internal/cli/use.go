package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/zkpm/internal/cli/render"
	"github.com/trebuchet-org/zkpm/internal/usecase"
)

// NewUseCmd creates the use command
func NewUseCmd() *cobra.Command {
	var (
		privateKey string
		erc20      string
		paymaster  string
		deployment string
	)

	cmd := &cobra.Command{
		Use:   "use",
		Short: "Mint tokens from an empty wallet with the fee paid by the paymaster",
		Long: `Mint tokens from a wallet that holds no ETH. The transaction carries
approval-based paymaster params so the paymaster pays the fee in exchange
for the token.

Addresses default to the deployment record given with --deployment, or the
one remembered from the last 'zkpm deploy --out'.`,
		Example: `  zkpm use --private-key 0x... --erc20 0x... --paymaster 0x...
  zkpm use --private-key 0x... --deployment deployment.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.UsePaymasterParams{
				PrivateKey:     privateKey,
				DeploymentFile: deployment,
			}
			if params.ERC20Address, err = parseAddressFlag("erc20", erc20); err != nil {
				return err
			}
			if params.PaymasterAddress, err = parseAddressFlag("paymaster", paymaster); err != nil {
				return err
			}

			result, err := app.UsePaymaster.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewUseRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringVar(&privateKey, "private-key", "", "Private key of the wallet (hex)")
	cmd.Flags().StringVar(&erc20, "erc20", "", "ERC20 token address")
	cmd.Flags().StringVar(&paymaster, "paymaster", "", "Paymaster address")
	cmd.Flags().StringVar(&deployment, "deployment", "", "Deployment record written by 'zkpm deploy --out'")
	_ = cmd.MarkFlagRequired("private-key")

	return cmd
}
