package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/zkpm/internal/cli/render"
	"github.com/trebuchet-org/zkpm/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List networks from zkpm.toml",
		Long: `List all networks configured in the [networks] section of zkpm.toml.

This command shows all available networks, fetches their chain IDs and
marks the ones accepted for deployment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	return cmd
}
