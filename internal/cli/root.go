package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/zkpm/internal/adapters/progress"
	"github.com/trebuchet-org/zkpm/internal/app"
	"github.com/trebuchet-org/zkpm/internal/config"
	"github.com/trebuchet-org/zkpm/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
	// cleanupKey is the context key for the command's cleanup func
	cleanupKey contextKey = "cleanup"
)

// Execute runs the command tree and releases the app afterwards, whether or
// not the command failed.
func Execute(rootCmd *cobra.Command) error {
	cmd, err := rootCmd.ExecuteC()
	if cmd != nil {
		cleanup(cmd)
	}
	return err
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zkpm",
		Short: "Deploy and exercise a zkSync ERC20 paymaster",
		Long: `zkpm deploys an ERC20 token and an approval-based paymaster to zkSync Era,
funds it, and mints tokens from a wallet holding no ETH with the fee paid
by the paymaster.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if !needsApp(cmd) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			var sink usecase.ProgressSink = progress.NewNopSink()
			if !v.GetBool("non_interactive") && !v.GetBool("debug") {
				sink = progress.NewSpinnerProgressReporter()
			}

			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			var cancel context.CancelFunc
			if appInstance.Config.Timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			} else {
				ctx, cancel = context.WithCancel(ctx)
			}
			ctx = context.WithValue(ctx, cleanupKey, func() {
				cancel()
				appInstance.Close()
			})
			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts and the spinner")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from zkpm.toml [networks] (e.g. zksync-sepolia)")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC URL to use instead of a named network")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Overall deadline for the command (default 10m)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	useCmd := NewUseCmd()
	useCmd.GroupID = "main"
	rootCmd.AddCommand(useCmd)

	demoCmd := NewDemoCmd()
	demoCmd.GroupID = "main"
	rootCmd.AddCommand(demoCmd)

	statusCmd := NewStatusCmd()
	statusCmd.GroupID = "management"
	rootCmd.AddCommand(statusCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// needsApp reports whether the command runs a use case
func needsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", "zkpm":
		return false
	}
	return true
}

// cleanup cancels the command context and closes the app, if one was created
func cleanup(cmd *cobra.Command) {
	if cmd.Context() == nil {
		return
	}
	if fn, ok := cmd.Context().Value(cleanupKey).(func()); ok {
		fn()
	}
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	if cmd.Context() == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
