package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/zkpm/internal/domain/config"
)

// ProjectFileName is the name of the project configuration file
const ProjectFileName = "zkpm.toml"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	project, configFile, err := LoadProjectFile(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:        projectRoot,
		DataDir:            filepath.Join(projectRoot, ".zkpm"),
		ConfigFile:         configFile,
		Networks:           project.Networks,
		AcceptedChainIDs:   project.AcceptedChainIDs,
		ConfirmChainIDs:    project.ConfirmChainIDs,
		DeployerPrivateKey: project.DeployerPrivateKey,
		Artifacts: config.ArtifactsConfig{
			ERC20:     resolvePath(projectRoot, project.Artifacts.ERC20),
			Paymaster: resolvePath(projectRoot, project.Artifacts.Paymaster),
		},
		Deploy:         project.Deploy,
		Use:            project.Use,
		Deployment:     v.GetString("deployment"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Timeout:        v.GetDuration("timeout"),
		PollInterval:   v.GetDuration("poll_interval"),
	}

	// Environment and local overrides win over zkpm.toml
	if key := v.GetString("deployer_private_key"); key != "" {
		cfg.DeployerPrivateKey = key
	}
	if raw := v.GetString("accepted_chain_ids"); raw != "" {
		ids, err := parseChainIDs(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid accepted_chain_ids: %w", err)
		}
		cfg.AcceptedChainIDs = ids
	}

	resolver := NewNetworkResolver(cfg.Networks)
	if rpcURL := v.GetString("rpc_url"); rpcURL != "" {
		cfg.Network = &config.Network{Name: "custom", RPCURL: rpcURL}
	} else if networkName := v.GetString("network"); networkName != "" {
		network, err := resolver.Resolve(networkName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
		}
		cfg.Network = network
	}

	return cfg, nil
}

// FindProjectRoot walks up from the current directory looking for zkpm.toml.
// Without one, the current directory is the project root.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".zkpm"))

	// Set up environment variables
	v.SetEnvPrefix("ZKPM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "10m")
	v.SetDefault("poll_interval", "1s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})

	return v
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.Networks)
}

func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func parseChainIDs(raw string) ([]uint64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]uint64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no chain ids in %q", raw)
	}
	return ids, nil
}
