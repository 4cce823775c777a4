package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/zkpm/internal/domain/config"
)

// envVarPattern matches ${VAR_NAME} patterns in TOML values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// LoadProjectFile reads zkpm.toml from the project root on top of the defaults.
// .env and .env.local are loaded first so ${VAR} references can be expanded.
// The returned path is empty when no zkpm.toml exists.
func LoadProjectFile(projectRoot string) (*config.ProjectFile, string, error) {
	loadEnvFiles(projectRoot)

	project := config.DefaultProjectFile()
	path := filepath.Join(projectRoot, ProjectFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &project, "", nil
	}

	if _, err := toml.DecodeFile(path, &project); err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}

	// Unset references stay as ${VAR} so resolving that network reports them
	for name, raw := range project.Networks {
		project.Networks[name] = expandEnv(raw)
	}

	// An unset key reference is not an error until a command needs the signer
	project.DeployerPrivateKey = os.ExpandEnv(project.DeployerPrivateKey)
	project.Artifacts.ERC20 = os.ExpandEnv(project.Artifacts.ERC20)
	project.Artifacts.Paymaster = os.ExpandEnv(project.Artifacts.Paymaster)

	return &project, path, nil
}

func loadEnvFiles(projectRoot string) {
	// Existing environment variables take precedence over both files
	_ = godotenv.Load(filepath.Join(projectRoot, ".env"))
	_ = godotenv.Load(filepath.Join(projectRoot, ".env.local"))
}

// DetectEnvVar checks if a raw TOML value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// GenerateEnvVarName generates a conventional env var name for a network's RPC URL.
// Examples: zksync -> ZKSYNC_RPC_URL, zksync-sepolia -> ZKSYNC_SEPOLIA_RPC_URL
func GenerateEnvVarName(networkName string) string {
	name := strings.ToUpper(networkName)
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + "_RPC_URL"
}

func expandEnv(raw string) string {
	if name, ok := DetectEnvVar(raw); ok {
		if value := os.Getenv(name); value != "" {
			return value
		}
		return raw
	}
	return os.ExpandEnv(raw)
}
