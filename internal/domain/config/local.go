package config

// LocalConfig is the per-checkout state kept in .zkpm/config.local.json.
// Its keys are read back as defaults for the matching flags.
type LocalConfig struct {
	Network    string `json:"network,omitempty"`
	Deployment string `json:"deployment,omitempty"`
}
