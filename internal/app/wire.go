//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/zkpm/internal/adapters"
	"github.com/trebuchet-org/zkpm/internal/config"
	"github.com/trebuchet-org/zkpm/internal/logging"
	"github.com/trebuchet-org/zkpm/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,

		// Logging
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployPaymaster,
		usecase.NewUsePaymaster,
		usecase.NewRunDemo,
		usecase.NewShowStatus,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
