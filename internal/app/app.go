package app

import (
	"github.com/trebuchet-org/zkpm/internal/domain/config"
	"github.com/trebuchet-org/zkpm/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	DeployPaymaster *usecase.DeployPaymaster
	UsePaymaster    *usecase.UsePaymaster
	RunDemo         *usecase.RunDemo
	ShowStatus      *usecase.ShowStatus
	ListNetworks    *usecase.ListNetworks

	// Shared chain connection, closed when the command finishes
	Client usecase.ChainClient
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	deployPaymaster *usecase.DeployPaymaster,
	usePaymaster *usecase.UsePaymaster,
	runDemo *usecase.RunDemo,
	showStatus *usecase.ShowStatus,
	listNetworks *usecase.ListNetworks,
	client usecase.ChainClient,
) (*App, error) {
	return &App{
		Config:          cfg,
		DeployPaymaster: deployPaymaster,
		UsePaymaster:    usePaymaster,
		RunDemo:         runDemo,
		ShowStatus:      showStatus,
		ListNetworks:    listNetworks,
		Client:          client,
	}, nil
}

// Close releases the chain connection if one was opened
func (a *App) Close() {
	if c, ok := a.Client.(interface{ Close() }); ok {
		c.Close()
	}
}
