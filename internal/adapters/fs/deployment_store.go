package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trebuchet-org/zkpm/internal/domain"
	"github.com/trebuchet-org/zkpm/internal/domain/models"
	"github.com/trebuchet-org/zkpm/internal/usecase"
	"gopkg.in/yaml.v3"
)

// DeploymentStoreAdapter keeps deployment records as YAML files
type DeploymentStoreAdapter struct{}

// NewDeploymentStoreAdapter creates a new DeploymentStoreAdapter
func NewDeploymentStoreAdapter() *DeploymentStoreAdapter {
	return &DeploymentStoreAdapter{}
}

// Load reads the record at path
func (s *DeploymentStoreAdapter) Load(_ context.Context, path string) (*models.DeploymentRecord, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user supplied record path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDeploymentNotFound, path)
		}
		return nil, fmt.Errorf("failed to read deployment record: %w", err)
	}

	var record models.DeploymentRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse deployment record: %w", err)
	}
	return &record, nil
}

// Save writes record to path, creating parent directories
func (s *DeploymentStoreAdapter) Save(_ context.Context, path string, record *models.DeploymentRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal deployment record: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // addresses only
		return fmt.Errorf("failed to write deployment record: %w", err)
	}
	return nil
}

var _ usecase.DeploymentStore = (*DeploymentStoreAdapter)(nil)
