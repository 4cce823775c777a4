package interactive

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/trebuchet-org/zkpm/internal/domain/config"
	"github.com/trebuchet-org/zkpm/internal/usecase"
)

// ConfirmAdapter asks yes/no questions on the terminal
type ConfirmAdapter struct {
	config *config.RuntimeConfig
	prompt func(label string) (string, error)
}

// NewConfirmAdapter creates a new confirm adapter
func NewConfirmAdapter(cfg *config.RuntimeConfig) *ConfirmAdapter {
	return &ConfirmAdapter{
		config: cfg,
		prompt: func(label string) (string, error) {
			p := promptui.Prompt{
				Label:     label,
				IsConfirm: true,
			}
			return p.Run()
		},
	}
}

// Confirm returns true when the user answers yes
func (a *ConfirmAdapter) Confirm(ctx context.Context, message string) (bool, error) {
	if a.config.NonInteractive {
		return false, fmt.Errorf("confirmation required but running in non-interactive mode")
	}

	_, err := a.prompt(message)
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return true, nil
}

// Ensure the adapter implements the interface
var _ usecase.Confirmer = (*ConfirmAdapter)(nil)
