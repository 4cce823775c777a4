package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/zkpm/internal/domain"
)

// parseAddressFlag parses an optional address flag; empty yields the zero address
func parseAddressFlag(name, value string) (common.Address, error) {
	if value == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("--%s: %w: %s", name, domain.ErrInvalidAddress, value)
	}
	return common.HexToAddress(value), nil
}
