package render

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/trebuchet-org/zkpm/internal/domain"
	"github.com/trebuchet-org/zkpm/pkg/zksync"
)

var (
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
	labelStyle         = color.New(color.Faint)
	addressStyle       = color.New(color.FgCyan)
	secretStyle        = color.New(color.FgYellow, color.Bold)
	amountStyle        = color.New(color.FgGreen)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Capitalize first letter
	if len(message) > 0 {
		message = strings.ToUpper(message[:1]) + message[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// formatEther renders a wei amount as ETH
func formatEther(wei *big.Int) string {
	if wei == nil {
		return "-"
	}
	return zksync.FormatEther(wei) + " ETH"
}

// formatTokens renders a raw token amount
func formatTokens(amount *big.Int) string {
	if amount == nil {
		return "-"
	}
	return amount.String()
}

// addressLink appends the explorer link for known chains
func addressLink(chainID uint64, address common.Address) string {
	if base := domain.ExplorerURL(chainID); base != "" {
		return fmt.Sprintf("%s/address/%s", base, address.Hex())
	}
	return ""
}

// txLink returns the explorer link for a transaction on known chains
func txLink(chainID uint64, hash common.Hash) string {
	if base := domain.ExplorerURL(chainID); base != "" {
		return fmt.Sprintf("%s/tx/%s", base, hash.Hex())
	}
	return ""
}
