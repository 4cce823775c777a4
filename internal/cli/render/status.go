package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/zkpm/internal/usecase"
)

// StatusRenderer renders account balances
type StatusRenderer struct {
	out io.Writer
}

// NewStatusRenderer creates a new status renderer
func NewStatusRenderer(out io.Writer) *StatusRenderer {
	return &StatusRenderer{out: out}
}

// Render prints one row per inspected account
func (r *StatusRenderer) Render(result *usecase.ShowStatusResult) error {
	network := fmt.Sprintf("Chain ID: %d", result.ChainID)
	if !result.Accepted {
		network += " " + FormatWarning("not an accepted zkSync chain")
	}
	fmt.Fprintln(r.out, network)
	fmt.Fprintf(r.out, "Token: %s\n", addressStyle.Sprint(result.ERC20.Hex()))
	fmt.Fprintln(r.out)

	t := newTable(4)
	t.AppendHeader(table.Row{"Account", "Address", "ETH", "Tokens"})
	for _, account := range result.Accounts {
		t.AppendRow(table.Row{
			sectionHeaderStyle.Sprint(account.Label),
			addressStyle.Sprint(account.Address.Hex()),
			formatEther(account.Balance),
			formatTokens(account.TokenBalance),
		})
	}
	fmt.Fprintln(r.out, t.Render())

	return nil
}

var _ Renderer[*usecase.ShowStatusResult] = (*StatusRenderer)(nil)
