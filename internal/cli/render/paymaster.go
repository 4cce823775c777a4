package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/zkpm/internal/usecase"
)

// DeployRenderer renders the result of a paymaster deployment
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// Render prints the deployed addresses and the generated wallet
func (r *DeployRenderer) Render(result *usecase.DeployPaymasterResult) error {
	fmt.Fprintln(r.out, FormatSuccess("Paymaster deployed"))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("Contracts"))
	fmt.Fprintln(r.out, keyValueTable([][2]string{
		{"Chain ID", fmt.Sprintf("%d", result.ChainID)},
		{"ERC20", addressStyle.Sprint(result.ERC20Address.Hex())},
		{"", addressLink(result.ChainID, result.ERC20Address)},
		{"Paymaster", addressStyle.Sprint(result.PaymasterAddress.Hex())},
		{"", addressLink(result.ChainID, result.PaymasterAddress)},
		{"Paymaster balance", amountStyle.Sprint(formatEther(result.PaymasterBalance))},
		{"Funding tx", result.FundingTx.Hex()},
		{"Mint tx", result.MintTx.Hex()},
	}))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("Wallet"))
	fmt.Fprintln(r.out, keyValueTable([][2]string{
		{"Address", addressStyle.Sprint(result.WalletAddress.Hex())},
		{"Private key", secretStyle.Sprint(result.PrivateKey)},
		{"Token balance", amountStyle.Sprint(formatTokens(result.WalletTokenBalance))},
	}))

	if result.RecordPath != "" {
		fmt.Fprintln(r.out)
		fmt.Fprintf(r.out, "Deployment record written to %s\n", result.RecordPath)
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatWarning("The private key is printed once and never stored. Keep it to run 'zkpm use'."))

	return nil
}

// UseRenderer renders the result of a sponsored mint
type UseRenderer struct {
	out io.Writer
}

// NewUseRenderer creates a new use renderer
func NewUseRenderer(out io.Writer) *UseRenderer {
	return &UseRenderer{out: out}
}

// Render prints the fee estimate and balances around the sponsored mint
func (r *UseRenderer) Render(result *usecase.UsePaymasterResult) error {
	fmt.Fprintln(r.out, FormatSuccess("Sponsored mint confirmed"))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("Transaction"))
	fmt.Fprintln(r.out, keyValueTable([][2]string{
		{"Hash", result.TxHash.Hex()},
		{"", txLink(result.ChainID, result.TxHash)},
		{"Gas price", formatEther(result.GasPrice)},
		{"Gas limit", fmt.Sprintf("%d", result.GasLimit)},
		{"Estimated fee", amountStyle.Sprint(formatEther(result.EstimatedFee))},
	}))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("Balances"))

	t := newTable(3)
	t.AppendHeader(table.Row{"", "Before", "After"})
	t.AppendRow(table.Row{labelStyle.Sprint("Wallet tokens"), formatTokens(result.WalletTokenBalanceBefore), formatTokens(result.WalletTokenBalanceAfter)})
	t.AppendRow(table.Row{labelStyle.Sprint("Paymaster ETH"), formatEther(result.PaymasterBalanceBefore), formatEther(result.PaymasterBalanceAfter)})
	t.AppendRow(table.Row{labelStyle.Sprint("Paymaster tokens"), "", formatTokens(result.PaymasterTokenBalance)})
	fmt.Fprintln(r.out, t.Render())

	return nil
}

// DemoRenderer renders both phases of the demo
type DemoRenderer struct {
	deploy *DeployRenderer
	use    *UseRenderer
}

// NewDemoRenderer creates a new demo renderer
func NewDemoRenderer(out io.Writer) *DemoRenderer {
	return &DemoRenderer{
		deploy: NewDeployRenderer(out),
		use:    NewUseRenderer(out),
	}
}

// Render prints whatever phases completed
func (r *DemoRenderer) Render(result *usecase.RunDemoResult) error {
	if result == nil {
		return nil
	}
	if result.Deploy != nil {
		if err := r.deploy.Render(result.Deploy); err != nil {
			return err
		}
	}
	if result.Use != nil {
		fmt.Fprintln(r.deploy.out)
		if err := r.use.Render(result.Use); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ Renderer[*usecase.DeployPaymasterResult] = (*DeployRenderer)(nil)
	_ Renderer[*usecase.UsePaymasterResult]    = (*UseRenderer)(nil)
	_ Renderer[*usecase.RunDemoResult]         = (*DemoRenderer)(nil)
)
