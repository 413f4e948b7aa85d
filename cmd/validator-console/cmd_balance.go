package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/injective-ops/validator-console/internal/exitcodes"
	"github.com/injective-ops/validator-console/internal/numeric"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Check account balance",
	Long: `Print the staking-denom balance of an account. Without an
address argument the signing account's balance is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := ""
		if len(args) > 0 {
			addr = args[0]
		}
		return handleBalance(newDeps(), addr)
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func handleBalance(d *Deps, addr string) error {
	if addr == "" {
		signer, err := d.NewSigner()
		if err != nil {
			return reportQueryFailure(d, err)
		}
		acct, err := signer.Account()
		if err != nil {
			return reportQueryFailure(d, exitcodes.SignerErrf("signer account: %v", err))
		}
		addr = acct.Address
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	base, err := d.Query.Balance(ctx, addr, d.Cfg.Denom)
	if err != nil {
		return reportQueryFailure(d, exitcodes.WrapError(exitcodes.NetworkError, "balance query failed", err))
	}

	display, err := numeric.FormatTokenAmount(base, numeric.TokenDecimals, 4)
	if err != nil {
		display = base
	}

	if flagOutput == "json" || flagOutput == "yaml" {
		d.Printer.Structured(map[string]any{
			"ok":      true,
			"address": addr,
			"balance": base,
			"display": display,
			"denom":   d.Cfg.Denom,
		})
		return nil
	}
	d.Printer.KeyValueLine("Address", addr, "blue")
	d.Printer.Info(fmt.Sprintf("%s %s", display, displayDenom(d.Cfg)))
	return nil
}

// reportQueryFailure prints a read-path failure and silences the
// duplicate line from Execute, mirroring the submission path.
func reportQueryFailure(d *Deps, err error) error {
	if flagOutput == "json" || flagOutput == "yaml" {
		d.Printer.Structured(map[string]any{"ok": false, "error": err.Error()})
	} else {
		d.Printer.Error(err.Error())
	}
	return silentErr{err}
}
