package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/injective-ops/validator-console/internal/address"
	"github.com/injective-ops/validator-console/internal/exitcodes"
	"github.com/injective-ops/validator-console/internal/numeric"
	ui "github.com/injective-ops/validator-console/internal/ui"
)

var validatorsCmd = &cobra.Command{
	Use:   "validators",
	Short: "List the validator set",
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleValidators(newDeps())
	},
}

func init() {
	rootCmd.AddCommand(validatorsCmd)
}

// truncateAddress keeps the bech32 prefix and checksum tail visible.
func truncateAddress(addr string, maxWidth int) string {
	if len(addr) <= maxWidth {
		return addr
	}
	if maxWidth < 12 {
		return addr[:maxWidth]
	}
	keep := (maxWidth - 3) / 2
	return addr[:maxWidth-3-keep] + "..." + addr[len(addr)-keep:]
}

// handleValidators prints the validator set sorted by bonded stake, with
// the operator's own validator highlighted when one is configured.
func handleValidators(d *Deps) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	list, err := d.Query.Validators(ctx)
	if err != nil {
		return reportQueryFailure(d, exitcodes.WrapError(exitcodes.NetworkError, "validator set query failed", err))
	}

	if flagOutput == "json" || flagOutput == "yaml" {
		out := make([]map[string]any, 0, len(list.Validators))
		for _, v := range list.Validators {
			out = append(out, map[string]any{
				"operator_address": v.OperatorAddress,
				"moniker":          v.Moniker,
				"status":           v.Status,
				"tokens":           v.Tokens,
				"commission_rate":  v.CommissionRate,
				"jailed":           v.Jailed,
			})
		}
		d.Printer.Structured(map[string]any{"ok": true, "total": list.Total, "validators": out})
		return nil
	}

	if len(list.Validators) == 0 {
		d.Printer.Warn("No validators found")
		return nil
	}

	myValoper := resolveValidatorAddress(d)

	vals := list.Validators
	sort.SliceStable(vals, func(i, j int) bool {
		vi, errI := numeric.ParseScaled(vals[i].Tokens, 0)
		vj, errJ := numeric.ParseScaled(vals[j].Tokens, 0)
		if errI != nil || errJ != nil {
			return vals[i].Moniker < vals[j].Moniker
		}
		return vi.GT(vj)
	})

	c := ui.NewColorConfigFromGlobal()

	headers := []string{"MONIKER", "OPERATOR", "STAKE (" + displayDenom(d.Cfg) + ")", "COMM", "STATUS"}
	rows := make([][]string, 0, len(vals))
	for _, v := range vals {
		stake, err := numeric.FormatTokenAmount(v.Tokens, numeric.TokenDecimals, 1)
		if err != nil {
			stake = "?"
		}
		comm := "—"
		if pct, err := numeric.RatioToPercent(v.CommissionRate); err == nil {
			comm = pct + "%"
		}
		status := strings.TrimPrefix(v.Status, "BOND_STATUS_")
		if v.Jailed {
			status = "JAILED"
		}
		moniker := v.Moniker
		if myValoper != "" && v.OperatorAddress == myValoper {
			moniker += " *"
		}
		row := []string{moniker, truncateAddress(v.OperatorAddress, 24), stake, comm, status}
		switch {
		case myValoper != "" && v.OperatorAddress == myValoper:
			for i := range row {
				row[i] = c.Success(row[i])
			}
		case v.Jailed:
			for i := range row {
				row[i] = c.Error(row[i])
			}
		}
		rows = append(rows, row)
	}

	fmt.Print(ui.Table(c, headers, rows, nil))
	fmt.Printf("Total validators: %d\n", list.Total)
	return nil
}

// resolveValidatorAddress finds the operator's own validator address for
// highlighting: the --validator flag, then saved preferences, then the
// address derived from an environment-configured signer. Empty when no
// source is available; highlighting is best-effort.
func resolveValidatorAddress(d *Deps) string {
	if flagValidator != "" {
		return flagValidator
	}
	if prefs, err := d.Prefs.Load(); err == nil && prefs.ValidatorAddress != "" {
		return prefs.ValidatorAddress
	}
	if acct, ok := envAccount(d); ok {
		if valoper, err := address.Reencode(acct, d.Cfg.ValoperPrefix); err == nil {
			return valoper
		}
	}
	return ""
}
