package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/injective-ops/validator-console/internal/exitcodes"
	"github.com/injective-ops/validator-console/internal/numeric"
	ui "github.com/injective-ops/validator-console/internal/ui"
)

var flagWaitHeight int64

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show chain head and validator status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleStatus(newDeps())
	},
}

func init() {
	statusCmd.Flags().Int64Var(&flagWaitHeight, "wait-height", 0, "Block until the chain reaches this height")
	rootCmd.AddCommand(statusCmd)
}

// handleStatus prints the RPC node's view of the chain head plus the
// operator's validator, when one can be resolved.
func handleStatus(d *Deps) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	st, err := d.Node.Status(ctx)
	if err != nil {
		return reportQueryFailure(d, exitcodes.WrapError(exitcodes.NetworkError,
			fmt.Sprintf("RPC %s unreachable", d.Cfg.RPCURL), err))
	}
	if st.Network != d.Cfg.ChainID {
		return reportQueryFailure(d, exitcodes.ValidationErrf(
			"endpoint serves chain %q, expected %q; check --network/--rpc", st.Network, d.Cfg.ChainID))
	}

	out := map[string]any{
		"ok":          true,
		"network":     string(d.Cfg.Network),
		"chain_id":    st.Network,
		"height":      st.Height,
		"catching_up": st.CatchingUp,
		"node":        st.Moniker,
	}

	var valBlock map[string]any
	if valoper := resolveValidatorAddress(d); valoper != "" {
		info, found, verr := d.Query.Validator(ctx, valoper)
		switch {
		case verr != nil:
			valBlock = map[string]any{"operator_address": valoper, "error": verr.Error()}
		case !found:
			valBlock = map[string]any{"operator_address": valoper, "registered": false}
		default:
			valBlock = map[string]any{
				"operator_address": info.OperatorAddress,
				"registered":       true,
				"moniker":          info.Moniker,
				"status":           info.Status,
				"jailed":           info.Jailed,
				"tokens":           info.Tokens,
				"commission_rate":  info.CommissionRate,
			}
		}
		out["validator"] = valBlock
	}

	if flagWaitHeight > 0 && st.Height < flagWaitHeight {
		if err := waitForHeight(d, flagWaitHeight); err != nil {
			return reportQueryFailure(d, err)
		}
		out["height"] = flagWaitHeight
	}

	if flagOutput == "json" || flagOutput == "yaml" {
		d.Printer.Structured(out)
		return nil
	}

	d.Printer.Section("Chain")
	d.Printer.KeyValueLine("Network", fmt.Sprintf("%s (%s)", d.Cfg.Network, st.Network), "blue")
	d.Printer.KeyValueLine("Height", ui.FormatNumber(st.Height), "blue")
	if st.CatchingUp {
		d.Printer.Warn("Node is catching up")
	} else {
		d.Printer.KeyValueLine("Sync", "in sync", "green")
	}
	d.Printer.KeyValueLine("Node", st.Moniker, "blue")

	if valBlock == nil {
		return nil
	}

	fmt.Println()
	d.Printer.Section("Validator")
	if reg, _ := valBlock["registered"].(bool); !reg {
		if errText, ok := valBlock["error"].(string); ok {
			d.Printer.Warn("Validator lookup failed: " + errText)
		} else {
			d.Printer.Warn("Not registered; run `validator-console register`")
		}
		return nil
	}
	d.Printer.KeyValueLine("Moniker", valBlock["moniker"].(string), "blue")
	d.Printer.KeyValueLine("Operator", valBlock["operator_address"].(string), "blue")
	status := strings.TrimPrefix(valBlock["status"].(string), "BOND_STATUS_")
	if jailed, _ := valBlock["jailed"].(bool); jailed {
		d.Printer.KeyValueLine("Status", "JAILED ("+status+")", "red")
	} else {
		d.Printer.KeyValueLine("Status", status, "green")
	}
	if stake, err := numeric.FormatTokenAmount(valBlock["tokens"].(string), numeric.TokenDecimals, 2); err == nil {
		d.Printer.KeyValueLine("Stake", stake+" "+displayDenom(d.Cfg), "blue")
	}
	if pct, err := numeric.RatioToPercent(valBlock["commission_rate"].(string)); err == nil {
		d.Printer.KeyValueLine("Commission", pct+"%", "blue")
	}
	return nil
}

// waitForHeight blocks on the node's header stream until the chain
// reaches target.
func waitForHeight(d *Deps, target int64) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	headers, err := d.Node.SubscribeHeaders(ctx)
	if err != nil {
		return exitcodes.WrapError(exitcodes.NetworkError, "header subscription failed", err)
	}
	spin := ui.NewSpinner(os.Stdout, "")
	for h := range headers {
		if !flagQuiet && flagOutput == "text" {
			spin.SetPrefix(fmt.Sprintf("height %d / %d", h.Height, target))
			spin.Tick()
		}
		if h.Height >= target {
			if !flagQuiet && flagOutput == "text" {
				fmt.Println()
			}
			return nil
		}
	}
	return exitcodes.NetworkErr("header stream closed before target height")
}
