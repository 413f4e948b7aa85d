package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/injective-ops/validator-console/internal/address"
	"github.com/injective-ops/validator-console/internal/exitcodes"
	"github.com/injective-ops/validator-console/internal/msgs"
	"github.com/injective-ops/validator-console/internal/numeric"
	"github.com/injective-ops/validator-console/internal/txerrors"
	"github.com/injective-ops/validator-console/internal/wallet"
)

var flagUndelegateMax bool

var undelegateCmd = &cobra.Command{
	Use:   "undelegate [amount] [validator-address]",
	Short: "Undelegate tokens from a validator",
	Long: `Undelegate tokens, in display units, from a validator. With
--max the full current delegation is withdrawn; the amount argument is
then omitted. Undelegated tokens enter the chain's unbonding period.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, valoper := "", ""
		switch {
		case flagUndelegateMax:
			if len(args) > 0 {
				valoper = args[0]
			}
		case len(args) == 0:
			return exitcodes.InvalidArgsError("amount required (or pass --max)")
		default:
			amount = args[0]
			if len(args) > 1 {
				valoper = args[1]
			}
		}
		return handleUndelegate(newDeps(), amount, valoper)
	},
}

func init() {
	undelegateCmd.Flags().BoolVar(&flagUndelegateMax, "max", false, "Undelegate the full current delegation")
	rootCmd.AddCommand(undelegateCmd)
}

func handleUndelegate(d *Deps, amount, valoper string) error {
	label := "Undelegating..."
	if amount != "" {
		label = fmt.Sprintf("Undelegating %s %s...", amount, displayDenom(d.Cfg))
	}
	return submitTx(d, txerrors.ActionUndelegate, label, func(acct wallet.Account) ([]msgs.Msg, msgs.Fee, error) {
		target := valoper
		if target == "" {
			var err error
			target, err = address.Reencode(acct.Address, d.Cfg.ValoperPrefix)
			if err != nil {
				return nil, msgs.Fee{}, err
			}
		}

		amt := amount
		if amt == "" {
			var err error
			amt, err = maxUndelegatable(d, acct.Address, target)
			if err != nil {
				return nil, msgs.Fee{}, err
			}
		}

		msg, fee, err := msgs.BuildUndelegate(d.Cfg, acct.Address, target, amt)
		if err != nil {
			return nil, msgs.Fee{}, err
		}
		return []msgs.Msg{msg}, fee, nil
	})
}

// maxUndelegatable resolves the full current delegation as a display
// amount for the --max helper.
func maxUndelegatable(d *Deps, delegator, valoper string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	del, found, err := d.Query.Delegation(ctx, delegator, valoper)
	if err != nil {
		return "", exitcodes.WrapError(exitcodes.NetworkError, "delegation lookup failed", err)
	}
	if !found || del.Balance == "" || del.Balance == "0" {
		return "", exitcodes.PreconditionErrorf("no delegation found on %s", valoper)
	}
	display, err := numeric.FormatTokenAmount(del.Balance, numeric.TokenDecimals, numeric.TokenDecimals)
	if err != nil {
		return "", exitcodes.WrapError(exitcodes.ValidationError, "delegation balance", err)
	}
	return display, nil
}
