package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/injective-ops/validator-console/internal/address"
	"github.com/injective-ops/validator-console/internal/msgs"
	"github.com/injective-ops/validator-console/internal/txerrors"
	"github.com/injective-ops/validator-console/internal/wallet"
)

var delegateCmd = &cobra.Command{
	Use:   "delegate <amount> [validator-address]",
	Short: "Delegate tokens to a validator",
	Long: `Delegate tokens, in display units, to a validator. When no
validator address is given the delegation targets the operator's own
validator (derived from the signing account).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		valoper := ""
		if len(args) > 1 {
			valoper = args[1]
		}
		return handleDelegate(newDeps(), args[0], valoper)
	},
}

func init() {
	rootCmd.AddCommand(delegateCmd)
}

func handleDelegate(d *Deps, amount, valoper string) error {
	label := fmt.Sprintf("Delegating %s %s...", amount, displayDenom(d.Cfg))
	return submitTx(d, txerrors.ActionDelegate, label, func(acct wallet.Account) ([]msgs.Msg, msgs.Fee, error) {
		target := valoper
		if target == "" {
			var err error
			target, err = address.Reencode(acct.Address, d.Cfg.ValoperPrefix)
			if err != nil {
				return nil, msgs.Fee{}, err
			}
		}
		msg, fee, err := msgs.BuildDelegate(d.Cfg, acct.Address, target, amount)
		if err != nil {
			return nil, msgs.Fee{}, err
		}
		return []msgs.Msg{msg}, fee, nil
	})
}
