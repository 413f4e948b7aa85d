package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/injective-ops/validator-console/internal/exitcodes"
	"github.com/injective-ops/validator-console/internal/msgs"
	"github.com/injective-ops/validator-console/internal/txerrors"
	"github.com/injective-ops/validator-console/internal/wallet"
)

var unjailCmd = &cobra.Command{
	Use:   "unjail",
	Short: "Restore a jailed validator to active status",
	Long: `Submit MsgUnjail for the operator's own validator. The chain
rejects the transaction while the jail period is still running.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleUnjail(newDeps())
	},
}

func init() {
	rootCmd.AddCommand(unjailCmd)
}

// handleUnjail checks the validator exists and is actually jailed before
// submitting, so the common mistakes fail without spending gas.
func handleUnjail(d *Deps) error {
	return submitTx(d, txerrors.ActionUnjail, "Unjailing validator...", func(acct wallet.Account) ([]msgs.Msg, msgs.Fee, error) {
		info, found, err := queryValidatorFor(d, acct.Address)
		if err != nil {
			return nil, msgs.Fee{}, exitcodes.WrapError(exitcodes.NetworkError, "validator lookup failed", err)
		}
		if !found {
			return nil, msgs.Fee{}, exitcodes.PreconditionError(
				"no validator registered for this account; run `validator-console register` first")
		}
		if !info.Jailed {
			return nil, msgs.Fee{}, exitcodes.PreconditionErrorf(
				"validator %q is not jailed (status %s)", info.Moniker, info.Status)
		}
		if flagVerbose {
			fmt.Printf("validator %s jailed, requesting unjail\n", info.OperatorAddress)
		}

		msg, fee, err := msgs.BuildUnjail(d.Cfg, acct.Address)
		if err != nil {
			return nil, msgs.Fee{}, err
		}
		return []msgs.Msg{msg}, fee, nil
	})
}
