package main

import (
	"github.com/spf13/cobra"

	"github.com/injective-ops/validator-console/internal/exitcodes"
	"github.com/injective-ops/validator-console/internal/msgs"
	"github.com/injective-ops/validator-console/internal/txerrors"
	"github.com/injective-ops/validator-console/internal/wallet"
)

var editForm msgs.EditValidatorForm

var editValidatorCmd = &cobra.Command{
	Use:   "edit-validator",
	Short: "Update validator metadata or commission",
	Long: `Update the validator's description fields and optionally its
commission rate. When the requested rate equals the current on-chain
rate the commission field is left out of the transaction, so a no-op
edit never counts against the daily change limit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleEditValidator(newDeps())
	},
}

func init() {
	f := editValidatorCmd.Flags()
	f.StringVar(&editForm.Moniker, "moniker", "", "Validator display name")
	f.StringVar(&editForm.Identity, "identity", "", "Keybase identity")
	f.StringVar(&editForm.Website, "website", "", "Website URL")
	f.StringVar(&editForm.SecurityContact, "security-contact", "", "Security contact email")
	f.StringVar(&editForm.Details, "details", "", "Description")
	f.StringVar(&editForm.CommissionRate, "commission-rate", "", "New commission rate, percent (omit to leave unchanged)")
	rootCmd.AddCommand(editValidatorCmd)
}

// handleEditValidator fetches the current on-chain commission rate so the
// builder can suppress a no-op rate change, then submits MsgEditValidator.
func handleEditValidator(d *Deps) error {
	form := editForm

	return submitTx(d, txerrors.ActionEdit, "Updating validator...", func(acct wallet.Account) ([]msgs.Msg, msgs.Fee, error) {
		info, found, err := queryValidatorFor(d, acct.Address)
		if err != nil {
			return nil, msgs.Fee{}, exitcodes.WrapError(exitcodes.NetworkError, "validator lookup failed", err)
		}
		if !found {
			return nil, msgs.Fee{}, exitcodes.PreconditionError(
				"no validator registered for this account; run `validator-console register` first")
		}
		form.CurrentRate = info.CommissionRate

		msg, fee, err := msgs.BuildEditValidator(d.Cfg, acct.Address, form)
		if err != nil {
			return nil, msgs.Fee{}, err
		}
		return []msgs.Msg{msg}, fee, nil
	})
}
