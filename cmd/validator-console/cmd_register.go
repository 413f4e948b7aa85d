package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/injective-ops/validator-console/internal/exitcodes"
	"github.com/injective-ops/validator-console/internal/msgs"
	"github.com/injective-ops/validator-console/internal/txerrors"
	"github.com/injective-ops/validator-console/internal/wallet"
)

// Registration form defaults. Commission values are human percentages.
const (
	defaultCommissionRate          = "10"
	defaultCommissionMaxRate       = "20"
	defaultCommissionMaxChangeRate = "1"
	defaultMinSelfDelegation       = "1"
)

var regForm msgs.CreateValidatorForm

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new validator",
	Long: `Register this account as a validator.

The operator address is derived from the signing account; the consensus
pubkey is the node's ed25519 key (base64, from "injectived tendermint
show-validator").`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleRegister(newDeps())
	},
}

func init() {
	f := registerCmd.Flags()
	f.StringVar(&regForm.Moniker, "moniker", "", "Validator display name")
	f.StringVar(&regForm.Identity, "identity", "", "Keybase identity (optional)")
	f.StringVar(&regForm.Website, "website", "", "Website URL (optional)")
	f.StringVar(&regForm.SecurityContact, "security-contact", "", "Security contact email (optional)")
	f.StringVar(&regForm.Details, "details", "", "Description (optional)")
	f.StringVar(&regForm.CommissionRate, "commission-rate", defaultCommissionRate, "Commission rate, percent")
	f.StringVar(&regForm.CommissionMaxRate, "commission-max-rate", defaultCommissionMaxRate, "Maximum commission rate, percent (immutable)")
	f.StringVar(&regForm.CommissionMaxChangeRate, "commission-max-change-rate", defaultCommissionMaxChangeRate, "Maximum daily commission change, percent (immutable)")
	f.StringVar(&regForm.MinSelfDelegation, "min-self-delegation", defaultMinSelfDelegation, "Minimum self delegation, display units")
	f.StringVar(&regForm.SelfDelegation, "amount", "", "Initial self delegation, display units")
	f.StringVar(&regForm.PubkeyBase64, "pubkey", "", "Consensus pubkey, base64 ed25519")
	rootCmd.AddCommand(registerCmd)
}

// handleRegister prompts for any missing required field, checks the
// account is not already registered, and submits MsgCreateValidator.
func handleRegister(d *Deps) error {
	form := regForm

	var err error
	if form.Moniker, err = promptIfEmpty(d, form.Moniker, "Moniker: "); err != nil {
		return err
	}
	if form.SelfDelegation, err = promptIfEmpty(d, form.SelfDelegation, fmt.Sprintf("Self delegation (%s): ", displayDenom(d.Cfg))); err != nil {
		return err
	}
	if form.PubkeyBase64, err = promptIfEmpty(d, form.PubkeyBase64, "Consensus pubkey (base64): "); err != nil {
		return err
	}

	label := fmt.Sprintf("Registering validator %q...", form.Moniker)
	return submitTx(d, txerrors.ActionRegister, label, func(acct wallet.Account) ([]msgs.Msg, msgs.Fee, error) {
		if info, found, err := queryValidatorFor(d, acct.Address); err == nil && found {
			return nil, msgs.Fee{}, exitcodes.PreconditionErrorf(
				"validator %q already registered for this account", info.Moniker)
		}
		msg, fee, err := msgs.BuildCreateValidator(d.Cfg, acct.Address, form)
		if err != nil {
			return nil, msgs.Fee{}, err
		}
		return []msgs.Msg{msg}, fee, nil
	})
}

// promptIfEmpty returns value unchanged when set, otherwise asks for it.
// Missing values in non-interactive mode are invalid-argument errors.
func promptIfEmpty(d *Deps, value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	if !d.Prompter.IsInteractive() {
		return "", exitcodes.InvalidArgsErrorf("missing required value for %q (non-interactive)", prompt)
	}
	v, err := d.Prompter.ReadLine(prompt)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", exitcodes.InvalidArgsErrorf("missing required value for %q", prompt)
	}
	return v, nil
}
