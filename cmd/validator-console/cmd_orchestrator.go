package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/injective-ops/validator-console/internal/msgs"
	"github.com/injective-ops/validator-console/internal/txerrors"
	"github.com/injective-ops/validator-console/internal/wallet"
)

var orchestratorCmd = &cobra.Command{
	Use:   "set-orchestrator <orchestrator-address> <eth-address>",
	Short: "Set Peggy orchestrator addresses",
	Long: `Register the orchestrator and Ethereum bridge addresses for this
validator. The mapping is permanent: once set on chain it cannot be
changed or removed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleSetOrchestrator(newDeps(), args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(orchestratorCmd)
}

// handleSetOrchestrator confirms the irreversible mapping with the
// operator and submits MsgSetOrchestratorAddresses.
func handleSetOrchestrator(d *Deps, orchestrator, ethAddress string) error {
	d.Printer.Warn("The orchestrator mapping is immutable once set.")
	fmt.Println()
	d.Printer.KeyValueLine("Orchestrator", orchestrator, "blue")
	d.Printer.KeyValueLine("Ethereum", ethAddress, "blue")
	fmt.Println()

	ok, err := confirm(d, "Set these addresses permanently?")
	if err != nil {
		return err
	}
	if !ok {
		d.Printer.Warn("Cancelled")
		return nil
	}

	form := msgs.OrchestratorForm{Orchestrator: orchestrator, EthAddress: ethAddress}
	return submitTx(d, txerrors.ActionOrchestrator, "Setting orchestrator addresses...", func(acct wallet.Account) ([]msgs.Msg, msgs.Fee, error) {
		msg, fee, err := msgs.BuildSetOrchestratorAddresses(d.Cfg, acct.Address, form)
		if err != nil {
			return nil, msgs.Fee{}, err
		}
		return []msgs.Msg{msg}, fee, nil
	})
}
