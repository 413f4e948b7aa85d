package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"cosmossdk.io/log"

	"github.com/injective-ops/validator-console/internal/address"
	"github.com/injective-ops/validator-console/internal/config"
	"github.com/injective-ops/validator-console/internal/exitcodes"
	"github.com/injective-ops/validator-console/internal/msgs"
	"github.com/injective-ops/validator-console/internal/query"
	"github.com/injective-ops/validator-console/internal/txclient"
	"github.com/injective-ops/validator-console/internal/txerrors"
	ui "github.com/injective-ops/validator-console/internal/ui"
	"github.com/injective-ops/validator-console/internal/ui/submitview"
	"github.com/injective-ops/validator-console/internal/wallet"
)

// submitTimeout bounds one full build/estimate/sign/broadcast/finalize
// pass. The finality poll inside the client already stops at 60s.
const submitTimeout = 90 * time.Second

// pipelineLogger returns the structured logger the transaction client
// emits pipeline stage events to. Structured output goes to stderr so it
// never mixes with --output json/yaml on stdout.
func pipelineLogger() log.Logger {
	if flagQuiet || flagOutput == "json" || flagOutput == "yaml" {
		return log.NewNopLogger()
	}
	if !flagVerbose {
		return log.NewNopLogger()
	}
	return log.NewLogger(os.Stderr)
}

// resolveSigner builds the wallet signer from the environment, falling
// back to an interactive mnemonic prompt. The mnemonic never touches
// argv or the process environment listing of child processes.
func resolveSigner(d *Deps) (wallet.Signer, error) {
	index := flagKeyIndex
	if index == 0 {
		if prefs, err := d.Prefs.Load(); err == nil {
			index = prefs.KeyIndex
		}
	}

	if m := os.Getenv("MNEMONIC"); m != "" {
		s, err := wallet.NewMnemonicSigner(m, d.Cfg.Bech32Prefix, index)
		if err != nil {
			return nil, exitcodes.SignerErrf("invalid MNEMONIC: %v", err)
		}
		return s, nil
	}
	if k := os.Getenv("PRIVATE_KEY"); k != "" {
		s, err := wallet.NewPrivateKeySigner(k, d.Cfg.Bech32Prefix)
		if err != nil {
			return nil, exitcodes.SignerErrf("invalid PRIVATE_KEY: %v", err)
		}
		return s, nil
	}

	if !d.Prompter.IsInteractive() {
		return nil, exitcodes.SignerErr("no signer configured: set MNEMONIC or PRIVATE_KEY")
	}
	m, err := d.Prompter.ReadSecret("Enter mnemonic: ")
	if err != nil {
		return nil, exitcodes.SignerErrf("read mnemonic: %v", err)
	}
	s, err := wallet.NewMnemonicSigner(m, d.Cfg.Bech32Prefix, index)
	if err != nil {
		return nil, exitcodes.SignerErrf("invalid mnemonic: %v", err)
	}
	return s, nil
}

// confirm asks a yes/no question, honoring --yes and --non-interactive.
func confirm(d *Deps, question string) (bool, error) {
	if flagYes {
		return true, nil
	}
	if !d.Prompter.IsInteractive() {
		return false, exitcodes.PreconditionError("confirmation required: re-run with --yes")
	}
	answer, err := d.Prompter.ReadLine(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

// submitTx drives one transaction through the full pipeline: resolve
// signer, build and validate messages (no network I/O yet), then sign,
// broadcast, and await finality. Validation failures surface before the
// first RPC call is made.
func submitTx(d *Deps, action txerrors.Action, label string, build func(acct wallet.Account) ([]msgs.Msg, msgs.Fee, error)) error {
	signer, err := d.NewSigner()
	if err != nil {
		return reportFailure(d, action, err)
	}
	acct, err := signer.Account()
	if err != nil {
		return reportFailure(d, action, exitcodes.SignerErrf("signer account: %v", err))
	}

	batch, fee, err := build(acct)
	if err != nil {
		return reportFailure(d, action, wrapBuildError(err))
	}

	sub := d.NewSubmitter(signer)
	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()

	run := func() (txclient.Outcome, error) {
		return sub.SignAndBroadcast(ctx, batch, fee, "")
	}

	var outcome txclient.Outcome
	if flagOutput == "text" && !flagQuiet && d.Prompter.IsInteractive() {
		outcome, err = submitview.Run(label, run)
		ui.ResetTerminalAfterTUI()
	} else {
		outcome, err = run()
	}
	if err != nil {
		return reportFailure(d, action, err)
	}

	printOutcome(d, outcome)
	return nil
}

// queryTimeout bounds each standalone REST lookup a command makes.
const queryTimeout = 10 * time.Second

// displayDenom renders the staking denom for human output.
func displayDenom(cfg config.Config) string {
	return strings.ToUpper(cfg.Denom)
}

// envAccount resolves the signing account address from environment
// credentials only, never prompting. Read-only commands use it so a
// balance check or watch view does not demand a mnemonic.
func envAccount(d *Deps) (string, bool) {
	if os.Getenv("MNEMONIC") == "" && os.Getenv("PRIVATE_KEY") == "" {
		return "", false
	}
	signer, err := resolveSigner(d)
	if err != nil {
		return "", false
	}
	acct, err := signer.Account()
	if err != nil {
		return "", false
	}
	return acct.Address, true
}

// queryValidatorFor looks up the validator whose operator address is
// derived from the given account address.
func queryValidatorFor(d *Deps, acctAddr string) (query.ValidatorInfo, bool, error) {
	valoper, err := address.Reencode(acctAddr, d.Cfg.ValoperPrefix)
	if err != nil {
		return query.ValidatorInfo{}, false, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	return d.Query.Validator(ctx, valoper)
}

// wrapBuildError maps builder validation failures to exit codes before
// any classification happens.
func wrapBuildError(err error) error {
	switch {
	case errors.Is(err, txerrors.ErrSignerUnavailable):
		return exitcodes.WrapError(exitcodes.SignerError, "signer unavailable", err)
	case errors.Is(err, txerrors.ErrInvalidAmount),
		errors.Is(err, txerrors.ErrInvalidPubkey),
		errors.Is(err, txerrors.ErrConstraint):
		return exitcodes.WrapError(exitcodes.ValidationError, "invalid input", err)
	default:
		return exitcodes.WrapError(exitcodes.InvalidArgs, "invalid arguments", err)
	}
}

// reportFailure prints a classified, operator-facing message and returns
// a silent error carrying the right exit code.
func reportFailure(d *Deps, action txerrors.Action, err error) error {
	explorerURL := ""
	var ambiguous *txerrors.Ambiguous
	if errors.As(err, &ambiguous) && ambiguous.Hash != "" {
		explorerURL = d.Cfg.ExplorerTxURL(ambiguous.Hash)
	}
	msg := txerrors.Classify(action, err, explorerURL)

	if flagOutput == "json" || flagOutput == "yaml" {
		d.Printer.Structured(map[string]any{"ok": false, "error": msg})
	} else {
		em := ui.ErrorMessage{Problem: msg}
		if ambiguous != nil && explorerURL != "" {
			em.Hints = []string{"Inspect the transaction on the explorer before retrying."}
		}
		ui.PrintError(em)
	}
	return silentErr{withExitCode(err)}
}

// withExitCode maps pipeline error types to process exit codes; errors
// already carrying a code pass through.
func withExitCode(err error) error {
	var ec *exitcodes.ErrorWithCode
	if errors.As(err, &ec) {
		return err
	}
	var ambiguous *txerrors.Ambiguous
	if errors.As(err, &ambiguous) {
		return exitcodes.AmbiguousErr("delivery unconfirmed", err)
	}
	var rejected *txerrors.ChainRejected
	if errors.As(err, &rejected) {
		return exitcodes.WrapError(exitcodes.ValidationError, "transaction rejected", err)
	}
	return exitcodes.WrapError(exitcodes.NetworkError, "submission failed", err)
}

// printOutcome renders a successful submission: hash, height, and the
// explorer link.
func printOutcome(d *Deps, outcome txclient.Outcome) {
	link := d.Cfg.ExplorerTxURL(outcome.Hash)
	if flagOutput == "json" || flagOutput == "yaml" {
		d.Printer.Structured(map[string]any{
			"ok":       true,
			"hash":     outcome.Hash,
			"height":   outcome.Height,
			"gas_used": outcome.GasUsed,
			"explorer": link,
		})
		return
	}
	d.Printer.Success(fmt.Sprintf("Transaction included at height %d", outcome.Height))
	d.Printer.KeyValueLine("Hash", outcome.Hash, "blue")
	d.Printer.KeyValueLine("Explorer", link, "blue")
}
