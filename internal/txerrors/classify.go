package txerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Action identifies the console operation that produced an error, so
// classification can phrase duplicate and permission failures precisely.
type Action string

const (
	ActionRegister     Action = "register"
	ActionEdit         Action = "edit-validator"
	ActionOrchestrator Action = "orchestrator"
	ActionDelegate     Action = "delegate"
	ActionUndelegate   Action = "undelegate"
	ActionUnjail       Action = "unjail"
)

// rule maps raw error phrases to operator-facing text. An empty action
// matches every operation.
type rule struct {
	action  Action
	phrases []string
	message string
}

// rules are checked in order; the first match wins. Keep the specific
// per-action phrases above the generic ones.
var rules = []rule{
	{
		phrases: []string{"request rejected", "user rejected", "user denied"},
		message: "Transaction rejected in the wallet. Approve the request and try again.",
	},
	{
		action:  ActionRegister,
		phrases: []string{"validator already exist", "validator pubkey exists"},
		message: "A validator already exists for this operator key or consensus pubkey.",
	},
	{
		action:  ActionEdit,
		phrases: []string{"commission cannot be changed more than once"},
		message: "Commission can only be changed once per 24 hours. Wait and try again.",
	},
	{
		action:  ActionOrchestrator,
		phrases: []string{"orchestrator address is already set", "ethereum address is already set"},
		message: "Orchestrator addresses are already set for this validator and cannot be changed.",
	},
	{
		action:  ActionUnjail,
		phrases: []string{"validator not jailed"},
		message: "This validator is not jailed, nothing to do.",
	},
	{
		action:  ActionUnjail,
		phrases: []string{"still jailed", "jailed until"},
		message: "The jail period has not elapsed yet. Try again after the release time.",
	},
	{
		phrases: []string{"insufficient funds", "insufficient fee"},
		message: "Insufficient funds to cover the amount plus the transaction fee.",
	},
	{
		phrases: []string{"too many unbonding delegation entries"},
		message: "Too many pending unbondings for this validator. Wait for one to complete.",
	},
	{
		phrases: []string{"unauthorized", "signature verification failed", "pubkey does not match"},
		message: "Unauthorized: the connected account does not control this validator.",
	},
	{
		phrases: []string{"account sequence mismatch"},
		message: "Account sequence out of date, likely a concurrent transaction. Try again.",
	},
	{
		phrases: []string{"out of gas"},
		message: "Transaction ran out of gas. Try again; the estimate will adjust.",
	},
}

// Classify folds a pipeline error into a message the operator can act on.
// Ambiguous outcomes warn against blind retries and point at the explorer
// when a transaction hash was recovered. Errors no rule covers pass
// through verbatim.
func Classify(action Action, err error, explorerURL string) string {
	if err == nil {
		return ""
	}

	var ambiguous *Ambiguous
	if errors.As(err, &ambiguous) {
		msg := "Could not confirm whether the transaction was delivered. Do not retry blindly."
		if ambiguous.Hash != "" && explorerURL != "" {
			msg += fmt.Sprintf(" Check %s before submitting again.", explorerURL)
		}
		return msg
	}

	raw := err.Error()
	var rejected *ChainRejected
	if errors.As(err, &rejected) {
		raw = rejected.RawLog
	}
	lowered := strings.ToLower(raw)

	for _, r := range rules {
		if r.action != "" && r.action != action {
			continue
		}
		for _, p := range r.phrases {
			if strings.Contains(lowered, p) {
				return r.message
			}
		}
	}
	return err.Error()
}
