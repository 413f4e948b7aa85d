// Package txerrors defines the error taxonomy of the transaction pipeline
// and the classifier that folds raw chain/transport errors into the fixed
// set of user-facing causes.
package txerrors

import (
	"errors"
	"fmt"
)

// Validation errors, raised before any network call.
var (
	// ErrInvalidPubkey reports a consensus pubkey that is not exactly
	// 32 raw bytes after base64 decoding.
	ErrInvalidPubkey = errors.New("invalid consensus pubkey")

	// ErrInvalidAmount reports a non-positive or unparseable token amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrConstraint reports a violated cross-field constraint, e.g.
	// self-delegation below the minimum.
	ErrConstraint = errors.New("constraint violation")
)

// Pipeline errors.
var (
	// ErrSignerUnavailable reports a signer that cannot produce account or
	// pubkey info at client construction time.
	ErrSignerUnavailable = errors.New("signer unavailable")

	// ErrTimeout reports that finality polling exhausted its bound without
	// a definitive result.
	ErrTimeout = errors.New("timed out waiting for block inclusion")
)

// ChainRejected is a definitive nonzero result code from the chain, either
// from the mempool check or from the finalized block result. The finalized
// code is authoritative when both exist.
type ChainRejected struct {
	Code   uint32
	Hash   string
	RawLog string
}

func (e *ChainRejected) Error() string {
	if e.RawLog != "" {
		return fmt.Sprintf("transaction failed with code %d: %s", e.Code, e.RawLog)
	}
	return fmt.Sprintf("transaction failed with code %d", e.Code)
}

// Ambiguous wraps a transport failure that happened after signing, where
// the transaction may already be in flight. Hash is set when one was
// recovered from the failure.
type Ambiguous struct {
	Hash  string
	Cause error
}

func (e *Ambiguous) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("broadcast outcome unknown: %v", e.Cause)
	}
	return "broadcast outcome unknown"
}

func (e *Ambiguous) Unwrap() error { return e.Cause }
