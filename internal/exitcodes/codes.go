package exitcodes

import (
	"errors"
	"fmt"
	"os"
)

// Standard exit codes for validator-console
const (
	// Success indicates successful command completion
	Success = 0

	// GeneralError indicates a general/unknown error
	GeneralError = 1

	// InvalidArgs indicates invalid command-line arguments or flags
	InvalidArgs = 2

	// PreconditionFailed indicates a precondition was not met
	// (e.g., no validator registered, account not funded)
	PreconditionFailed = 3

	// NetworkError indicates network/connectivity failure
	// (e.g., RPC unreachable, timeout, DNS failure)
	NetworkError = 4

	// SignerError indicates the signer could not be used
	// (e.g., missing mnemonic, rejected signing request)
	SignerError = 5

	// ValidationError indicates validation failure
	// (e.g., malformed address, out-of-range commission)
	ValidationError = 6

	// AmbiguousOutcome indicates a broadcast whose delivery could not be
	// confirmed; the operator must check the explorer before retrying
	AmbiguousOutcome = 7
)

// Exit terminates the program with the given code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError prints error message to stderr and exits with the given code
func ExitWithError(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}

// ExitWithErrorf prints formatted error message to stderr and exits
func ExitWithErrorf(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}

// CodeForError returns the appropriate exit code for an error.
// Unwraps to find an ErrorWithCode, otherwise returns GeneralError.
// Use explicit error constructors (NetworkErr, SignerErr, etc.) for specific codes.
func CodeForError(err error) int {
	if err == nil {
		return Success
	}

	var ec *ErrorWithCode
	if errors.As(err, &ec) {
		return ec.Code
	}

	// Default to general error - callers should use explicit error constructors
	return GeneralError
}
