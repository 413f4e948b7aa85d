package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/injective-ops/validator-console/internal/config"
	"github.com/injective-ops/validator-console/internal/files"
	"github.com/injective-ops/validator-console/internal/msgs"
	"github.com/injective-ops/validator-console/internal/node"
	"github.com/injective-ops/validator-console/internal/query"
	"github.com/injective-ops/validator-console/internal/txclient"
	ui "github.com/injective-ops/validator-console/internal/ui"
	"github.com/injective-ops/validator-console/internal/wallet"
)

// Prompter abstracts interactive terminal I/O for testability.
type Prompter interface {
	// ReadLine displays the prompt and reads a line of input.
	ReadLine(prompt string) (string, error)
	// ReadSecret reads a line without echoing it (mnemonics, keys).
	ReadSecret(prompt string) (string, error)
	// IsInteractive returns whether the terminal supports interactive input.
	IsInteractive() bool
}

// Querier abstracts the REST query client for testability.
type Querier interface {
	Balance(ctx context.Context, addr, denom string) (string, error)
	Validator(ctx context.Context, valoper string) (query.ValidatorInfo, bool, error)
	Delegation(ctx context.Context, delegator, valoper string) (query.Delegation, bool, error)
	Validators(ctx context.Context) (query.ValidatorList, error)
}

// Submitter is the one-shot transaction pipeline a command drives. A new
// one is built per submission and discarded afterwards.
type Submitter interface {
	Account() (wallet.Account, error)
	SignAndBroadcast(ctx context.Context, batch []msgs.Msg, fee msgs.Fee, memo string) (txclient.Outcome, error)
}

// Deps holds all injectable dependencies for command handlers.
type Deps struct {
	Cfg      config.Config
	Node     node.Client
	Query    Querier
	Printer  ui.Printer
	Prompter Prompter
	Output   io.Writer
	Prefs    files.Store

	// NewSigner resolves the signing capability from the environment or
	// an interactive prompt.
	NewSigner func() (wallet.Signer, error)

	// NewSubmitter builds the per-submission transaction client.
	NewSubmitter func(wallet.Signer) Submitter
}

// ttyPrompter is the production implementation of Prompter.
// It uses /dev/tty when stdin is not a terminal (e.g., piped input).
type ttyPrompter struct{}

func (p *ttyPrompter) ReadLine(prompt string) (string, error) {
	fmt.Print(prompt)

	var reader *bufio.Reader
	if term.IsTerminal(int(os.Stdin.Fd())) {
		reader = bufio.NewReader(os.Stdin)
	} else {
		tty, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
		if err != nil {
			return "", fmt.Errorf("no interactive terminal available: %w", err)
		}
		defer tty.Close()
		reader = bufio.NewReader(tty)
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *ttyPrompter) ReadSecret(prompt string) (string, error) {
	fmt.Print(prompt)

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		tty, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
		if err != nil {
			return "", fmt.Errorf("no interactive terminal available: %w", err)
		}
		defer tty.Close()
		fd = int(tty.Fd())
	}

	secret, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}

func (p *ttyPrompter) IsInteractive() bool {
	if flagNonInteractive {
		return false
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return true
	}
	// Check if /dev/tty is accessible
	tty, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
	if err == nil {
		tty.Close()
		return true
	}
	return false
}

// newDeps creates production dependencies from the current flags and config.
func newDeps() *Deps {
	cfg := loadCfg()
	prompter := &ttyPrompter{}

	d := &Deps{
		Cfg:      cfg,
		Node:     node.New(cfg.RPCURL),
		Query:    query.NewFetcher(cfg.RESTURL),
		Printer:  getPrinter(),
		Prompter: prompter,
		Output:   os.Stdout,
		Prefs:    files.New(files.DefaultDir()),
	}
	d.NewSigner = func() (wallet.Signer, error) { return resolveSigner(d) }
	d.NewSubmitter = func(s wallet.Signer) Submitter {
		return txclient.New(cfg, d.Node, s, txclient.WithLogger(pipelineLogger()))
	}
	return d
}

// getPrinter returns a UI printer bound to the current --output flag,
// honoring the global color and emoji switches.
func getPrinter() ui.Printer { return ui.NewPrinterFromGlobal(flagOutput) }
