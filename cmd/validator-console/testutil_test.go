package main

import (
	"context"
	"errors"
	"testing"

	"github.com/injective-ops/validator-console/internal/address"
	"github.com/injective-ops/validator-console/internal/config"
	"github.com/injective-ops/validator-console/internal/files"
	"github.com/injective-ops/validator-console/internal/msgs"
	"github.com/injective-ops/validator-console/internal/node"
	"github.com/injective-ops/validator-console/internal/query"
	"github.com/injective-ops/validator-console/internal/txclient"
	ui "github.com/injective-ops/validator-console/internal/ui"
	"github.com/injective-ops/validator-console/internal/wallet"
)

// errMock is a generic error for test assertions.
var errMock = errors.New("mock error")

func testCfg() config.Config { return config.ForNetwork(config.Testnet) }

// testAccount derives a deterministic bech32 fixture account.
func testAccount(t *testing.T) wallet.Account {
	t.Helper()
	raw := make([]byte, 20)
	for i := range raw {
		raw[i] = byte(i + 1)
	}
	addr, err := address.FromBytes(testCfg().Bech32Prefix, raw)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	return wallet.Account{Address: addr, PubKey: make([]byte, 33)}
}

// testValoper is the operator address derived from testAccount.
func testValoper(t *testing.T) string {
	t.Helper()
	valoper, err := address.Reencode(testAccount(t).Address, testCfg().ValoperPrefix)
	if err != nil {
		t.Fatalf("Reencode: %v", err)
	}
	return valoper
}

// resetFlags restores the package-level flag state after a test mutates it.
func resetFlags(t *testing.T) {
	t.Helper()
	origOutput, origQuiet, origVerbose := flagOutput, flagQuiet, flagVerbose
	origYes, origNonInteractive := flagYes, flagNonInteractive
	origValidator, origKeyIndex := flagValidator, flagKeyIndex
	t.Cleanup(func() {
		flagOutput, flagQuiet, flagVerbose = origOutput, origQuiet, origVerbose
		flagYes, flagNonInteractive = origYes, origNonInteractive
		flagValidator, flagKeyIndex = origValidator, origKeyIndex
	})
	flagOutput = "text"
	flagQuiet, flagVerbose = false, false
	flagYes, flagNonInteractive = false, false
	flagValidator, flagKeyIndex = "", 0
}

// mockPrompter implements Prompter with canned responses.
type mockPrompter struct {
	lines       []string
	secrets     []string
	interactive bool
	readErr     error
}

func (m *mockPrompter) ReadLine(prompt string) (string, error) {
	if m.readErr != nil {
		return "", m.readErr
	}
	if len(m.lines) == 0 {
		return "", errors.New("no more scripted lines")
	}
	line := m.lines[0]
	m.lines = m.lines[1:]
	return line, nil
}

func (m *mockPrompter) ReadSecret(prompt string) (string, error) {
	if m.readErr != nil {
		return "", m.readErr
	}
	if len(m.secrets) == 0 {
		return "", errors.New("no more scripted secrets")
	}
	s := m.secrets[0]
	m.secrets = m.secrets[1:]
	return s, nil
}

func (m *mockPrompter) IsInteractive() bool { return m.interactive }

// mockQuerier implements Querier with canned data and call counters.
type mockQuerier struct {
	balance    string
	balanceErr error

	validator      query.ValidatorInfo
	validatorFound bool
	validatorErr   error

	delegation      query.Delegation
	delegationFound bool
	delegationErr   error

	validators    query.ValidatorList
	validatorsErr error

	balanceCalls   int
	validatorCalls int
}

func (m *mockQuerier) Balance(ctx context.Context, addr, denom string) (string, error) {
	m.balanceCalls++
	return m.balance, m.balanceErr
}

func (m *mockQuerier) Validator(ctx context.Context, valoper string) (query.ValidatorInfo, bool, error) {
	m.validatorCalls++
	return m.validator, m.validatorFound, m.validatorErr
}

func (m *mockQuerier) Delegation(ctx context.Context, delegator, valoper string) (query.Delegation, bool, error) {
	return m.delegation, m.delegationFound, m.delegationErr
}

func (m *mockQuerier) Validators(ctx context.Context) (query.ValidatorList, error) {
	return m.validators, m.validatorsErr
}

// mockSubmitter implements Submitter, recording what was submitted.
type mockSubmitter struct {
	account    wallet.Account
	accountErr error

	outcome   txclient.Outcome
	submitErr error

	calls    int
	gotBatch []msgs.Msg
	gotFee   msgs.Fee
	gotMemo  string
}

func (m *mockSubmitter) Account() (wallet.Account, error) {
	if m.accountErr != nil {
		return wallet.Account{}, m.accountErr
	}
	return m.account, nil
}

func (m *mockSubmitter) SignAndBroadcast(ctx context.Context, batch []msgs.Msg, fee msgs.Fee, memo string) (txclient.Outcome, error) {
	m.calls++
	m.gotBatch, m.gotFee, m.gotMemo = batch, fee, memo
	if m.submitErr != nil {
		return txclient.Outcome{}, m.submitErr
	}
	return m.outcome, nil
}

// mockSigner implements wallet.Signer.
type mockSigner struct {
	account wallet.Account
}

func (m *mockSigner) Account() (wallet.Account, error)      { return m.account, nil }
func (m *mockSigner) SignDirect(doc []byte) ([]byte, error) { return make([]byte, 64), nil }

// mockNode implements node.Client.
type mockNode struct {
	status    node.Status
	statusErr error
	headers   []node.Header
}

func (m *mockNode) Status(ctx context.Context) (node.Status, error) {
	return m.status, m.statusErr
}

func (m *mockNode) ABCIQuery(ctx context.Context, path string, data []byte) (node.ABCIResult, error) {
	return node.ABCIResult{}, nil
}

func (m *mockNode) BroadcastTxSync(ctx context.Context, tx []byte) (node.BroadcastResult, error) {
	return node.BroadcastResult{}, nil
}

func (m *mockNode) Tx(ctx context.Context, hash string) (node.TxResult, bool, error) {
	return node.TxResult{}, false, nil
}

func (m *mockNode) SubscribeHeaders(ctx context.Context) (<-chan node.Header, error) {
	ch := make(chan node.Header, len(m.headers))
	for _, h := range m.headers {
		ch <- h
	}
	close(ch)
	return ch, nil
}

// mockStore implements files.Store in memory.
type mockStore struct {
	prefs   files.Prefs
	loadErr error
	saveErr error
	saved   *files.Prefs
}

func (m *mockStore) Load() (files.Prefs, error) { return m.prefs, m.loadErr }

func (m *mockStore) Save(p files.Prefs) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = &p
	return nil
}

func (m *mockStore) Path() string { return "/tmp/validator-console-test/config.yaml" }

// testDeps wires a Deps with all mocks and a happy-path submitter.
func testDeps(t *testing.T, sub *mockSubmitter, q *mockQuerier) *Deps {
	t.Helper()
	if q == nil {
		q = &mockQuerier{}
	}
	acct := testAccount(t)
	if sub != nil && sub.account.Address == "" {
		sub.account = acct
	}
	return &Deps{
		Cfg:      testCfg(),
		Node:     &mockNode{},
		Query:    q,
		Printer:  ui.NewPrinter("text"),
		Prompter: &mockPrompter{},
		Prefs:    &mockStore{},
		NewSigner: func() (wallet.Signer, error) {
			return &mockSigner{account: acct}, nil
		},
		NewSubmitter: func(s wallet.Signer) Submitter { return sub },
	}
}
