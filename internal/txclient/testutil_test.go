package txclient

import (
	"context"
	"strings"
	"testing"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/injective-ops/validator-console/internal/config"
	"github.com/injective-ops/validator-console/internal/node"
	"github.com/injective-ops/validator-console/internal/wallet"
)

// fakeNode implements node.Client with overridable function fields.
type fakeNode struct {
	statusFn    func(ctx context.Context) (node.Status, error)
	abciQueryFn func(ctx context.Context, path string, data []byte) (node.ABCIResult, error)
	broadcastFn func(ctx context.Context, tx []byte) (node.BroadcastResult, error)
	txFn        func(ctx context.Context, hash string) (node.TxResult, bool, error)
}

func (f *fakeNode) Status(ctx context.Context) (node.Status, error) {
	if f.statusFn != nil {
		return f.statusFn(ctx)
	}
	return node.Status{Network: "injective-1", Height: 1000}, nil
}

func (f *fakeNode) ABCIQuery(ctx context.Context, path string, data []byte) (node.ABCIResult, error) {
	if f.abciQueryFn != nil {
		return f.abciQueryFn(ctx, path, data)
	}
	return node.ABCIResult{}, nil
}

func (f *fakeNode) BroadcastTxSync(ctx context.Context, tx []byte) (node.BroadcastResult, error) {
	if f.broadcastFn != nil {
		return f.broadcastFn(ctx, tx)
	}
	return node.BroadcastResult{Code: 0, Hash: "ABCD1234"}, nil
}

func (f *fakeNode) Tx(ctx context.Context, hash string) (node.TxResult, bool, error) {
	if f.txFn != nil {
		return f.txFn(ctx, hash)
	}
	return node.TxResult{Hash: hash, Height: 42, Code: 0}, true, nil
}

func (f *fakeNode) SubscribeHeaders(ctx context.Context) (<-chan node.Header, error) {
	return nil, nil
}

// testSigner is a deterministic in-memory signer.
func testSigner(t *testing.T) wallet.Signer {
	t.Helper()
	s, err := wallet.NewPrivateKeySigner(strings.Repeat("11", 32), "inj")
	if err != nil {
		t.Fatalf("test signer: %v", err)
	}
	return s
}

// newTestClient wires a client against the fake node with fast polling.
func newTestClient(t *testing.T, n node.Client) *Client {
	t.Helper()
	c := New(config.ForNetwork(config.Mainnet), n, testSigner(t))
	c.pollInterval = time.Millisecond
	c.pollTimeout = 100 * time.Millisecond
	return c
}

// accountResponseValue builds a cosmos.auth.v1beta1.QueryAccountResponse
// holding an EthAccount, the shape mainnet accounts come back in.
func accountResponseValue(addr string, accountNumber, sequence uint64) []byte {
	var base []byte
	base = protowire.AppendTag(base, 1, protowire.BytesType)
	base = protowire.AppendString(base, addr)
	base = protowire.AppendTag(base, 3, protowire.VarintType)
	base = protowire.AppendVarint(base, accountNumber)
	base = protowire.AppendTag(base, 4, protowire.VarintType)
	base = protowire.AppendVarint(base, sequence)

	var eth []byte
	eth = protowire.AppendTag(eth, 1, protowire.BytesType)
	eth = protowire.AppendBytes(eth, base)

	var anyMsg []byte
	anyMsg = protowire.AppendTag(anyMsg, 1, protowire.BytesType)
	anyMsg = protowire.AppendString(anyMsg, "/injective.types.v1beta1.EthAccount")
	anyMsg = protowire.AppendTag(anyMsg, 2, protowire.BytesType)
	anyMsg = protowire.AppendBytes(anyMsg, eth)

	var resp []byte
	resp = protowire.AppendTag(resp, 1, protowire.BytesType)
	resp = protowire.AppendBytes(resp, anyMsg)
	return resp
}

// simulateResponseValue builds a cosmos.tx.v1beta1.SimulateResponse with
// the given gas_used.
func simulateResponseValue(gasUsed uint64) []byte {
	var gasInfo []byte
	gasInfo = protowire.AppendTag(gasInfo, 2, protowire.VarintType)
	gasInfo = protowire.AppendVarint(gasInfo, gasUsed)

	var resp []byte
	resp = protowire.AppendTag(resp, 1, protowire.BytesType)
	resp = protowire.AppendBytes(resp, gasInfo)
	return resp
}

// dispatchQueries routes abci_query calls by service path.
func dispatchQueries(account, simulate func(data []byte) (node.ABCIResult, error)) func(ctx context.Context, path string, data []byte) (node.ABCIResult, error) {
	return func(ctx context.Context, path string, data []byte) (node.ABCIResult, error) {
		switch path {
		case queryAccountPath:
			return account(data)
		case simulatePath:
			return simulate(data)
		}
		return node.ABCIResult{Code: 6, Log: "unknown query path " + path}, nil
	}
}
