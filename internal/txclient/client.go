// Package txclient signs and broadcasts console transactions. It adapts an
// offline wallet.Signer into a chain-aware client: account state comes from
// abci_query, gas from simulation, and finality from polling the node until
// the transaction lands in a block.
package txclient

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/log"
	"github.com/cespare/xxhash/v2"

	"github.com/injective-ops/validator-console/internal/config"
	"github.com/injective-ops/validator-console/internal/msgs"
	"github.com/injective-ops/validator-console/internal/node"
	"github.com/injective-ops/validator-console/internal/txclient/wire"
	"github.com/injective-ops/validator-console/internal/txerrors"
	"github.com/injective-ops/validator-console/internal/wallet"
)

const (
	queryAccountPath = "/cosmos.auth.v1beta1.Query/Account"
	simulatePath     = "/cosmos.tx.v1beta1.Service/Simulate"
)

// Client turns messages into signed transactions and sees them through to
// finality against a single node.
type Client struct {
	cfg    config.Config
	node   node.Client
	signer wallet.Signer
	reg    *wire.Registry
	logger log.Logger

	pollInterval time.Duration
	pollTimeout  time.Duration

	chainVerified bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger replaces the default no-op logger.
func WithLogger(l log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New builds a client around a node and a signer. The chain-id handshake
// happens lazily on first use so construction stays offline.
func New(cfg config.Config, n node.Client, signer wallet.Signer, opts ...Option) *Client {
	c := &Client{
		cfg:          cfg,
		node:         n,
		signer:       signer,
		reg:          wire.NewRegistry(),
		logger:       log.NewNopLogger(),
		pollInterval: 2 * time.Second,
		pollTimeout:  60 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Account reports the signer's identity. An unreachable or locked signer
// surfaces as ErrSignerUnavailable so callers can prompt the operator.
func (c *Client) Account() (wallet.Account, error) {
	acct, err := c.signer.Account()
	if err != nil {
		return wallet.Account{}, fmt.Errorf("%w: %v", txerrors.ErrSignerUnavailable, err)
	}
	return acct, nil
}

// VerifyChain checks that the node serves the configured chain. The result
// is cached; every signing path runs through it exactly once.
func (c *Client) VerifyChain(ctx context.Context) error {
	if c.chainVerified {
		return nil
	}
	st, err := c.node.Status(ctx)
	if err != nil {
		return fmt.Errorf("node status: %w", err)
	}
	if st.Network != c.cfg.ChainID {
		return fmt.Errorf("node serves chain %q, configured for %q", st.Network, c.cfg.ChainID)
	}
	c.chainVerified = true
	return nil
}

// accountInfo fetches account number and sequence over abci_query.
func (c *Client) accountInfo(ctx context.Context, addr string) (wire.AccountInfo, error) {
	res, err := c.node.ABCIQuery(ctx, queryAccountPath, wire.EncodeQueryAccountRequest(addr))
	if err != nil {
		return wire.AccountInfo{}, fmt.Errorf("query account: %w", err)
	}
	if res.Code != 0 {
		return wire.AccountInfo{}, fmt.Errorf("query account %s: code %d: %s", addr, res.Code, res.Log)
	}
	return wire.ParseQueryAccountResponse(res.Value)
}

// SignAndBroadcast runs the full pipeline for a batch of messages sharing
// one fee: encode, estimate gas, sign DIRECT, broadcast, and await the
// finalized result.
func (c *Client) SignAndBroadcast(ctx context.Context, batch []msgs.Msg, fee msgs.Fee, memo string) (Outcome, error) {
	if len(batch) == 0 {
		return Outcome{}, fmt.Errorf("empty message batch")
	}
	if err := c.VerifyChain(ctx); err != nil {
		return Outcome{}, err
	}
	acct, err := c.Account()
	if err != nil {
		return Outcome{}, err
	}
	info, err := c.accountInfo(ctx, acct.Address)
	if err != nil {
		return Outcome{}, err
	}

	anys := make([][]byte, 0, len(batch))
	for _, m := range batch {
		a, err := c.reg.EncodeAny(m)
		if err != nil {
			return Outcome{}, err
		}
		anys = append(anys, a)
	}
	body := wire.EncodeTxBody(anys, memo, 0)
	pubkeyAny := wire.EncodeAny(wire.TypeURLEthSecp256k1PubKey, wire.EncodeEthSecp256k1PubKey(acct.PubKey))

	gasLimit := c.estimateGas(ctx, body, pubkeyAny, info.Sequence, fee)

	authInfo := wire.EncodeAuthInfo(pubkeyAny, info.Sequence, fee, gasLimit)
	signDoc := wire.EncodeSignDoc(body, authInfo, c.cfg.ChainID, info.AccountNumber)
	sig, err := c.signer.SignDirect(signDoc)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", txerrors.ErrSignerUnavailable, err)
	}
	txBytes := wire.EncodeTxRaw(body, authInfo, sig)

	logger := c.logger.With(
		"corr", fmt.Sprintf("%016x", xxhash.Sum64(txBytes)),
		"signer", acct.Address,
		"msgs", len(batch),
	)
	logger.Info("broadcasting transaction", "gas_limit", gasLimit, "sequence", info.Sequence)
	return c.broadcastAndAwait(ctx, txBytes, logger)
}
