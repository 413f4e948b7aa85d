package txclient

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"cosmossdk.io/log"

	"github.com/injective-ops/validator-console/internal/txerrors"
)

// Outcome is a finalized transaction result. Hash is always set, even on
// failure paths, so the operator can look the transaction up later.
type Outcome struct {
	Hash    string
	Height  int64
	GasUsed int64
	RawLog  string
}

// localTxHash computes the CometBFT transaction hash (SHA-256 of the raw
// tx bytes) so a hash exists even when the node never answered.
func localTxHash(txBytes []byte) string {
	sum := sha256.Sum256(txBytes)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// broadcastAndAwait reconciles the three signals a submission produces:
// the mempool check, the finalized execution code, and transport health.
// A nonzero mempool code is a definitive rejection. Once the node accepts
// the transaction, only the finalized code decides success. Anything that
// leaves inclusion unknown comes back as txerrors.Ambiguous.
func (c *Client) broadcastAndAwait(ctx context.Context, txBytes []byte, logger log.Logger) (Outcome, error) {
	res, err := c.node.BroadcastTxSync(ctx, txBytes)
	if err != nil {
		// The node may have received the transaction before the
		// connection died, so this is ambiguous, not failed.
		hash := localTxHash(txBytes)
		logger.Error("broadcast transport failure", "hash", hash, "err", err)
		return Outcome{Hash: hash}, &txerrors.Ambiguous{Hash: hash, Cause: err}
	}
	hash := res.Hash
	if hash == "" {
		hash = localTxHash(txBytes)
	}
	if res.Code != 0 {
		logger.Warn("transaction refused by mempool", "hash", hash, "code", res.Code, "log", res.Log)
		return Outcome{Hash: hash, RawLog: res.Log}, &txerrors.ChainRejected{Code: res.Code, Hash: hash, RawLog: res.Log}
	}
	logger.Debug("mempool accepted, awaiting inclusion", "hash", hash)

	deadline := time.NewTimer(c.pollTimeout)
	defer deadline.Stop()
	tick := time.NewTicker(c.pollInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return Outcome{Hash: hash}, &txerrors.Ambiguous{Hash: hash, Cause: ctx.Err()}
		case <-deadline.C:
			logger.Warn("gave up waiting for inclusion", "hash", hash)
			return Outcome{Hash: hash}, &txerrors.Ambiguous{Hash: hash, Cause: txerrors.ErrTimeout}
		case <-tick.C:
			tx, found, err := c.node.Tx(ctx, hash)
			if err != nil {
				logger.Debug("tx lookup failed, retrying", "hash", hash, "err", err)
				continue
			}
			if !found {
				continue
			}
			out := Outcome{Hash: hash, Height: tx.Height, GasUsed: tx.GasUsed, RawLog: tx.RawLog}
			if tx.Code != 0 {
				// Mempool acceptance means nothing once the block
				// says otherwise.
				logger.Warn("transaction failed on chain", "hash", hash, "code", tx.Code, "height", tx.Height)
				return out, &txerrors.ChainRejected{Code: tx.Code, Hash: hash, RawLog: tx.RawLog}
			}
			logger.Info("transaction finalized", "hash", hash, "height", tx.Height, "gas_used", tx.GasUsed)
			return out, nil
		}
	}
}
