package txclient

import (
	"context"
	"math"

	"github.com/injective-ops/validator-console/internal/msgs"
	"github.com/injective-ops/validator-console/internal/txclient/wire"
)

const (
	// gasAdjustment pads the simulated gas so small state drift between
	// simulation and inclusion does not run the transaction out of gas.
	gasAdjustment = 1.5

	// fallbackGasLimit is used whenever simulation cannot produce an
	// estimate. Generous for every message the console sends.
	fallbackGasLimit = 400_000
)

// estimateGas simulates the transaction and returns ceil(gas_used * 1.5).
// Estimation is best effort: any failure falls back to a fixed limit and
// never aborts the signing flow.
func (c *Client) estimateGas(ctx context.Context, body, pubkeyAny []byte, sequence uint64, fee msgs.Fee) uint64 {
	// Simulation still requires a structurally complete TxRaw, so the
	// signature slot carries 64 zero bytes.
	authInfo := wire.EncodeAuthInfo(pubkeyAny, sequence, fee, fallbackGasLimit)
	txBytes := wire.EncodeTxRaw(body, authInfo, make([]byte, 64))

	res, err := c.node.ABCIQuery(ctx, simulatePath, wire.EncodeSimulateRequest(txBytes))
	if err != nil {
		c.logger.Warn("gas simulation unavailable, using fallback", "err", err, "gas_limit", uint64(fallbackGasLimit))
		return fallbackGasLimit
	}
	if res.Code != 0 {
		c.logger.Warn("gas simulation rejected, using fallback", "code", res.Code, "log", res.Log, "gas_limit", uint64(fallbackGasLimit))
		return fallbackGasLimit
	}
	gasUsed, err := wire.ParseSimulateResponse(res.Value)
	if err != nil {
		c.logger.Warn("gas simulation unreadable, using fallback", "err", err, "gas_limit", uint64(fallbackGasLimit))
		return fallbackGasLimit
	}
	limit := uint64(math.Ceil(float64(gasUsed) * gasAdjustment))
	c.logger.Debug("gas estimated", "gas_used", gasUsed, "gas_limit", limit)
	return limit
}
