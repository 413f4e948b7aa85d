package node

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client defines the CometBFT RPC/WS client surface area we depend on.
type Client interface {
	Status(ctx context.Context) (Status, error)
	ABCIQuery(ctx context.Context, path string, data []byte) (ABCIResult, error)
	BroadcastTxSync(ctx context.Context, tx []byte) (BroadcastResult, error)
	// Tx looks up a transaction in finalized blocks. The bool reports
	// whether it was found; not-yet-included is not an error.
	Tx(ctx context.Context, hash string) (TxResult, bool, error)
	SubscribeHeaders(ctx context.Context) (<-chan Header, error)
}

type Status struct {
	NodeID     string
	Moniker    string
	Network    string // chain-id
	CatchingUp bool
	Height     int64
}

// ABCIResult is the application response to an abci_query.
type ABCIResult struct {
	Code  uint32
	Log   string
	Value []byte
}

// BroadcastResult is the mempool-check outcome of broadcast_tx_sync.
// A nonzero Code means the node refused the transaction at CheckTx.
type BroadcastResult struct {
	Code      uint32
	Hash      string
	Log       string
	Codespace string
}

// TxResult is a transaction's finalized block result. Its Code is the
// authoritative success signal.
type TxResult struct {
	Hash    string
	Height  int64
	Code    uint32
	RawLog  string
	GasUsed int64
}

type Header struct {
	Height int64
	Time   time.Time
}

type httpClient struct {
	http  *http.Client
	base  string // e.g. https://sentry.tm.injective.network:443
	wsURL string // derived, e.g. wss://.../websocket
}

// New constructs a JSON-RPC client with sane timeouts. The websocket URL
// is derived from base.
func New(base string) Client {
	base = strings.TrimRight(base, "/")
	return &httpClient{
		http: &http.Client{Timeout: 10 * time.Second},
		base: base,
		wsURL: deriveWS(base),
	}
}

func deriveWS(base string) string {
	// http://host:port -> ws://host:port/websocket
	// https:// -> wss://
	if strings.HasPrefix(base, "http://") {
		return "ws://" + strings.TrimPrefix(base, "http://") + "/websocket"
	}
	if strings.HasPrefix(base, "https://") {
		return "wss://" + strings.TrimPrefix(base, "https://") + "/websocket"
	}
	// default
	return "ws://" + base + "/websocket"
}

// rpcError is the JSON-RPC error envelope CometBFT returns.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"`
}

func (e *rpcError) Error() string {
	if e.Data != "" { return fmt.Sprintf("rpc error %d: %s: %s", e.Code, e.Message, e.Data) }
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

func (c *httpClient) get(ctx context.Context, path string, params url.Values, result any) error {
	u := c.base + path
	if len(params) > 0 { u += "?" + params.Encode() }
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil { return err }
	resp, err := c.http.Do(req)
	if err != nil { return err }
	defer resp.Body.Close()
	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  *rpcError       `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil { return fmt.Errorf("decode rpc response: %w", err) }
	if envelope.Error != nil { return envelope.Error }
	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil { return fmt.Errorf("decode rpc result: %w", err) }
	}
	return nil
}

func (c *httpClient) Status(ctx context.Context) (Status, error) {
	var payload struct {
		NodeInfo struct {
			ID      string `json:"id"`
			Moniker string `json:"moniker"`
			Network string `json:"network"`
		} `json:"node_info"`
		SyncInfo struct {
			CatchingUp bool   `json:"catching_up"`
			Height     string `json:"latest_block_height"`
		} `json:"sync_info"`
	}
	if err := c.get(ctx, "/status", nil, &payload); err != nil { return Status{}, err }
	h, _ := strconv.ParseInt(payload.SyncInfo.Height, 10, 64)
	return Status{
		NodeID:     payload.NodeInfo.ID,
		Moniker:    payload.NodeInfo.Moniker,
		Network:    payload.NodeInfo.Network,
		CatchingUp: payload.SyncInfo.CatchingUp,
		Height:     h,
	}, nil
}

func (c *httpClient) ABCIQuery(ctx context.Context, path string, data []byte) (ABCIResult, error) {
	q := url.Values{}
	q.Set("path", strconv.Quote(path))
	q.Set("data", "0x"+hex.EncodeToString(data))
	var payload struct {
		Response struct {
			Code  uint32 `json:"code"`
			Log   string `json:"log"`
			Value string `json:"value"`
		} `json:"response"`
	}
	if err := c.get(ctx, "/abci_query", q, &payload); err != nil { return ABCIResult{}, err }
	value, err := base64.StdEncoding.DecodeString(payload.Response.Value)
	if err != nil { return ABCIResult{}, fmt.Errorf("decode abci value: %w", err) }
	return ABCIResult{Code: payload.Response.Code, Log: payload.Response.Log, Value: value}, nil
}

func (c *httpClient) BroadcastTxSync(ctx context.Context, tx []byte) (BroadcastResult, error) {
	q := url.Values{}
	q.Set("tx", "0x"+hex.EncodeToString(tx))
	var payload struct {
		Code      uint32 `json:"code"`
		Log       string `json:"log"`
		Codespace string `json:"codespace"`
		Hash      string `json:"hash"`
	}
	if err := c.get(ctx, "/broadcast_tx_sync", q, &payload); err != nil { return BroadcastResult{}, err }
	return BroadcastResult{
		Code:      payload.Code,
		Hash:      strings.ToUpper(payload.Hash),
		Log:       payload.Log,
		Codespace: payload.Codespace,
	}, nil
}

func (c *httpClient) Tx(ctx context.Context, hash string) (TxResult, bool, error) {
	hash = strings.TrimPrefix(strings.ToUpper(hash), "0X")
	q := url.Values{}
	q.Set("hash", "0x"+hash)
	var payload struct {
		Hash     string `json:"hash"`
		Height   string `json:"height"`
		TxResult struct {
			Code    uint32 `json:"code"`
			Log     string `json:"log"`
			GasUsed string `json:"gas_used"`
		} `json:"tx_result"`
	}
	err := c.get(ctx, "/tx", q, &payload)
	if err != nil {
		if rpcErr, ok := err.(*rpcError); ok && strings.Contains(rpcErr.Data, "not found") {
			return TxResult{}, false, nil
		}
		return TxResult{}, false, err
	}
	height, _ := strconv.ParseInt(payload.Height, 10, 64)
	gasUsed, _ := strconv.ParseInt(payload.TxResult.GasUsed, 10, 64)
	return TxResult{
		Hash:    strings.ToUpper(payload.Hash),
		Height:  height,
		Code:    payload.TxResult.Code,
		RawLog:  payload.TxResult.Log,
		GasUsed: gasUsed,
	}, true, nil
}

func (c *httpClient) SubscribeHeaders(ctx context.Context) (<-chan Header, error) {
	return DialAndSubscribeHeaders(ctx, c.wsURL)
}
