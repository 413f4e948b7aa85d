package dashboard

import (
	"context"
	"time"

	"github.com/injective-ops/validator-console/internal/config"
	"github.com/injective-ops/validator-console/internal/node"
	"github.com/injective-ops/validator-console/internal/query"
)

// Message types for Bubble Tea event loop - ensures deterministic control flow

// tickMsg is sent periodically to trigger data refresh
type tickMsg time.Time

// dataMsg contains successfully fetched dashboard data
type dataMsg DashboardData

// dataErrMsg contains an error from a failed data fetch
type dataErrMsg struct {
	err error
}

// fetchStartedMsg is sent when a fetch begins, carrying the cancel function
// This ensures cancel func is assigned on UI thread, not in Cmd goroutine
type fetchStartedMsg struct {
	cancel context.CancelFunc
}

// forceRefreshMsg is sent when user presses 'r' to refresh immediately
type forceRefreshMsg struct{}

// toggleHelpMsg is sent when user presses '?' to toggle help overlay
type toggleHelpMsg struct{}

// MyValidator is the operator's validator record as shown in the watch view.
type MyValidator struct {
	Registered bool
	Address    string
	Moniker    string
	Status     string
	Tokens     string // display units
	Commission string // human percentage, e.g. "10.5%"
	VotingPct  float64 // share of total bonded tokens [0,1]
	Jailed     bool
}

// ValidatorRow is one entry of the network validators table.
type ValidatorRow struct {
	Moniker    string
	Address    string
	Status     string
	Tokens     string // display units
	Commission string // human percentage
	Jailed     bool
}

// DashboardData aggregates all data shown in the watch view
type DashboardData struct {
	// Chain head as reported by the RPC node
	Chain node.Status

	// Signing account
	Account struct {
		Address string
		Balance string // display units
	}

	// Operator's validator
	MyValidator MyValidator

	// Network validators, sorted by bonded tokens descending
	Validators      []ValidatorRow
	TotalValidators int

	// Console update notification
	UpdateInfo struct {
		Available     bool
		LatestVersion string
	}

	// Console version (for display in header)
	CLIVersion string

	LastUpdate time.Time
	Err        error // Last fetch error (for display in header)
}

// Options configures watch view behavior
type Options struct {
	Config           config.Config
	Node             node.Client
	Fetcher          *query.Fetcher
	AccountAddress   string // signing account, empty when no signer configured
	ValidatorAddress string // operator address, empty when not registered
	RefreshInterval  time.Duration
	RPCTimeout       time.Duration // Timeout for RPC calls (default: 5s)
	NoColor          bool
	NoEmoji          bool
	CLIVersion       string

	// Release check result, resolved once before the view starts
	UpdateAvailable bool
	UpdateVersion   string
}
