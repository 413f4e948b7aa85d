// Package dashboard renders the live watch view: chain head, signing
// account, the operator's validator, and the network validator set, all
// refreshed on a fixed tick.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	sdkmath "cosmossdk.io/math"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/injective-ops/validator-console/internal/numeric"
	"github.com/injective-ops/validator-console/internal/query"
)

const (
	defaultRefreshInterval = 5 * time.Second
	defaultRPCTimeout      = 5 * time.Second
)

// Model is the Bubble Tea model for the watch view
type Model struct {
	opts     Options
	registry *ComponentRegistry
	layout   *Layout
	data     DashboardData

	width  int
	height int

	fetching    bool
	fetchCancel context.CancelFunc
	showHelp    bool
	quitting    bool
}

// NewModel builds the watch model with the standard component layout.
func NewModel(opts Options) *Model {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = defaultRefreshInterval
	}
	if opts.RPCTimeout <= 0 {
		opts.RPCTimeout = defaultRPCTimeout
	}

	registry := NewComponentRegistry()
	registry.Register(NewHeader())
	registry.Register(NewChainStatus(opts.NoEmoji))
	registry.Register(NewAccountStatus(opts.NoEmoji))
	registry.Register(NewValidatorInfo(opts.NoEmoji))
	registry.Register(NewValidatorsList(opts.NoEmoji))

	layoutCfg := LayoutConfig{
		Rows: []LayoutRow{
			{Components: []string{"header"}, Weights: []int{1}, MinHeight: 3},
			{Components: []string{"chain_status", "account_status"}, Weights: []int{1, 1}, MinHeight: 7},
			{Components: []string{"validator_info"}, Weights: []int{1}, MinHeight: 8},
			{Components: []string{"validators_list"}, Weights: []int{1}, MinHeight: 12},
		},
	}

	m := &Model{
		opts:     opts,
		registry: registry,
		layout:   NewLayout(layoutCfg, registry),
		data: DashboardData{
			CLIVersion: opts.CLIVersion,
		},
	}
	m.data.UpdateInfo.Available = opts.UpdateAvailable
	m.data.UpdateInfo.LatestVersion = opts.UpdateVersion
	return m
}

// Run starts the watch view and blocks until the operator quits.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), m.tickCmd())
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.opts.RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchCmd snapshots all data sources off the UI thread.
func (m *Model) fetchCmd() tea.Cmd {
	ctx, cancel := context.WithTimeout(context.Background(), m.opts.RPCTimeout)
	fetch := func() tea.Msg {
		defer cancel()
		data, err := fetchData(ctx, m.opts)
		if err != nil {
			return dataErrMsg{err: err}
		}
		return dataMsg(data)
	}
	started := func() tea.Msg { return fetchStartedMsg{cancel: cancel} }
	return tea.Batch(started, fetch)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			if m.fetchCancel != nil {
				m.fetchCancel()
			}
			return m, tea.Quit
		case "r":
			return m, func() tea.Msg { return forceRefreshMsg{} }
		case "?":
			return m, func() tea.Msg { return toggleHelpMsg{} }
		}
		return m, nil

	case toggleHelpMsg:
		m.showHelp = !m.showHelp
		return m, nil

	case forceRefreshMsg:
		if m.fetching {
			return m, nil
		}
		m.fetching = true
		return m, m.fetchCmd()

	case tickMsg:
		cmds := []tea.Cmd{m.tickCmd()}
		if !m.fetching {
			m.fetching = true
			cmds = append(cmds, m.fetchCmd())
		}
		return m, tea.Batch(cmds...)

	case fetchStartedMsg:
		m.fetchCancel = msg.cancel
		return m, nil

	case dataMsg:
		m.fetching = false
		data := DashboardData(msg)
		data.CLIVersion = m.opts.CLIVersion
		data.UpdateInfo = m.data.UpdateInfo
		m.data = data
		cmds := m.registry.UpdateAll(msg, m.data)
		return m, tea.Batch(cmds...)

	case dataErrMsg:
		m.fetching = false
		// Keep the previous snapshot so the panels do not blank out.
		m.data.Err = msg.err
		cmds := m.registry.UpdateAll(msg, m.data)
		return m, tea.Batch(cmds...)
	}

	cmds := m.registry.UpdateAll(msg, m.data)
	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width <= 0 || m.height <= 0 {
		return "loading..."
	}
	if m.showHelp {
		return m.helpView()
	}

	result := m.layout.Compute(m.width, m.height)
	rows := map[int][]string{}
	order := []int{}
	for _, cell := range result.Cells {
		comp := m.registry.Get(cell.ID)
		if comp == nil {
			continue
		}
		if _, seen := rows[cell.Y]; !seen {
			order = append(order, cell.Y)
		}
		rows[cell.Y] = append(rows[cell.Y], comp.View(cell.W, cell.H))
	}
	sort.Ints(order)

	var lines []string
	for _, y := range order {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, rows[y]...))
	}
	out := joinLines(lines, "\n")
	if result.Warning != "" {
		out += "\n" + result.Warning
	}
	return out
}

func (m *Model) helpView() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2)
	help := "Watch view keys\n\n" +
		"  r    refresh now\n" +
		"  ?    toggle this help\n" +
		"  q    quit\n"
	return style.Render(help)
}

// fetchData collects one consistent snapshot from the node and the REST
// endpoint. Partial failures fail the whole snapshot; the model keeps the
// previous one and surfaces the error in the header.
func fetchData(ctx context.Context, opts Options) (DashboardData, error) {
	var data DashboardData
	data.LastUpdate = time.Now()

	st, err := opts.Node.Status(ctx)
	if err != nil {
		return data, fmt.Errorf("node status: %w", err)
	}
	data.Chain = st

	list, err := opts.Fetcher.Validators(ctx)
	if err != nil {
		return data, err
	}
	data.TotalValidators = list.Total
	data.Validators = buildRows(list)

	if opts.AccountAddress != "" {
		data.Account.Address = opts.AccountAddress
		balance, err := opts.Fetcher.Balance(ctx, opts.AccountAddress, opts.Config.Denom)
		if err != nil {
			return data, err
		}
		data.Account.Balance = formatTokens(balance, 4)
	}

	if opts.ValidatorAddress != "" {
		data.MyValidator = buildMyValidator(list, opts.ValidatorAddress)
	}
	return data, nil
}

func buildRows(list query.ValidatorList) []ValidatorRow {
	// Sort by bonded tokens descending so the table reads as a power table.
	sorted := append([]query.ValidatorInfo(nil), list.Validators...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, aok := sdkmath.NewIntFromString(sorted[i].Tokens)
		b, bok := sdkmath.NewIntFromString(sorted[j].Tokens)
		if !aok || !bok {
			return false
		}
		return a.GT(b)
	})

	rows := make([]ValidatorRow, 0, len(sorted))
	for _, v := range sorted {
		rows = append(rows, ValidatorRow{
			Moniker:    v.Moniker,
			Address:    v.OperatorAddress,
			Status:     v.Status,
			Tokens:     formatTokens(v.Tokens, 0),
			Commission: formatCommission(v.CommissionRate),
			Jailed:     v.Jailed,
		})
	}
	return rows
}

func buildMyValidator(list query.ValidatorList, operator string) MyValidator {
	total := sdkmath.ZeroInt()
	var mine *query.ValidatorInfo
	for i, v := range list.Validators {
		if t, ok := sdkmath.NewIntFromString(v.Tokens); ok {
			total = total.Add(t)
		}
		if v.OperatorAddress == operator {
			mine = &list.Validators[i]
		}
	}
	if mine == nil {
		return MyValidator{Registered: false, Address: operator}
	}

	my := MyValidator{
		Registered: true,
		Address:    mine.OperatorAddress,
		Moniker:    mine.Moniker,
		Status:     mine.Status,
		Tokens:     formatTokens(mine.Tokens, 2),
		Commission: formatCommission(mine.CommissionRate),
		Jailed:     mine.Jailed,
	}
	if mineTokens, ok := sdkmath.NewIntFromString(mine.Tokens); ok && total.IsPositive() {
		// Scale to basis points before dividing to keep two decimals.
		bps := mineTokens.MulRaw(10_000).Quo(total)
		my.VotingPct = float64(bps.Int64()) / 10_000
	}
	return my
}

// formatTokens renders a base-unit amount in display units, falling back
// to the raw string when it does not parse.
func formatTokens(baseUnits string, displayDecimals int) string {
	s, err := numeric.FormatTokenAmount(baseUnits, numeric.TokenDecimals, displayDecimals)
	if err != nil {
		return baseUnits
	}
	return s
}

func formatCommission(ratio string) string {
	if ratio == "" {
		return "—"
	}
	pct, err := numeric.RatioToPercent(ratio)
	if err != nil {
		return ratio
	}
	return pct + "%"
}
