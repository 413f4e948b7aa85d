package dashboard

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ChainStatus component shows chain identity and block height
type ChainStatus struct {
	BaseComponent
	data  DashboardData
	icons Icons
}

// NewChainStatus creates a new chain status component
func NewChainStatus(noEmoji bool) *ChainStatus {
	return &ChainStatus{icons: NewIcons(noEmoji)}
}

func (c *ChainStatus) ID() string {
	return "chain_status"
}

func (c *ChainStatus) Title() string {
	return "Chain"
}

func (c *ChainStatus) MinWidth() int {
	return 30
}

func (c *ChainStatus) MinHeight() int {
	return 7
}

func (c *ChainStatus) Update(msg tea.Msg, data DashboardData) (Component, tea.Cmd) {
	c.data = data
	return c, nil
}

func (c *ChainStatus) View(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}

	inner := w - 4
	if inner < 1 {
		inner = 1
	}

	st := c.data.Chain

	network := st.Network
	if network == "" {
		network = "—"
	}
	height := "—"
	if st.Height > 0 {
		height = HumanInt(st.Height)
	}

	var sync string
	switch {
	case st.Network == "":
		sync = c.icons.Unknown + " unknown"
	case st.CatchingUp:
		sync = c.icons.Warn + " catching up"
	default:
		sync = c.icons.OK + " in sync"
	}

	moniker := st.Moniker
	if moniker == "" {
		moniker = "—"
	}

	lines := []string{
		FormatTitle(c.Title(), inner),
		fmt.Sprintf("Network: %s", truncateWithEllipsis(network, inner-9)),
		fmt.Sprintf("Height:  %s", height),
		fmt.Sprintf("Sync:    %s", sync),
		fmt.Sprintf("Node:    %s", truncateWithEllipsis(moniker, inner-9)),
	}
	content := joinLines(lines, "\n")

	if c.CheckCacheWithSize(content, w, h) {
		return c.GetCached()
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1)

	contentWidth := w - 2
	if contentWidth < 1 {
		contentWidth = 1
	}
	rendered := style.Width(contentWidth).Render(content)
	c.UpdateCache(rendered)
	return rendered
}
