package dashboard

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AccountStatus component shows the signing account and its spendable balance
type AccountStatus struct {
	BaseComponent
	data  DashboardData
	icons Icons
}

// NewAccountStatus creates a new account status component
func NewAccountStatus(noEmoji bool) *AccountStatus {
	return &AccountStatus{icons: NewIcons(noEmoji)}
}

func (c *AccountStatus) ID() string {
	return "account_status"
}

func (c *AccountStatus) Title() string {
	return "Account"
}

func (c *AccountStatus) MinWidth() int {
	return 30
}

func (c *AccountStatus) MinHeight() int {
	return 7
}

func (c *AccountStatus) Update(msg tea.Msg, data DashboardData) (Component, tea.Cmd) {
	c.data = data
	return c, nil
}

func (c *AccountStatus) View(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}

	inner := w - 4
	if inner < 1 {
		inner = 1
	}

	acct := c.data.Account

	var lines []string
	lines = append(lines, FormatTitle(c.Title(), inner))
	if acct.Address == "" {
		lines = append(lines, "No signing key configured.")
		lines = append(lines, "Run with --from to attach a key.")
	} else {
		balance := acct.Balance
		if balance == "" {
			balance = "—"
		}
		lines = append(lines,
			fmt.Sprintf("Address: %s", truncateWithEllipsis(acct.Address, inner-9)),
			fmt.Sprintf("Balance: %s INJ", FormatFloat(balance)),
		)
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
