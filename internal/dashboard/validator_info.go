package dashboard

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ValidatorInfo component shows the operator's own validator details
type ValidatorInfo struct {
	BaseComponent
	data  DashboardData
	icons Icons
}

// NewValidatorInfo creates a new validator info component
func NewValidatorInfo(noEmoji bool) *ValidatorInfo {
	return &ValidatorInfo{icons: NewIcons(noEmoji)}
}

func (c *ValidatorInfo) ID() string {
	return "validator_info"
}

func (c *ValidatorInfo) Title() string {
	return "My Validator"
}

func (c *ValidatorInfo) MinWidth() int {
	return 40
}

func (c *ValidatorInfo) MinHeight() int {
	return 8
}

func (c *ValidatorInfo) Update(msg tea.Msg, data DashboardData) (Component, tea.Cmd) {
	c.data = data
	return c, nil
}

func (c *ValidatorInfo) View(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}

	inner := w - 4
	if inner < 1 {
		inner = 1
	}

	val := c.data.MyValidator

	var lines []string
	lines = append(lines, FormatTitle(c.Title(), inner))

	switch {
	case val.Address == "":
		lines = append(lines, "No validator address configured.")
	case !val.Registered:
		lines = append(lines, fmt.Sprintf("%s Not registered on %s", c.icons.Warn, c.data.Chain.Network))
		lines = append(lines, "Run `validator-console register` to create it.")
	default:
		status := val.Status
		if val.Jailed {
			status = c.icons.Err + " JAILED (" + status + ")"
		} else if status == "BONDED" {
			status = c.icons.OK + " " + status
		} else {
			status = c.icons.Warn + " " + status
		}

		commission := val.Commission
		if commission == "" {
			commission = "—"
		}

		lines = append(lines,
			fmt.Sprintf("Moniker:    %s", truncateWithEllipsis(val.Moniker, inner-12)),
			fmt.Sprintf("Operator:   %s", truncateWithEllipsis(val.Address, inner-12)),
			fmt.Sprintf("Status:     %s", status),
			fmt.Sprintf("Stake:      %s INJ", FormatFloat(val.Tokens)),
			fmt.Sprintf("Commission: %s", commission),
			fmt.Sprintf("Power:      %s of bonded stake", Percent(val.VotingPct)),
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
