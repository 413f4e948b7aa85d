package dashboard

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ValidatorsList component shows the active set ranked by stake
type ValidatorsList struct {
	BaseComponent
	data  DashboardData
	icons Icons
}

// NewValidatorsList creates a new validators list component
func NewValidatorsList(noEmoji bool) *ValidatorsList {
	return &ValidatorsList{icons: NewIcons(noEmoji)}
}

func (c *ValidatorsList) ID() string {
	return "validators_list"
}

func (c *ValidatorsList) Title() string {
	return "Validators"
}

func (c *ValidatorsList) MinWidth() int {
	return 60
}

func (c *ValidatorsList) MinHeight() int {
	return 8
}

func (c *ValidatorsList) Update(msg tea.Msg, data DashboardData) (Component, tea.Cmd) {
	c.data = data
	return c, nil
}

func (c *ValidatorsList) View(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}

	inner := w - 4
	if inner < 1 {
		inner = 1
	}

	// Rows that fit: height minus border (2), title, column header, footer
	visible := h - 5
	if visible < 1 {
		visible = 1
	}
	rows := c.data.Validators
	if len(rows) > visible {
		rows = rows[:visible]
	}

	monikerW := inner - 40
	if monikerW < 10 {
		monikerW = 10
	}

	var lines []string
	lines = append(lines, FormatTitle(c.Title(), inner))
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	lines = append(lines, headerStyle.Render(fmt.Sprintf("%4s  %-*s %14s %8s %8s",
		"#", monikerW, "MONIKER", "STAKE (INJ)", "COMM", "STATUS")))

	ownStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	jailedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	for i, v := range rows {
		status := v.Status
		if v.Jailed {
			status = "JAILED"
		}
		line := fmt.Sprintf("%4d  %-*s %14s %8s %8s",
			i+1,
			monikerW, truncateWithEllipsis(v.Moniker, monikerW),
			truncateWithEllipsis(FormatFloat(v.Tokens), 14),
			v.Commission,
			status)
		switch {
		case v.Address != "" && v.Address == c.data.MyValidator.Address:
			line = ownStyle.Render(line)
		case v.Jailed:
			line = jailedStyle.Render(line)
		}
		lines = append(lines, line)
	}

	if len(rows) == 0 {
		lines = append(lines, "No validators loaded yet.")
	} else if c.data.TotalValidators > len(rows) {
		footStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		lines = append(lines, footStyle.Render(fmt.Sprintf("… %d more (%d total)",
			c.data.TotalValidators-len(rows), c.data.TotalValidators)))
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
