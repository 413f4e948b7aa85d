package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Header component shows the console title, version, and last fetch error
type Header struct {
	BaseComponent
	data DashboardData
}

// NewHeader creates a new header component
func NewHeader() *Header {
	return &Header{}
}

func (c *Header) ID() string {
	return "header"
}

func (c *Header) Title() string {
	return "Injective Validator Console"
}

func (c *Header) MinWidth() int {
	return 40
}

func (c *Header) MinHeight() int {
	return 3
}

func (c *Header) Update(msg tea.Msg, data DashboardData) (Component, tea.Cmd) {
	c.data = data
	return c, nil
}

func (c *Header) View(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}

	inner := w - 4 // border (2) + padding (2)
	if inner < 1 {
		inner = 1
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))
	left := titleStyle.Render(strings.ToUpper(c.Title()))
	if c.data.CLIVersion != "" {
		versionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		left = left + " " + versionStyle.Render("v"+strings.TrimPrefix(c.data.CLIVersion, "v"))
	}

	var right string
	if c.data.UpdateInfo.Available && c.data.UpdateInfo.LatestVersion != "" {
		updateStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true)
		right = updateStyle.Render(fmt.Sprintf("update v%s available", c.data.UpdateInfo.LatestVersion))
	} else if !c.data.LastUpdate.IsZero() {
		tsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		right = tsStyle.Render("updated " + c.data.LastUpdate.Format("15:04:05"))
	}

	spacing := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}
	titleLine := left + strings.Repeat(" ", spacing) + right

	lines := []string{titleLine}
	if c.data.Err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		lines = append(lines, errStyle.Render(truncateWithEllipsis("⚠ "+c.data.Err.Error(), inner)))
	}
	content := joinLines(lines, "\n")

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1)

	contentWidth := w - 2
	if contentWidth < 1 {
		contentWidth = 1
	}
	return style.Width(contentWidth).Render(content)
}
