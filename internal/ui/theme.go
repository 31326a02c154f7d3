package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasker-go/internal/config"
	"github.com/nibzard/tasker-go/internal/tasks"
)

// Theme maps priority and completion to colors.
type Theme struct {
	High   string
	Medium string
	Low    string
	Done   string
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	return Theme{
		High:   config.DefaultHighColor,
		Medium: config.DefaultMediumColor,
		Low:    config.DefaultLowColor,
		Done:   config.DefaultDoneColor,
	}
}

// ThemeFromConfig builds a Theme from the [theme] config table.
func ThemeFromConfig(c config.ThemeConfig) Theme {
	return Theme{High: c.High, Medium: c.Medium, Low: c.Low, Done: c.Done}
}

// Style returns the row style for t. It depends only on the task's
// priority and completion.
func (th Theme) Style(t tasks.Task) lipgloss.Style {
	style := lipgloss.NewStyle()
	if t.Completed {
		return style.Foreground(lipgloss.Color(th.Done)).Strikethrough(true)
	}
	switch t.Priority {
	case tasks.PriorityHigh:
		return style.Foreground(lipgloss.Color(th.High)).Bold(true)
	case tasks.PriorityMedium:
		return style.Foreground(lipgloss.Color(th.Medium))
	case tasks.PriorityLow:
		return style.Foreground(lipgloss.Color(th.Low))
	default:
		return style
	}
}

// Render styles text for t.
func (th Theme) Render(t tasks.Task, text string) string {
	return th.Style(t).Render(text)
}
