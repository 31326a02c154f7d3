package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasker-go/internal/config"
	"github.com/nibzard/tasker-go/internal/tasks"
)

func TestThemeStyle(t *testing.T) {
	th := DefaultTheme()

	tests := []struct {
		name       string
		task       tasks.Task
		wantColor  string
		wantBold   bool
		wantStrike bool
	}{
		{"high", tasks.Task{Priority: tasks.PriorityHigh}, th.High, true, false},
		{"medium", tasks.Task{Priority: tasks.PriorityMedium}, th.Medium, false, false},
		{"low", tasks.Task{Priority: tasks.PriorityLow}, th.Low, false, false},
		{"done overrides priority", tasks.Task{Priority: tasks.PriorityHigh, Completed: true}, th.Done, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := th.Style(tt.task)
			if got := style.GetForeground(); got != lipgloss.Color(tt.wantColor) {
				t.Errorf("foreground: got %v, want %v", got, tt.wantColor)
			}
			if style.GetBold() != tt.wantBold {
				t.Errorf("bold: got %v, want %v", style.GetBold(), tt.wantBold)
			}
			if style.GetStrikethrough() != tt.wantStrike {
				t.Errorf("strikethrough: got %v, want %v", style.GetStrikethrough(), tt.wantStrike)
			}
		})
	}
}

func TestThemeStyleIgnoresOtherFields(t *testing.T) {
	th := DefaultTheme()
	a := tasks.Task{ID: 1, Description: "a", Priority: tasks.PriorityLow, CreatedAt: "2024-01-01 00:00:00"}
	b := tasks.Task{ID: 9, Description: "b", Priority: tasks.PriorityLow, CreatedAt: "2025-01-01 00:00:00"}
	if th.Style(a).GetForeground() != th.Style(b).GetForeground() {
		t.Error("style should depend only on priority and completion")
	}
}

func TestThemeFromConfig(t *testing.T) {
	th := ThemeFromConfig(config.ThemeConfig{High: "#111111", Medium: "#222222", Low: "#333333", Done: "#444444"})
	if th.High != "#111111" || th.Done != "#444444" {
		t.Errorf("unexpected theme %+v", th)
	}
	if got := th.Style(tasks.Task{Priority: tasks.PriorityMedium}).GetForeground(); got != lipgloss.Color("#222222") {
		t.Errorf("medium foreground: got %v", got)
	}
}
