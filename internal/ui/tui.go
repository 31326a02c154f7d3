// Package ui provides the terminal presentation of the task store.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasker-go/internal/tasks"
)

// Messages shown when an action is rejected before reaching the store.
const (
	msgEmptyDescription = "Please enter a task description."
	msgNoSelection      = "Select a task first."
)

type mode int

const (
	modeList mode = iota
	modeAdd
)

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeWarning
	noticeError
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e67e22"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#c0392b")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Run starts the interactive UI on the given store.
func Run(ctx context.Context, store *tasks.Store, theme Theme) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	program := tea.NewProgram(NewModel(store, theme), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Model is the bubbletea model over a task store. Every store call happens
// inside Update, so the store is only touched from one goroutine.
type Model struct {
	store    *tasks.Store
	theme    Theme
	mode     mode
	cursor   int
	input    []rune
	priority tasks.Priority
	notice   string
	kind     noticeKind
	showHelp bool
}

// NewModel creates a model in list mode.
func NewModel(store *tasks.Store, theme Theme) *Model {
	return &Model{
		store:    store,
		theme:    theme,
		priority: tasks.DefaultPriority,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.mode == modeAdd {
		m.updateAdd(key)
		return m, nil
	}
	return m, m.updateList(key)
}

func (m *Model) updateList(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.store.Len()-1 {
			m.cursor++
		}
	case "a":
		m.mode = modeAdd
		m.input = m.input[:0]
		m.priority = tasks.DefaultPriority
		m.clearNotice()
	case "c", "enter":
		m.completeSelected()
	case "d", "x":
		m.deleteSelected()
	case "r", "f5":
		if err := m.store.Load(); err != nil {
			m.setError(err)
			return nil
		}
		m.clampCursor()
		m.setNotice("Reloaded.")
	case "?", "h":
		m.showHelp = !m.showHelp
	}
	return nil
}

func (m *Model) updateAdd(key tea.KeyMsg) {
	switch key.Type {
	case tea.KeyEsc:
		m.mode = modeList
		m.clearNotice()
	case tea.KeyEnter:
		m.submit()
	case tea.KeyTab:
		m.priority = m.priority.Next()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	}
}

func (m *Model) submit() {
	description := strings.TrimSpace(string(m.input))
	if description == "" {
		m.setWarning(msgEmptyDescription)
		return
	}
	task, err := m.store.Add(description, m.priority)
	if err != nil {
		m.setError(err)
		return
	}
	m.mode = modeList
	m.input = m.input[:0]
	m.cursor = m.store.Len() - 1
	m.setNotice(fmt.Sprintf("Added task %d.", task.ID))
}

func (m *Model) completeSelected() {
	task, ok := m.selected()
	if !ok {
		m.setWarning(msgNoSelection)
		return
	}
	found, err := m.store.Complete(task.ID)
	switch {
	case err != nil:
		m.setError(err)
	case !found:
		m.setWarning(fmt.Sprintf("Task %d not found.", task.ID))
	default:
		m.setNotice(fmt.Sprintf("Completed task %d.", task.ID))
	}
}

func (m *Model) deleteSelected() {
	task, ok := m.selected()
	if !ok {
		m.setWarning(msgNoSelection)
		return
	}
	if err := m.store.Delete(task.ID); err != nil {
		m.setError(err)
		return
	}
	m.clampCursor()
	m.setNotice(fmt.Sprintf("Deleted task %d.", task.ID))
}

func (m *Model) selected() (tasks.Task, bool) {
	list := m.store.Tasks()
	if len(list) == 0 || m.cursor < 0 || m.cursor >= len(list) {
		return tasks.Task{}, false
	}
	return list[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= m.store.Len() {
		m.cursor = m.store.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setNotice(s string) {
	m.notice, m.kind = s, noticeInfo
}

func (m *Model) setWarning(s string) {
	m.notice, m.kind = s, noticeWarning
}

func (m *Model) setError(err error) {
	m.notice, m.kind = err.Error(), noticeError
}

func (m *Model) clearNotice() {
	m.notice, m.kind = "", noticeInfo
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Tasks") + "\n")
	b.WriteString(dimStyle.Render(m.store.Path()) + "\n\n")

	if m.showHelp {
		writeHelp(&b)
	}

	list := m.store.Tasks()
	if len(list) == 0 {
		b.WriteString("  No tasks yet. Press a to add one.\n")
	}
	for i, t := range list {
		marker := "  "
		if i == m.cursor && m.mode == modeList {
			marker = "> "
		}
		b.WriteString(marker + m.theme.Render(t, FormatRow(t)) + "\n")
	}
	b.WriteString("\n")

	if m.mode == modeAdd {
		b.WriteString("New task\n")
		b.WriteString(fmt.Sprintf("  Description: %s_\n", string(m.input)))
		b.WriteString(fmt.Sprintf("  Priority:    %s %s\n\n",
			m.theme.Render(tasks.Task{Priority: m.priority}, m.priority.Label()),
			dimStyle.Render("(tab to change)")))
	}

	switch {
	case m.notice == "":
	case m.kind == noticeError:
		b.WriteString(errorStyle.Render("Error: "+m.notice) + "\n\n")
	case m.kind == noticeWarning:
		b.WriteString(warningStyle.Render(m.notice) + "\n\n")
	default:
		b.WriteString(m.notice + "\n\n")
	}

	if m.mode == modeAdd {
		b.WriteString(dimStyle.Render("enter save | esc cancel | tab priority") + "\n")
	} else {
		b.WriteString(dimStyle.Render("a add | c complete | d delete | ? help | q quit") + "\n")
	}
	return b.String()
}

// FormatRow renders the columns shown for a task, without styling.
func FormatRow(t tasks.Task) string {
	return fmt.Sprintf("%3d  %-40s  %-6s  %s", t.ID, t.Description, t.Priority.Label(), t.Status())
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up/k, down/j  Move selection\n")
	b.WriteString("  a             Add a task\n")
	b.WriteString("  c, enter      Mark selected task as completed\n")
	b.WriteString("  d, x          Delete selected task\n")
	b.WriteString("  r, F5         Reload from disk\n")
	b.WriteString("  h, ?          Toggle this help screen\n")
	b.WriteString("  q, ctrl+c     Quit\n\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
