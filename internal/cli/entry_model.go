package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/glidepath/internal/cli/formatter"
	"github.com/alexanderramin/glidepath/internal/plan"
	"github.com/alexanderramin/glidepath/internal/service"
)

type entryKeyMap struct {
	Commit key.Binding
	Next   key.Binding
	Prev   key.Binding
	Edit   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func defaultEntryKeys() entryKeyMap {
	return entryKeyMap{
		Commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save week")),
		Next:   key.NewBinding(key.WithKeys("down", "tab"), key.WithHelp("↓", "next week")),
		Prev:   key.NewBinding(key.WithKeys("up", "shift+tab"), key.WithHelp("↑", "previous week")),
		Edit:   key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "edit recorded week")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel edit / quit")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// entryModel is the weekly entry screen. Every keystroke is stored as the
// pending text of the selected week and assessed; enter commits it.
type entryModel struct {
	ctx      context.Context
	plan     *service.PlanController
	input    textinput.Model
	keys     entryKeyMap
	week     int
	feedback plan.EntryFeedback
	result   string
	err      error
	quitting bool
}

func newEntryModel(ctx context.Context, ctrl *service.PlanController) entryModel {
	ti := textinput.New()
	ti.Prompt = "kg ❯ "
	ti.Placeholder = "e.g. 84.6"
	ti.CharLimit = 12
	ti.Focus()

	m := entryModel{
		ctx:   ctx,
		plan:  ctrl,
		input: ti,
		keys:  defaultEntryKeys(),
	}
	m.selectWeek(ctrl.Summary().CurrentWeek)
	return m
}

func (m entryModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m entryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Back):
		if m.plan.Editing(m.week) {
			m.plan.CancelEdit(m.week)
			m.selectWeek(m.week)
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Next):
		m.selectWeek(m.week + 1)
		return m, nil
	case key.Matches(keyMsg, m.keys.Prev):
		m.selectWeek(m.week - 1)
		return m, nil
	case key.Matches(keyMsg, m.keys.Edit):
		m.err = m.plan.BeginEdit(m.week)
		if m.err == nil {
			if w, err := m.plan.Week(m.week); err == nil && w.Recorded() {
				m.input.SetValue(fmt.Sprintf("%.1f", *w.ActualWeight))
				m.input.CursorEnd()
				m.assess()
			}
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.Commit):
		m.commit()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.assess()
	return m, cmd
}

// selectWeek moves to week, clamped to the program, and restores its
// pending text.
func (m *entryModel) selectWeek(week int) {
	p := m.plan.Program()
	if p == nil {
		return
	}
	m.week = min(max(week, 1), p.TotalWeeks)
	m.err = nil
	m.feedback = plan.EntryFeedback{}
	raw, _ := m.plan.Pending(m.week)
	m.input.SetValue(raw)
	m.input.CursorEnd()
	if raw != "" {
		m.assess()
	}
}

func (m *entryModel) assess() {
	fb, err := m.plan.SetPendingWeight(m.week, m.input.Value())
	m.feedback = fb
	m.err = err
}

func (m *entryModel) commit() {
	entry, err := m.plan.CommitWeek(m.ctx, m.week)
	if errors.Is(err, service.ErrWeekAlreadyRecorded) {
		m.err = fmt.Errorf("week %d is already recorded, press ctrl+e to edit it", m.week)
		return
	}
	if entry.Week == 0 {
		m.err = err
		return
	}
	m.result = formatter.FormatWeekResult(entry, m.plan.Program().Direction())
	next := m.plan.Summary().CurrentWeek
	m.selectWeek(next)
	m.err = err
}

func (m entryModel) View() string {
	if m.quitting {
		return ""
	}
	p := m.plan.Program()
	if p == nil {
		return noProgramHint + "\n"
	}

	var b strings.Builder
	b.WriteString(formatter.FormatProgramHeader(p))
	b.WriteString("\n\n")

	w, err := m.plan.Week(m.week)
	if err == nil {
		title := fmt.Sprintf("Week %d of %d", w.Week, p.TotalWeeks)
		body := fmt.Sprintf("Target %s  %s", formatter.Kg(w.TargetWeight), formatter.StatusIndicator(w.Status))
		if w.Recorded() {
			body += "\nRecorded " + formatter.Kg(*w.ActualWeight)
		}
		if m.plan.Editing(m.week) {
			body += "\n" + formatter.StyleYellow.Render("editing")
		}
		b.WriteString(formatter.RenderBox(title, body))
		b.WriteString("\n\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	if line := formatter.FormatFeedback(m.feedback); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render(m.err.Error()))
		b.WriteString("\n")
	}
	if m.result != "" {
		b.WriteString("\n")
		b.WriteString(m.result)
		b.WriteString("\n")
	}

	s := m.plan.Summary()
	fmt.Fprintf(&b, "\n%s  %s\n", formatter.RenderProgress(s.PercentProgress, 20),
		formatter.Dim(fmt.Sprintf("motivation %d/100", s.MotivationScore)))
	b.WriteString(formatter.Dim(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m entryModel) helpLine() string {
	bindings := []key.Binding{m.keys.Commit, m.keys.Next, m.keys.Prev, m.keys.Edit, m.keys.Back}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
