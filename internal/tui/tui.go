// Package tui is a terminal front end for the trainer built on bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lehmann314159/wordtrainer/internal/i18n"
	"github.com/lehmann314159/wordtrainer/internal/services"
)

// Model adapts a Controller to the bubbletea update loop
type Model struct {
	ctx  context.Context
	ctrl *services.Controller
	tr   *i18n.I18n

	cursor int // selected dashboard day, 0-based
	err    error
}

// New creates the model. ctrl must already be started.
func New(ctx context.Context, ctrl *services.Controller, tr *i18n.I18n) *Model {
	return &Model{ctx: ctx, ctrl: ctrl, tr: tr}
}

// Run blocks until the user quits
func Run(ctx context.Context, ctrl *services.Controller, tr *i18n.I18n) error {
	p := tea.NewProgram(New(ctx, ctrl, tr), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		m.dispatch(services.Command{Type: services.CmdGoHome})
		return m, nil
	}

	switch m.ctrl.View() {
	case services.ViewDashboard:
		m.updateDashboard(key)
	case services.ViewStudy:
		m.updateStudy(key)
	case services.ViewTest:
		m.updateTest(key)
	case services.ViewCompletion:
		if key.String() == "enter" {
			m.dispatch(services.Command{Type: services.CmdGoHome})
		}
	}
	return m, nil
}

func (m *Model) updateDashboard(key tea.KeyMsg) {
	days := m.ctrl.State().Days

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(days)-1 {
			m.cursor++
		}
	case "enter":
		m.dispatch(services.Command{Type: services.CmdSelectDay, Day: m.cursor + 1})
	}
}

func (m *Model) updateStudy(key tea.KeyMsg) {
	switch key.String() {
	case "left", "h":
		m.dispatch(services.Command{Type: services.CmdPrevCard})
	case "right", "l":
		m.dispatch(services.Command{Type: services.CmdNextCard})
	case "enter":
		m.dispatch(services.Command{Type: services.CmdStartTest})
	}
}

func (m *Model) updateTest(key tea.KeyMsg) {
	switch key.String() {
	case " ":
		m.dispatch(services.Command{Type: services.CmdRevealAnswer})
	case "y":
		m.dispatch(services.Command{Type: services.CmdSubmitResult, Remembered: true})
	case "n":
		m.dispatch(services.Command{Type: services.CmdSubmitResult, Remembered: false})
	}
}

// dispatch applies cmd and keeps the error for the next render
func (m *Model) dispatch(cmd services.Command) {
	m.err = m.ctrl.Dispatch(m.ctx, cmd)
}

func (m *Model) View() string {
	state := m.ctrl.State()

	var b strings.Builder
	b.WriteString(styleHeader.Render(m.tr.Get("app.title")))
	b.WriteString("  ")
	b.WriteString(styleSubtle.Render(m.tr.Get("dashboard.total_learned", state.TotalLearned, state.TotalWords)))
	b.WriteString("\n\n")

	var help string
	switch state.View {
	case services.ViewDashboard:
		m.viewDashboard(&b, state)
		help = "tui.help.dashboard"
	case services.ViewStudy:
		m.viewStudy(&b, state.Study)
		help = "tui.help.study"
	case services.ViewTest:
		m.viewTest(&b, state.Test)
		help = "tui.help.test"
	case services.ViewCompletion:
		m.viewCompletion(&b, state.Completion)
		help = "tui.help.completion"
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(styleError.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleSubtle.Render(m.tr.Get(help)))
	return b.String()
}

func (m *Model) viewDashboard(b *strings.Builder, state *services.Snapshot) {
	for i, day := range state.Days {
		cursor := " "
		if m.cursor == i {
			cursor = styleCursor.Render(">")
		}

		line := fmt.Sprintf("%s %-8s %3d/%-3d", cursor, m.tr.Get("dashboard.day", day.Day), day.Learned, day.Range.Len())
		if day.Completed {
			line += " " + styleCompleted.Render(m.tr.Get("dashboard.completed"))
		}

		if m.cursor == i {
			b.WriteString(styleHighlight.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
}

func (m *Model) viewStudy(b *strings.Builder, sv *services.StudyView) {
	fmt.Fprintf(b, "%s  %s\n", m.tr.Get("dashboard.day", sv.Day), m.tr.Get("study.position", sv.Position, sv.Total))
	if sv.Card != nil {
		b.WriteString(styleCard.Render(m.renderBack(sv.Card)))
		b.WriteString("\n")
	}
	if sv.CanStartTest {
		b.WriteString(styleCompleted.Render(m.tr.Get("study.start_test")))
		b.WriteString("\n")
	}
}

func (m *Model) viewTest(b *strings.Builder, tv *services.TestView) {
	fmt.Fprintf(b, "%s  %s\n", m.tr.Get("dashboard.day", tv.Day), m.tr.Get("test.remaining", tv.Remaining))
	if tv.Card == nil {
		return
	}
	if tv.Revealed {
		b.WriteString(styleCard.Render(m.renderBack(tv.Card)))
	} else {
		b.WriteString(styleCard.Render(m.renderFront(tv.Card)))
	}
	b.WriteString("\n")
}

func (m *Model) viewCompletion(b *strings.Builder, cv *services.CompletionView) {
	b.WriteString(styleCompleted.Render(m.tr.Get("completion.title", cv.Day)))
	b.WriteString("\n")
	b.WriteString(m.tr.Get("completion.body", cv.Words))
	b.WriteString("\n")
}

func (m *Model) renderFront(card *services.Card) string {
	var b strings.Builder
	b.WriteString(styleWord.Render(card.Word))
	b.WriteString("\n")
	b.WriteString(m.renderPronunciations(card.FrontPronunciations))
	return b.String()
}

func (m *Model) renderBack(card *services.Card) string {
	var b strings.Builder
	b.WriteString(styleWord.Render(card.Word))
	b.WriteString("\n")
	b.WriteString(m.renderPronunciations(card.Pronunciations))
	b.WriteString("\n")
	b.WriteString(styleSection.Render(m.tr.Get("card.meaning")))
	b.WriteString("\n")
	b.WriteString(card.Meaning)
	b.WriteString("\n")

	for _, s := range card.Sections {
		b.WriteString("\n")
		b.WriteString(styleSection.Render(m.tr.Get("card." + s.Key)))
		b.WriteString("\n")
		if s.Empty {
			b.WriteString(styleSubtle.Render(m.tr.Get("card.none")))
			b.WriteString("\n")
			continue
		}
		for _, item := range s.Items {
			b.WriteString("• " + item.Text)
			if item.Translation != "" {
				b.WriteString("  " + styleSubtle.Render(item.Translation))
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderPronunciations(ps []services.Pronunciation) string {
	parts := make([]string, 0, len(ps))
	for _, p := range ps {
		parts = append(parts, fmt.Sprintf("%s [%s]", m.tr.Get("region."+p.Region), p.Text))
	}
	return styleSubtle.Render(strings.Join(parts, "  "))
}
