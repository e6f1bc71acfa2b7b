// Package tui is the interactive terminal form for generating a plan.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amishk599/wellplan/internal/export"
	"github.com/amishk599/wellplan/internal/form"
	"github.com/amishk599/wellplan/internal/model"
	"github.com/amishk599/wellplan/internal/prompt"
)

// Generator is the part of the planner the form needs.
type Generator interface {
	Preview(req model.PlanRequest) (model.Metrics, string, error)
	Generate(ctx context.Context, req model.PlanRequest) (*model.Plan, error)
}

type viewState int

const (
	viewForm viewState = iota
	viewLoading
	viewResult
)

// planDoneMsg is sent when an async generation completes.
type planDoneMsg struct {
	plan *model.Plan
	err  error
}

type spinnerTickMsg struct{}

type formModel struct {
	gen     Generator
	timeout time.Duration
	outDir  string

	fields []field
	focus  int
	err    string

	view     viewState
	frame    int
	plan     *model.Plan
	viewport viewport.Model
	status   string

	width  int
	height int
}

func newModel(gen Generator, initial []field, timeout time.Duration, outDir string) formModel {
	m := formModel{
		gen:     gen,
		timeout: timeout,
		outDir:  outDir,
		fields:  initial,
		width:   80,
		height:  24,
	}
	m.fields[0].input.Focus()
	return m
}

func (m formModel) Init() tea.Cmd {
	return nil
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.view == viewResult {
			m.viewport.Width = m.width - 4
			m.viewport.Height = m.height - 4
			m.viewport.SetContent(m.renderPlan())
		}
		return m, nil

	case planDoneMsg:
		if msg.err != nil {
			m.view = viewForm
			m.err = "Error generating the plan: " + msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.plan = msg.plan
		m.view = viewResult
		m.status = ""
		m.viewport = viewport.New(m.width-4, m.height-4)
		m.viewport.SetContent(m.renderPlan())
		return m, nil

	case spinnerTickMsg:
		if m.view != viewLoading {
			return m, nil
		}
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, tick()

	case tea.KeyMsg:
		switch m.view {
		case viewResult:
			return m.updateResult(msg)
		case viewLoading:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		return m.updateForm(msg)
	}

	return m, nil
}

func (m formModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.fields[m.focus]
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down":
		return m.moveFocus(1), nil
	case "shift+tab", "up":
		return m.moveFocus(-1), nil
	case "left":
		if f.kind != kindText {
			f.cycle(-1)
			return m, nil
		}
	case "right", " ":
		if f.kind == kindSelect || f.kind == kindToggle {
			f.cycle(1)
			return m, nil
		}
	case "enter":
		if f.kind == kindButton {
			return m.startGenerate()
		}
		return m.moveFocus(1), nil
	}

	if f.kind == kindText {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m formModel) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewForm
		return m, nil
	case "s":
		path, err := m.save()
		if err != nil {
			m.status = "save failed: " + err.Error()
		} else {
			m.status = "saved " + path
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m formModel) moveFocus(delta int) formModel {
	if m.fields[m.focus].kind == kindText {
		m.fields[m.focus].input.Blur()
	}
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	if m.fields[m.focus].kind == kindText {
		m.fields[m.focus].input.Focus()
	}
	return m
}

func (m formModel) startGenerate() (tea.Model, tea.Cmd) {
	req, err := valuesOf(m.fields).Request()
	if err != nil {
		m.err = "Error generating the plan: " + err.Error()
		return m, nil
	}
	m.err = ""
	m.view = viewLoading
	m.frame = 0
	return m, tea.Batch(m.generateCmd(req), tick())
}

func (m formModel) generateCmd(req model.PlanRequest) tea.Cmd {
	gen, timeout := m.gen, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		plan, err := gen.Generate(ctx, req)
		return planDoneMsg{plan: plan, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// save writes the download file for the current plan into outDir.
func (m formModel) save() (string, error) {
	path := filepath.Join(m.outDir, export.Filename(m.plan.Profile.Name, m.plan.CreatedAt))
	if err := os.WriteFile(path, []byte(export.Text(m.plan)), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (m formModel) View() string {
	switch m.view {
	case viewLoading:
		return fmt.Sprintf("\n  %s 🌟 Creating your personalized wellness journey...\n", spinnerFrames[m.frame])
	case viewResult:
		return m.viewResult()
	}
	return m.viewForm()
}

func (m formModel) viewForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🌿 AI-Based Holistic Health & Wellness Planner"))
	b.WriteByte('\n')

	for i, f := range m.fields {
		focused := i == m.focus
		if f.kind == kindButton {
			b.WriteByte('\n')
			if focused {
				b.WriteString(focusedButtonStyle.Render(f.label))
			} else {
				b.WriteString(buttonStyle.Render(f.label))
			}
			b.WriteByte('\n')
			continue
		}

		label := labelStyle
		if focused {
			label = focusedLabelStyle
		}
		b.WriteString(label.Render(f.label))
		switch f.kind {
		case kindText:
			b.WriteString(f.input.View())
		case kindSelect:
			b.WriteString(selectorStyle.Render("‹ " + f.options[f.choice] + " ›"))
		case kindToggle:
			mark := "[ ]"
			if f.on {
				mark = "[x]"
			}
			b.WriteString(selectorStyle.Render(mark))
		}
		b.WriteByte('\n')
	}

	b.WriteString(metricsStyle.Render(m.metricsLine()))
	if m.err != "" {
		b.WriteByte('\n')
		b.WriteString(errorStyle.Render(m.err))
	}
	b.WriteByte('\n')
	b.WriteString(hintStyle.Render("tab/↑/↓ move  ←/→/space change  enter generate  esc quit"))
	return b.String()
}

// metricsLine previews the metrics for the current form state.
func (m formModel) metricsLine() string {
	req, err := valuesOf(m.fields).Request()
	if err != nil {
		return "BMI: –   Daily Calorie Target: –"
	}
	met, _, err := m.gen.Preview(req)
	if err != nil {
		return "BMI: –   Daily Calorie Target: –"
	}
	return fmt.Sprintf("BMI: %.1f (%s)   Daily Calorie Target: %d kcal", met.BMI, met.HealthStatus, met.DailyCalories)
}

func (m formModel) viewResult() string {
	title := titleStyle.Render(fmt.Sprintf("%s for %s", m.plan.Title, m.plan.Profile.Month))
	content := borderStyle.Width(m.width - 2).Render(m.viewport.View())

	statusText := " s save  esc back  ↑/↓ scroll  q quit"
	if m.status != "" {
		statusText = " " + m.status + "  |" + statusText
	}
	return title + "\n" + content + "\n" + statusBarStyle.Width(m.width).Render(statusText)
}

func (m formModel) renderPlan() string {
	var b strings.Builder
	if len(m.plan.MissingDays) > 0 {
		b.WriteString(warningStyle.Render("⚠️ The plan does not mention: " + strings.Join(m.plan.MissingDays, ", ")))
		b.WriteString("\n\n")
	}
	for _, block := range prompt.Blocks(m.plan.Raw) {
		b.WriteString(blockStyle.Render(block))
		b.WriteString("\n\n")
	}
	return b.String()
}

// Run launches the terminal form. initial seeds the fields; outDir is where
// "s" writes the download file.
func Run(gen Generator, initial form.Values, timeout time.Duration, outDir string) error {
	m := newModel(gen, newFields(initial), timeout, outDir)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
