package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amishk599/wellplan/internal/form"
	"github.com/amishk599/wellplan/internal/metrics"
	"github.com/amishk599/wellplan/internal/model"
)

type fakeGenerator struct {
	err  error
	reqs []model.PlanRequest
}

func (g *fakeGenerator) Preview(req model.PlanRequest) (model.Metrics, string, error) {
	m, err := metrics.Compute(req.Profile)
	return m, "", err
}

func (g *fakeGenerator) Generate(_ context.Context, req model.PlanRequest) (*model.Plan, error) {
	g.reqs = append(g.reqs, req)
	if g.err != nil {
		return nil, g.err
	}
	m, _ := metrics.Compute(req.Profile)
	return &model.Plan{
		ID:          "p1",
		Profile:     req.Profile,
		Metrics:     m,
		Title:       "💪 Personalized Health Plan",
		Raw:         "Day: Monday\nOats\n\nDay: Tuesday",
		MissingDays: []string{"Wednesday"},
		CreatedAt:   time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	}, nil
}

func defaults() form.Values {
	v := form.Defaults(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	v.Name = "Asha"
	return v
}

func newTestModel(gen Generator, dir string) formModel {
	return newModel(gen, newFields(defaults()), time.Second, dir)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m formModel, msgs ...tea.Msg) (formModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(formModel)
	}
	return m, cmd
}

// focusOn tabs until the field with the given label has focus.
func focusOn(t *testing.T, m formModel, label string) formModel {
	t.Helper()
	for i := 0; i < len(m.fields); i++ {
		if m.fields[m.focus].label == label {
			return m
		}
		m, _ = send(t, m, key("tab"))
	}
	t.Fatalf("field %q not found", label)
	return m
}

func TestFieldsRoundTrip(t *testing.T) {
	v := defaults()
	if got := valuesOf(newFields(v)); got != v {
		t.Errorf("valuesOf(newFields(v)) = %+v, want %+v", got, v)
	}
}

func TestSelectorsAndToggle(t *testing.T) {
	m := newTestModel(&fakeGenerator{}, t.TempDir())

	m = focusOn(t, m, "Gender")
	m, _ = send(t, m, key("right"))
	m = focusOn(t, m, "Ayurvedic insights")
	m, _ = send(t, m, key("right"))
	m = focusOn(t, m, "Month")
	m, _ = send(t, m, key("left"))

	v := valuesOf(m.fields)
	if v.Gender != "Female" {
		t.Errorf("Gender = %q, want Female", v.Gender)
	}
	if v.Ayurveda {
		t.Error("Ayurveda should be toggled off")
	}
	if v.Month != "February" {
		t.Errorf("Month = %q, want February", v.Month)
	}
}

func TestTypingIntoTextField(t *testing.T) {
	m := newTestModel(&fakeGenerator{}, t.TempDir())
	m, _ = send(t, m, key(" Rao"))
	if got := valuesOf(m.fields).Name; got != "Asha Rao" {
		t.Errorf("Name = %q, want %q", got, "Asha Rao")
	}
}

func TestMetricsLine(t *testing.T) {
	m := newTestModel(&fakeGenerator{}, t.TempDir())
	if got := m.metricsLine(); got != "BMI: 24.2 (Normal weight)   Daily Calorie Target: 1971 kcal" {
		t.Errorf("metricsLine = %q", got)
	}
}

func TestGenerateSaveAndBack(t *testing.T) {
	dir := t.TempDir()
	gen := &fakeGenerator{}
	m := newTestModel(gen, dir)

	m = focusOn(t, m, "Generate Personalized Plan")
	m, cmd := send(t, m, key("enter"))
	if m.view != viewLoading || cmd == nil {
		t.Fatalf("expected loading view with a command, got view=%v", m.view)
	}

	m, _ = send(t, m, m.generateCmd(model.PlanRequest{Profile: mustProfile(t, m)})())
	if m.view != viewResult {
		t.Fatalf("view = %v, want result", m.view)
	}
	if !strings.Contains(m.renderPlan(), "does not mention: Wednesday") {
		t.Error("result should warn about missing weekdays")
	}

	m, _ = send(t, m, key("s"))
	if !strings.HasPrefix(m.status, "saved ") {
		t.Fatalf("status = %q", m.status)
	}
	data, err := os.ReadFile(filepath.Join(dir, "wellness_plan_Asha_20260309.txt"))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if !strings.Contains(string(data), "Generated for: Asha") {
		t.Errorf("saved file content:\n%s", data)
	}

	m, _ = send(t, m, key("esc"))
	if m.view != viewForm {
		t.Errorf("view = %v, want form after esc", m.view)
	}
	if valuesOf(m.fields).Name != "Asha" {
		t.Error("form state should survive a round trip to the result view")
	}
}

func TestGenerateErrorShownInline(t *testing.T) {
	m := newTestModel(&fakeGenerator{}, t.TempDir())
	m.view = viewLoading
	m, _ = send(t, m, planDoneMsg{err: errors.New("model request: upstream down")})

	if m.view != viewForm {
		t.Fatalf("view = %v, want form", m.view)
	}
	if !strings.Contains(m.View(), "Error generating the plan: model request: upstream down") {
		t.Errorf("error not rendered:\n%s", m.View())
	}
}

func TestInvalidInputStaysOnForm(t *testing.T) {
	gen := &fakeGenerator{}
	m := newTestModel(gen, t.TempDir())
	m = focusOn(t, m, "Age")
	m.fields[m.focus].input.SetValue("0")

	m = focusOn(t, m, "Generate Personalized Plan")
	m, cmd := send(t, m, key("enter"))
	if m.view != viewForm || cmd != nil {
		t.Errorf("expected to stay on form without a command")
	}
	if !strings.Contains(m.err, "age:") {
		t.Errorf("err = %q, want age error", m.err)
	}
	if len(gen.reqs) != 0 {
		t.Error("generator should not be called")
	}
}

func mustProfile(t *testing.T, m formModel) model.Profile {
	t.Helper()
	req, err := valuesOf(m.fields).Request()
	if err != nil {
		t.Fatal(err)
	}
	return req.Profile
}
