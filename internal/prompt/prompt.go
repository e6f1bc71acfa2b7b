// Package prompt renders the plan-generation prompt and reformats the model's
// answer for display.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/amishk599/wellplan/internal/model"
)

//go:embed prompts/regular.md
var regularPromptRaw string

//go:embed prompts/ayurveda.md
var ayurvedaPromptRaw string

// Parsed once at package init; reused on every Render call.
var (
	RegularTemplate  = template.Must(template.New("regular").Option("missingkey=error").Parse(regularPromptRaw))
	AyurvedaTemplate = template.Must(template.New("ayurveda").Option("missingkey=error").Parse(ayurvedaPromptRaw))
)

// Template names, as reported by Name.
const (
	NameRegular  = "regular"
	NameAyurveda = "ayurveda"
)

// Weekdays are the sections the prompt asks the model to produce.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Vars is the flat set of placeholder values substituted into a template.
// Every value is preformatted so the rendered text contains it verbatim.
type Vars struct {
	Name              string
	Age               string
	Gender            string
	BMI               string
	HealthStatus      string
	FitnessGoal       string
	DailyCalories     string
	DietaryPreference string
	FoodAllergies     string
	LocalCuisine      string
	Month             string
	Weekdays          string
}

// NewVars flattens a profile and its metrics into template values.
func NewVars(p model.Profile, m model.Metrics) Vars {
	return Vars{
		Name:              p.Name,
		Age:               strconv.Itoa(p.Age),
		Gender:            string(p.Gender),
		BMI:               FormatBMI(m.BMI),
		HealthStatus:      string(m.HealthStatus),
		FitnessGoal:       string(p.FitnessGoal),
		DailyCalories:     strconv.Itoa(m.DailyCalories),
		DietaryPreference: string(p.DietaryPreference),
		FoodAllergies:     p.FoodAllergies,
		LocalCuisine:      p.LocalCuisine,
		Month:             p.Month.String(),
		Weekdays:          strings.Join(Weekdays, ", "),
	}
}

// FormatBMI prints a BMI with the shortest exact representation (24.22, 24.2, 25).
func FormatBMI(bmi float64) string {
	return strconv.FormatFloat(bmi, 'f', -1, 64)
}

// Select returns the template for the Ayurveda switch.
func Select(includeAyurveda bool) *template.Template {
	if includeAyurveda {
		return AyurvedaTemplate
	}
	return RegularTemplate
}

// Name returns the template name for the Ayurveda switch.
func Name(includeAyurveda bool) string {
	if includeAyurveda {
		return NameAyurveda
	}
	return NameRegular
}

// Title is the heading shown above a generated plan.
func Title(includeAyurveda bool) string {
	if includeAyurveda {
		return "🌺 Integrated Ayurvedic & Modern Wellness Plan"
	}
	return "💪 Personalized Health Plan"
}

// Render fills the selected template with the profile and its metrics.
func Render(p model.Profile, m model.Metrics, includeAyurveda bool) (string, error) {
	var buf bytes.Buffer
	if err := Select(includeAyurveda).Execute(&buf, NewVars(p, m)); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", Name(includeAyurveda), err)
	}
	return buf.String(), nil
}
