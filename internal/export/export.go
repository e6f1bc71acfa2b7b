// Package export renders a generated plan as the downloadable text file.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amishk599/wellplan/internal/model"
	"github.com/amishk599/wellplan/internal/prompt"
)

// ContentType is the MIME type served for downloads.
const ContentType = "text/plain; charset=utf-8"

const footer = "Generated by AI Health & Wellness Planner"

// Filename returns wellness_plan_<name>_<yyyymmdd>.txt with spaces in name
// replaced by underscores.
func Filename(name string, at time.Time) string {
	return fmt.Sprintf("wellness_plan_%s_%s.txt", strings.ReplaceAll(name, " ", "_"), at.Format("20060102"))
}

// Text renders plan in the download layout. The date line uses plan.CreatedAt.
// Formatted is derived from Raw when empty, which is the case for archived plans.
func Text(plan *model.Plan) string {
	p, m := plan.Profile, plan.Metrics

	allergies := p.FoodAllergies
	if strings.TrimSpace(allergies) == "" {
		allergies = "None"
	}
	formatted := plan.Formatted
	if formatted == "" {
		formatted = prompt.Format(plan.Raw)
	}
	title := plan.Title
	if title == "" {
		title = prompt.Title(plan.IncludeAyurveda)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s for %s\n", title, p.Month)
	fmt.Fprintf(&b, "Generated for: %s\n", p.Name)
	fmt.Fprintf(&b, "Date: %s\n\n", plan.CreatedAt.Format("2006-01-02"))

	b.WriteString("Personal Details:\n---------------\n")
	fmt.Fprintf(&b, "Age: %d\n", p.Age)
	fmt.Fprintf(&b, "Gender: %s\n", p.Gender)
	fmt.Fprintf(&b, "Weight: %s kg\n", strconv.FormatFloat(p.WeightKG, 'f', -1, 64))
	fmt.Fprintf(&b, "Height: %s cm\n", strconv.FormatFloat(p.HeightCM, 'f', -1, 64))
	fmt.Fprintf(&b, "BMI: %.1f (%s)\n", m.BMI, m.HealthStatus)
	fmt.Fprintf(&b, "Daily Calorie Target: %d kcal\n\n", m.DailyCalories)

	b.WriteString("Preferences:\n-----------\n")
	fmt.Fprintf(&b, "Fitness Goal: %s\n", p.FitnessGoal)
	fmt.Fprintf(&b, "Dietary Preference: %s\n", p.DietaryPreference)
	fmt.Fprintf(&b, "Food Allergies: %s\n", allergies)
	fmt.Fprintf(&b, "Local Cuisine: %s\n\n", p.LocalCuisine)

	b.WriteString(formatted)
	b.WriteString("\n\n")
	b.WriteString(footer)
	b.WriteString("\n")
	return b.String()
}
