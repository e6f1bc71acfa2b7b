package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/amishk599/wellplan/internal/model"
)

func sampleProfile() model.Profile {
	return model.Profile{
		Name:              "Meera Rao",
		Age:               31,
		Gender:            model.GenderFemale,
		WeightKG:          62,
		HeightCM:          158,
		FitnessGoal:       model.GoalWeightLoss,
		DietaryPreference: model.DietVegan,
		FoodAllergies:     "peanuts",
		LocalCuisine:      "South Indian",
		Month:             time.July,
	}
}

func sampleMetrics() model.Metrics {
	return model.Metrics{BMI: 24.84, HealthStatus: model.StatusNormal, BMR: 1301.5, DailyCalories: 1562}
}

func TestRender_ContainsEveryValueVerbatim(t *testing.T) {
	for _, ayurveda := range []bool{false, true} {
		got, err := Render(sampleProfile(), sampleMetrics(), ayurveda)
		if err != nil {
			t.Fatalf("Render(ayurveda=%v): %v", ayurveda, err)
		}
		for _, want := range []string{
			"Meera Rao", "31-year-old", "Female", "BMI of 24.84", "(Normal weight)",
			"Fitness Goal: Weight Loss.", "1562 kcal", "Dietary Preference: Vegan.",
			"Food Allergies: peanuts.", "Local Cuisine: South Indian.", "Month: July.",
			"Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday",
			"Day: {weekday}",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("ayurveda=%v: rendered prompt missing %q", ayurveda, want)
			}
		}
	}
}

func TestRender_AyurvedaSwitchSelectsTemplate(t *testing.T) {
	regular, err := Render(sampleProfile(), sampleMetrics(), false)
	if err != nil {
		t.Fatalf("Render regular: %v", err)
	}
	ayurveda, err := Render(sampleProfile(), sampleMetrics(), true)
	if err != nil {
		t.Fatalf("Render ayurveda: %v", err)
	}

	if regular == ayurveda {
		t.Fatal("expected the toggle to change the rendered template")
	}
	if strings.Contains(regular, "Ayurved") || strings.Contains(regular, "Dosha") {
		t.Error("regular prompt should not mention Ayurveda")
	}
	if !strings.Contains(ayurveda, "Ayurvedic Consideration: True") {
		t.Error("ayurveda prompt missing Ayurvedic Consideration line")
	}
	if !strings.HasPrefix(ayurveda, "You are a health expert specialized in both modern medicine and Ayurveda.") {
		t.Errorf("ayurveda prompt has unexpected opening: %.60q", ayurveda)
	}
}

func TestFormatBMI(t *testing.T) {
	tests := map[float64]string{24.22: "24.22", 24.2: "24.2", 25: "25", 18.5: "18.5"}
	for in, want := range tests {
		if got := FormatBMI(in); got != want {
			t.Errorf("FormatBMI(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestNameAndTitle(t *testing.T) {
	if Name(true) != NameAyurveda || Name(false) != NameRegular {
		t.Errorf("Name mapping wrong: %q / %q", Name(true), Name(false))
	}
	if !strings.Contains(Title(true), "Ayurvedic") {
		t.Errorf("Title(true) = %q", Title(true))
	}
	if Title(false) != "💪 Personalized Health Plan" {
		t.Errorf("Title(false) = %q", Title(false))
	}
}
