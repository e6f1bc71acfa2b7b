// Package form turns submitted field values into a validated plan request.
// The web handlers and the terminal form share it so both front ends apply
// the same defaults and limits.
package form

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/amishk599/wellplan/internal/model"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid form")

// Field names shared by the HTML form, the terminal form and the MCP tools.
const (
	FieldName      = "name"
	FieldAge       = "age"
	FieldGender    = "gender"
	FieldWeight    = "weight"
	FieldHeight    = "height"
	FieldGoal      = "fitness_goal"
	FieldDiet      = "dietary_preference"
	FieldAllergies = "food_allergies"
	FieldCuisine   = "local_cuisine"
	FieldMonth     = "month"
	FieldAyurveda  = "ayurveda"
)

// Values holds the submitted fields as text so a failed submission can be
// shown back to the user unchanged.
type Values struct {
	Name      string
	Age       string
	Gender    string
	Weight    string
	Height    string
	Goal      string
	Diet      string
	Allergies string
	Cuisine   string
	Month     string
	Ayurveda  bool
}

// Defaults returns the initial form state.
func Defaults(now time.Time) Values {
	return Values{
		Age:      "25",
		Gender:   string(model.GenderMale),
		Weight:   "70",
		Height:   "170",
		Goal:     string(model.GoalWeightLoss),
		Diet:     string(model.DietVegetarian),
		Month:    now.Month().String(),
		Ayurveda: true,
	}
}

// FromMap reads fields by name. The Ayurveda toggle is on for "on", "true"
// or "1".
func FromMap(fields map[string]string) Values {
	return Values{
		Name:      fields[FieldName],
		Age:       fields[FieldAge],
		Gender:    fields[FieldGender],
		Weight:    fields[FieldWeight],
		Height:    fields[FieldHeight],
		Goal:      fields[FieldGoal],
		Diet:      fields[FieldDiet],
		Allergies: fields[FieldAllergies],
		Cuisine:   fields[FieldCuisine],
		Month:     fields[FieldMonth],
		Ayurveda:  truthy(fields[FieldAyurveda]),
	}
}

// FromURL reads a posted HTML form. An absent checkbox means false.
func FromURL(v url.Values) Values {
	m := make(map[string]string, len(v))
	for k := range v {
		m[k] = v.Get(k)
	}
	return FromMap(m)
}

// FromRequest is the inverse of Request.
func FromRequest(req model.PlanRequest) Values {
	p := req.Profile
	return Values{
		Name:      p.Name,
		Age:       strconv.Itoa(p.Age),
		Gender:    string(p.Gender),
		Weight:    strconv.FormatFloat(p.WeightKG, 'f', -1, 64),
		Height:    strconv.FormatFloat(p.HeightCM, 'f', -1, 64),
		Goal:      string(p.FitnessGoal),
		Diet:      string(p.DietaryPreference),
		Allergies: p.FoodAllergies,
		Cuisine:   p.LocalCuisine,
		Month:     p.Month.String(),
		Ayurveda:  req.IncludeAyurveda,
	}
}

// Request validates v and builds a plan request. All field errors are
// reported together.
func (v Values) Request() (model.PlanRequest, error) {
	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: "+format, append([]any{field}, args...)...))
	}

	p := model.Profile{
		Name:          Sanitize(v.Name),
		FoodAllergies: Sanitize(v.Allergies),
		LocalCuisine:  Sanitize(v.Cuisine),
	}

	age, err := strconv.Atoi(strings.TrimSpace(v.Age))
	switch {
	case err != nil:
		fail(FieldAge, "must be a whole number")
	case age < 1:
		fail(FieldAge, "must be at least 1")
	}
	p.Age = age

	p.WeightKG = parseMeasure(v.Weight, FieldWeight, fail)
	p.HeightCM = parseMeasure(v.Height, FieldHeight, fail)

	var ok bool
	if p.Gender, ok = match(v.Gender, model.Genders); !ok {
		fail(FieldGender, "unknown value %q", v.Gender)
	}
	if p.FitnessGoal, ok = match(v.Goal, model.FitnessGoals); !ok {
		fail(FieldGoal, "unknown value %q", v.Goal)
	}
	if p.DietaryPreference, ok = match(v.Diet, model.DietaryPreferences); !ok {
		fail(FieldDiet, "unknown value %q", v.Diet)
	}
	if p.Month, ok = ParseMonth(v.Month); !ok {
		fail(FieldMonth, "unknown value %q", v.Month)
	}

	if len(errs) > 0 {
		return model.PlanRequest{}, fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return model.PlanRequest{Profile: p, IncludeAyurveda: v.Ayurveda}, nil
}

// ParseMonth accepts a full or three-letter English month name in any case,
// or a number from 1 to 12.
func ParseMonth(s string) (time.Month, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		name := m.String()
		if strings.EqualFold(s, name) || (len(s) == 3 && strings.EqualFold(s, name[:3])) {
			return m, true
		}
	}
	return 0, false
}

// parseMeasure accepts finite decimals of at least 1. ParseFloat also takes
// "NaN" and "Inf", which are not measurements.
func parseMeasure(s, field string, fail func(string, string, ...any)) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	switch {
	case err != nil || math.IsNaN(f) || math.IsInf(f, 0):
		fail(field, "must be a number")
	case f < 1:
		fail(field, "must be at least 1")
	}
	return f
}

func match[T ~string](s string, options []T) (T, bool) {
	s = strings.TrimSpace(s)
	for _, o := range options {
		if strings.EqualFold(s, string(o)) {
			return o, true
		}
	}
	return "", false
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
