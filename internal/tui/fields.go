package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/amishk599/wellplan/internal/form"
	"github.com/amishk599/wellplan/internal/model"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindSelect
	kindToggle
	kindButton
)

// field is one focusable row of the form.
type field struct {
	name    string // form field name
	label   string
	kind    fieldKind
	input   textinput.Model
	options []string
	choice  int
	on      bool
}

func textField(name, label, placeholder, value string, limit int) field {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.SetValue(value)
	return field{name: name, label: label, kind: kindText, input: in}
}

func selectField(name, label string, options []string, value string) field {
	f := field{name: name, label: label, kind: kindSelect, options: options}
	for i, o := range options {
		if o == value {
			f.choice = i
		}
	}
	return f
}

func (f field) value() string {
	switch f.kind {
	case kindText:
		return f.input.Value()
	case kindSelect:
		return f.options[f.choice]
	case kindToggle:
		if f.on {
			return "on"
		}
	}
	return ""
}

func (f *field) cycle(delta int) {
	switch f.kind {
	case kindSelect:
		f.choice = (f.choice + delta + len(f.options)) % len(f.options)
	case kindToggle:
		f.on = !f.on
	}
}

func names[T ~string](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = string(it)
	}
	return out
}

func monthNames() []string {
	out := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, m.String())
	}
	return out
}

// newFields builds the form rows from v in display order.
func newFields(v form.Values) []field {
	return []field{
		textField(form.FieldName, "Name", "your name", v.Name, 60),
		textField(form.FieldAge, "Age", "25", v.Age, 3),
		selectField(form.FieldGender, "Gender", names(model.Genders), v.Gender),
		textField(form.FieldWeight, "Weight (kg)", "70", v.Weight, 6),
		textField(form.FieldHeight, "Height (cm)", "170", v.Height, 6),
		selectField(form.FieldGoal, "Fitness Goal", names(model.FitnessGoals), v.Goal),
		selectField(form.FieldDiet, "Dietary Preference", names(model.DietaryPreferences), v.Diet),
		textField(form.FieldAllergies, "Food Allergies", "if any", v.Allergies, form.MaxTextLen),
		textField(form.FieldCuisine, "Local Cuisine", "e.g. Indian, Italian, Chinese", v.Cuisine, form.MaxTextLen),
		selectField(form.FieldMonth, "Month", monthNames(), v.Month),
		{name: form.FieldAyurveda, label: "Ayurvedic insights", kind: kindToggle, on: v.Ayurveda},
		{label: "Generate Personalized Plan", kind: kindButton},
	}
}

// valuesOf collects the current form state.
func valuesOf(fields []field) form.Values {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		if f.name != "" {
			m[f.name] = f.value()
		}
	}
	return form.FromMap(m)
}
