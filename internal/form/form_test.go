package form

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/amishk599/wellplan/internal/model"
)

func TestDefaults(t *testing.T) {
	v := Defaults(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))
	req, err := v.Request()
	if err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	p := req.Profile
	if p.Age != 25 || p.Gender != model.GenderMale || p.WeightKG != 70 || p.HeightCM != 170 {
		t.Errorf("unexpected default profile: %+v", p)
	}
	if p.FitnessGoal != model.GoalWeightLoss || p.DietaryPreference != model.DietVegetarian {
		t.Errorf("unexpected default selections: %+v", p)
	}
	if p.Month != time.October {
		t.Errorf("Month = %v, want October", p.Month)
	}
	if !req.IncludeAyurveda {
		t.Error("Ayurveda should default to on")
	}
}

func TestFromURL(t *testing.T) {
	v := FromURL(url.Values{
		FieldName:   {"  Asha   Rao "},
		FieldAge:    {"30"},
		FieldGender: {"female"},
		FieldWeight: {"62.5"},
		FieldHeight: {"158"},
		FieldGoal:   {"maintenance"},
		FieldDiet:   {"Vegan"},
		FieldMonth:  {"mar"},
	})
	req, err := v.Request()
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	p := req.Profile
	if p.Name != "Asha Rao" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Gender != model.GenderFemale || p.FitnessGoal != model.GoalMaintenance || p.Month != time.March {
		t.Errorf("selections not canonicalised: %+v", p)
	}
	if p.WeightKG != 62.5 {
		t.Errorf("WeightKG = %v", p.WeightKG)
	}
	if req.IncludeAyurveda {
		t.Error("absent checkbox should mean false")
	}
}

func TestRequest_CollectsAllErrors(t *testing.T) {
	v := Values{Age: "0", Gender: "robot", Weight: "abc", Height: "0.5", Goal: "x", Diet: "Paleo", Month: "13"}
	_, err := v.Request()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	for _, field := range []string{FieldAge, FieldGender, FieldWeight, FieldHeight, FieldGoal, FieldDiet, FieldMonth} {
		if !strings.Contains(err.Error(), field+":") {
			t.Errorf("error does not mention %s: %v", field, err)
		}
	}
}

func TestRequest_RejectsNonFiniteMeasures(t *testing.T) {
	for _, in := range []string{"NaN", "nan", "Inf", "-Inf", "+Infinity"} {
		t.Run(in, func(t *testing.T) {
			v := Defaults(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
			v.Weight = in
			v.Height = in
			_, err := v.Request()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
			for _, field := range []string{FieldWeight, FieldHeight} {
				if !strings.Contains(err.Error(), field+": must be a number") {
					t.Errorf("error does not reject %s: %v", field, err)
				}
			}
		})
	}
}

func TestRequest_NoUpperBounds(t *testing.T) {
	v := Defaults(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	v.Age = "130"
	v.Weight = "650"
	v.Height = "320"
	if _, err := v.Request(); err != nil {
		t.Fatalf("large values should validate: %v", err)
	}
}

func TestFromRequestRoundTrip(t *testing.T) {
	v := Defaults(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	v.Name = "Asha"
	v.Allergies = "peanuts"
	req, err := v.Request()
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if got := FromRequest(req); got != v {
		t.Errorf("FromRequest = %+v, want %+v", got, v)
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in   string
		want time.Month
		ok   bool
	}{
		{"January", time.January, true},
		{"dec", time.December, true},
		{" 7 ", time.July, true},
		{"0", 0, false},
		{"Smarch", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseMonth(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMonth(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", "Indian", "Indian"},
		{"tags stripped", "<b>Italian</b> <script>x</script>", "Italian x"},
		{"entities", "Tom &amp; Jerry", "Tom & Jerry"},
		{"whitespace", "  nuts,\n\tdairy  ", "nuts, dairy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	long := strings.Repeat("a", MaxTextLen+50)
	if got := Sanitize(long); len(got) != MaxTextLen {
		t.Errorf("len = %d, want %d", len(got), MaxTextLen)
	}
}
