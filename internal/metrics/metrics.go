// Package metrics derives BMI, health status and a daily calorie target from a
// profile. All functions are pure.
package metrics

import (
	"errors"
	"fmt"
	"math"

	"github.com/amishk599/wellplan/internal/model"
)

// ErrInvalidInput is returned when a numeric field is below its minimum.
var ErrInvalidInput = errors.New("invalid input")

// BMI thresholds. Values equal to a threshold are Normal weight.
const (
	underweightBelow = 18.5
	normalUpTo       = 24.9
)

// goalMultipliers maps a fitness goal to the factor applied to BMR.
var goalMultipliers = map[model.FitnessGoal]float64{
	model.GoalWeightLoss:  1.2,
	model.GoalWeightGain:  1.5,
	model.GoalMaintenance: 1.375,
}

// Compute validates the numeric fields of p and returns its derived metrics.
func Compute(p model.Profile) (model.Metrics, error) {
	if p.Age < 1 {
		return model.Metrics{}, fmt.Errorf("%w: age must be at least 1, got %d", ErrInvalidInput, p.Age)
	}
	if !(p.WeightKG >= 1) || math.IsInf(p.WeightKG, 1) {
		return model.Metrics{}, fmt.Errorf("%w: weight must be at least 1 kg, got %g", ErrInvalidInput, p.WeightKG)
	}
	if !(p.HeightCM >= 1) || math.IsInf(p.HeightCM, 1) {
		return model.Metrics{}, fmt.Errorf("%w: height must be at least 1 cm, got %g", ErrInvalidInput, p.HeightCM)
	}

	bmi := BMI(p.WeightKG, p.HeightCM)
	bmr := BMR(p.Age, p.Gender, p.WeightKG, p.HeightCM)
	return model.Metrics{
		BMI:           bmi,
		HealthStatus:  Classify(bmi),
		BMR:           bmr,
		DailyCalories: DailyCalories(bmr, p.FitnessGoal),
	}, nil
}

// BMR is the Mifflin-St Jeor basal metabolic rate. Every gender other than
// Male takes the -161 branch.
func BMR(age int, gender model.Gender, weightKG, heightCM float64) float64 {
	base := 10*weightKG + 6.25*heightCM - 5*float64(age)
	if gender == model.GenderMale {
		return base + 5
	}
	return base - 161
}

// BMI returns weight / height-in-meters squared, rounded to 2 decimals.
func BMI(weightKG, heightCM float64) float64 {
	m := heightCM / 100
	return math.Round(weightKG/(m*m)*100) / 100
}

// Classify maps a BMI to its health status.
func Classify(bmi float64) model.HealthStatus {
	switch {
	case bmi < underweightBelow:
		return model.StatusUnderweight
	case bmi <= normalUpTo:
		return model.StatusNormal
	default:
		return model.StatusOverweight
	}
}

// Multiplier returns the calorie factor for goal. Unknown goals get the
// Maintenance factor.
func Multiplier(goal model.FitnessGoal) float64 {
	if m, ok := goalMultipliers[goal]; ok {
		return m
	}
	return goalMultipliers[model.GoalMaintenance]
}

// DailyCalories returns the rounded calorie target for bmr and goal.
func DailyCalories(bmr float64, goal model.FitnessGoal) int {
	return int(math.Round(bmr * Multiplier(goal)))
}
