package model

import (
	"context"
	"time"
)

// Gender selects the BMR formula branch.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders lists the selectable genders in form order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// FitnessGoal selects the calorie multiplier.
type FitnessGoal string

const (
	GoalWeightLoss  FitnessGoal = "Weight Loss"
	GoalWeightGain  FitnessGoal = "Weight Gain"
	GoalMaintenance FitnessGoal = "Maintenance"
)

// FitnessGoals lists the selectable goals in form order.
var FitnessGoals = []FitnessGoal{GoalWeightLoss, GoalWeightGain, GoalMaintenance}

// DietaryPreference is passed through into the prompt text only.
type DietaryPreference string

const (
	DietVegetarian DietaryPreference = "Vegetarian"
	DietVegan      DietaryPreference = "Vegan"
	DietKeto       DietaryPreference = "Keto"
	DietHalal      DietaryPreference = "Halal"
	DietNone       DietaryPreference = "None"
)

// DietaryPreferences lists the selectable diets in form order.
var DietaryPreferences = []DietaryPreference{DietVegetarian, DietVegan, DietKeto, DietHalal, DietNone}

// HealthStatus is the BMI classification.
type HealthStatus string

const (
	StatusUnderweight HealthStatus = "Underweight"
	StatusNormal      HealthStatus = "Normal weight"
	StatusOverweight  HealthStatus = "Overweight"
)

// Profile is the form submission. It lives for one request and is never mutated
// after parsing.
type Profile struct {
	Name              string
	Age               int
	Gender            Gender
	WeightKG          float64
	HeightCM          float64
	FitnessGoal       FitnessGoal
	DietaryPreference DietaryPreference
	FoodAllergies     string
	LocalCuisine      string
	Month             time.Month
}

// Metrics are the values derived from a Profile.
type Metrics struct {
	BMI           float64      `json:"bmi"`
	HealthStatus  HealthStatus `json:"health_status"`
	BMR           float64      `json:"bmr"`
	DailyCalories int          `json:"daily_calories"`
}

// PlanRequest is one "Generate Plan" action.
type PlanRequest struct {
	Profile         Profile
	IncludeAyurveda bool
}

// Plan is a generated wellness plan.
type Plan struct {
	ID              string
	Profile         Profile
	Metrics         Metrics
	IncludeAyurveda bool
	Title           string
	Prompt          string
	Raw             string    // model output as returned
	Formatted       string    // Raw split into bold blocks
	MissingDays     []string  // weekdays absent from Raw
	CreatedAt       time.Time // our clock
}

// PlanSummary is a lightweight archive listing entry.
type PlanSummary struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	FitnessGoal     FitnessGoal `json:"fitness_goal"`
	DailyCalories   int         `json:"daily_calories"`
	IncludeAyurveda bool        `json:"include_ayurveda"`
	CreatedAt       time.Time   `json:"created_at"`
}

// PlanStore archives generated plans.
type PlanStore interface {
	Save(ctx context.Context, plan *Plan) error
	Get(ctx context.Context, id string) (*Plan, error)
	List(ctx context.Context, limit int) ([]PlanSummary, error)
	Cleanup(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Notifier announces newly generated plans.
type Notifier interface {
	Notify(plan *Plan) error
}
