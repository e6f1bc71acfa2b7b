package mcp

import (
	"context"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/amishk599/wellplan/internal/export"
	"github.com/amishk599/wellplan/internal/form"
	"github.com/amishk599/wellplan/internal/model"
	"github.com/amishk599/wellplan/internal/prompt"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "compute_metrics",
		Description: "Compute BMI, health status, BMR and the daily calorie target for a profile",
	}, s.handleComputeMetrics)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "render_prompt",
		Description: "Render the weekly plan prompt for a profile without calling the model",
	}, s.handleRenderPrompt)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "generate_plan",
		Description: "Generate a seven-day diet and exercise plan for a profile",
	}, s.handleGeneratePlan)
}

// Tool input/output types

type profileInput struct {
	Name              string  `json:"name,omitempty" jsonschema:"the person's name"`
	Age               int     `json:"age" jsonschema:"age in years"`
	Gender            string  `json:"gender" jsonschema:"Male, Female or Other"`
	WeightKG          float64 `json:"weight_kg" jsonschema:"body weight in kilograms"`
	HeightCM          float64 `json:"height_cm" jsonschema:"height in centimetres"`
	FitnessGoal       string  `json:"fitness_goal" jsonschema:"Weight Loss, Weight Gain or Maintenance"`
	DietaryPreference string  `json:"dietary_preference,omitempty" jsonschema:"Vegetarian, Vegan, Keto, Halal or None"`
	FoodAllergies     string  `json:"food_allergies,omitempty" jsonschema:"foods to avoid"`
	LocalCuisine      string  `json:"local_cuisine,omitempty" jsonschema:"preferred cuisine, e.g. Indian"`
	Month             string  `json:"month,omitempty" jsonschema:"month the plan is for, defaults to the current month"`
	IncludeAyurveda   *bool   `json:"include_ayurveda,omitempty" jsonschema:"add Ayurvedic insights, defaults to true"`
}

type metricsOutput struct {
	BMI           float64 `json:"bmi"`
	HealthStatus  string  `json:"health_status"`
	BMR           float64 `json:"bmr"`
	DailyCalories int     `json:"daily_calories"`
}

type promptOutput struct {
	Template string `json:"template"`
	Prompt   string `json:"prompt"`
}

type planOutput struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Plan        string   `json:"plan"`
	MissingDays []string `json:"missing_days,omitempty"`
	Filename    string   `json:"filename"`
	Download    string   `json:"download"`
}

// request validates in the same way the web form does. Omitted optional
// fields take the form defaults.
func (s *Server) request(in profileInput) (model.PlanRequest, error) {
	v := form.Defaults(s.now())
	v.Name = in.Name
	v.Age = strconv.Itoa(in.Age)
	v.Gender = in.Gender
	v.Weight = strconv.FormatFloat(in.WeightKG, 'f', -1, 64)
	v.Height = strconv.FormatFloat(in.HeightCM, 'f', -1, 64)
	v.Goal = in.FitnessGoal
	if in.DietaryPreference != "" {
		v.Diet = in.DietaryPreference
	}
	v.Allergies = in.FoodAllergies
	v.Cuisine = in.LocalCuisine
	if in.Month != "" {
		v.Month = in.Month
	}
	if in.IncludeAyurveda != nil {
		v.Ayurveda = *in.IncludeAyurveda
	}
	return v.Request()
}

func (s *Server) handleComputeMetrics(ctx context.Context, req *mcp.CallToolRequest, input profileInput) (*mcp.CallToolResult, metricsOutput, error) {
	pr, err := s.request(input)
	if err != nil {
		return nil, metricsOutput{}, err
	}
	m, _, err := s.gen.Preview(pr)
	if err != nil {
		return nil, metricsOutput{}, err
	}
	return nil, metricsOutput{
		BMI:           m.BMI,
		HealthStatus:  string(m.HealthStatus),
		BMR:           m.BMR,
		DailyCalories: m.DailyCalories,
	}, nil
}

func (s *Server) handleRenderPrompt(ctx context.Context, req *mcp.CallToolRequest, input profileInput) (*mcp.CallToolResult, promptOutput, error) {
	pr, err := s.request(input)
	if err != nil {
		return nil, promptOutput{}, err
	}
	_, text, err := s.gen.Preview(pr)
	if err != nil {
		return nil, promptOutput{}, err
	}
	return nil, promptOutput{Template: prompt.Name(pr.IncludeAyurveda), Prompt: text}, nil
}

func (s *Server) handleGeneratePlan(ctx context.Context, req *mcp.CallToolRequest, input profileInput) (*mcp.CallToolResult, planOutput, error) {
	pr, err := s.request(input)
	if err != nil {
		return nil, planOutput{}, err
	}
	plan, err := s.gen.Generate(ctx, pr)
	if err != nil {
		return nil, planOutput{}, err
	}
	return nil, planOutput{
		ID:          plan.ID,
		Title:       plan.Title + " for " + plan.Profile.Month.String(),
		Plan:        plan.Formatted,
		MissingDays: plan.MissingDays,
		Filename:    export.Filename(plan.Profile.Name, plan.CreatedAt),
		Download:    export.Text(plan),
	}, nil
}
