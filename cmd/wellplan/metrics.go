package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/amishk599/wellplan/internal/metrics"
	"github.com/amishk599/wellplan/internal/model"
)

var metricsFlags profileFlags

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print BMI, health status and daily calorie target",
	Long: `Compute the health metrics for a profile without calling the model.

EXAMPLES:

  wellplan metrics --age 30 --gender Female --weight 60 --height 165 --goal Maintenance`,
	RunE: runMetrics,
}

func init() {
	metricsFlags.register(metricsCmd)
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, args []string) error {
	req, err := metricsFlags.values.Request()
	if err != nil {
		return err
	}
	m, err := metrics.Compute(req.Profile)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	bold.Println("📊 Your Health Metrics")
	fmt.Printf("  BMI:                  %.1f ", m.BMI)
	statusColor(m.HealthStatus).Printf("(%s)\n", m.HealthStatus)
	fmt.Printf("  BMR:                  %.1f kcal\n", m.BMR)
	fmt.Printf("  Daily Calorie Target: %d kcal (%s)\n", m.DailyCalories, req.Profile.FitnessGoal)
	return nil
}

func statusColor(s model.HealthStatus) *color.Color {
	if s == model.StatusNormal {
		return color.New(color.FgGreen)
	}
	return color.New(color.FgYellow)
}
