package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/amishk599/wellplan/internal/export"
	"github.com/amishk599/wellplan/internal/model"
	"github.com/amishk599/wellplan/internal/planner"
)

var (
	planFlags   profileFlags
	planOut     string
	planOffline bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a plan in the terminal",
	Long: `Generate a weekly diet and exercise plan from flags and print it.

EXAMPLES:

  wellplan plan --name "Asha Rao" --gender Female --weight 62 --height 158
  wellplan plan --goal "Weight Gain" --diet Vegan --ayurveda=false --out
  wellplan plan --offline --out plans/`,
	RunE: runPlan,
}

func init() {
	planFlags.register(planCmd)
	planCmd.Flags().StringVarP(&planOut, "out", "o", "", "write the download file to this path or directory")
	planCmd.Flags().Lookup("out").NoOptDefVal = "."
	planCmd.Flags().BoolVar(&planOffline, "offline", false, "answer with a fixed offline plan instead of calling the model")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	// stdout carries the plan; logs go to stderr.
	logger := newLogger(os.Stderr, debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	req, err := planFlags.values.Request()
	if err != nil {
		return err
	}

	planStore, closeStore, err := setupStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	provider, err := setupProvider(cfg, planOffline, logger)
	if err != nil {
		return err
	}
	n := setupNotifier(cfg, &http.Client{Timeout: 30 * time.Second}, logger)
	p := planner.New(provider, planStore, n, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, generationTimeout(cfg))
	defer cancel()

	stopSpinner := startSpinner(os.Stderr, "🌟 Creating your personalized wellness journey...")
	plan, err := p.Generate(ctx, req)
	stopSpinner()
	if err != nil {
		color.Red("Error generating the plan: %v", err)
		closeStore()
		os.Exit(1)
	}

	printPlan(plan)

	if planOut != "" {
		path, err := writePlanFile(planOut, plan)
		if err != nil {
			return err
		}
		color.Green("✓ Saved %s", path)
	}
	return nil
}

func printPlan(plan *model.Plan) {
	bold := color.New(color.Bold)
	bold.Printf("%s for %s\n\n", plan.Title, plan.Profile.Month)
	fmt.Printf("BMI: %.1f (%s)   Daily Calorie Target: %d kcal\n\n", plan.Metrics.BMI, plan.Metrics.HealthStatus, plan.Metrics.DailyCalories)
	fmt.Print(plan.Formatted)
	if len(plan.MissingDays) > 0 {
		color.Yellow("⚠ The plan does not mention: %v", plan.MissingDays)
	}
}

// writePlanFile writes the download text to out. When out is a directory the
// file gets its default name.
func writePlanFile(out string, plan *model.Plan) (string, error) {
	path := out
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		path = filepath.Join(out, export.Filename(plan.Profile.Name, plan.CreatedAt))
	}
	if err := os.WriteFile(path, []byte(export.Text(plan)), 0o644); err != nil {
		return "", fmt.Errorf("write plan: %w", err)
	}
	return path, nil
}
