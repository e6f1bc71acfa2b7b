package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/amishk599/wellplan/internal/export"
	"github.com/amishk599/wellplan/internal/model"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived plans",
	Long:  "List the most recent plans from the archive. Requires archive.enabled in the config.",
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print an archived plan as its download text",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of plans to list")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

// openArchive returns nil when the archive is disabled.
func openArchive() (model.PlanStore, func() error, error) {
	logger := newLogger(io.Discard, debug)
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Archive.Enabled {
		return nil, nil, nil
	}
	return setupStore(cfg, logger)
}

func runHistory(cmd *cobra.Command, args []string) error {
	planStore, closeStore, err := openArchive()
	if err != nil {
		return err
	}
	if planStore == nil {
		fmt.Println("The plan archive is disabled. Set archive.enabled: true in the config.")
		return nil
	}
	defer closeStore()

	plans, err := planStore.List(context.Background(), historyLimit)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		fmt.Println("No plans archived yet.")
		return nil
	}

	faint := color.New(color.Faint)
	for _, p := range plans {
		name := p.Name
		if name == "" {
			name = "(no name)"
		}
		ayur := ""
		if p.IncludeAyurveda {
			ayur = " 🌺"
		}
		fmt.Printf("%s  %s, %s, %d kcal%s\n", p.ID, name, p.FitnessGoal, p.DailyCalories, ayur)
		faint.Printf("    %s\n", p.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	planStore, closeStore, err := openArchive()
	if err != nil {
		return err
	}
	if planStore == nil {
		return errors.New("the plan archive is disabled")
	}
	defer closeStore()

	plan, err := planStore.Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Print(export.Text(plan))
	return nil
}
