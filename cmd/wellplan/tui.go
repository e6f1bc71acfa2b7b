package main

import (
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/wellplan/internal/form"
	"github.com/amishk599/wellplan/internal/planner"
	"github.com/amishk599/wellplan/internal/tui"
)

var (
	tuiOffline bool
	tuiOutDir  string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Fill in the planner form in the terminal",
	Long: `Open an interactive terminal form, generate a plan and browse the result.

Keys: tab/shift+tab move between fields, left/right change a choice,
enter on "Generate Plan" submits, s saves the plan file, q quits.`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiOffline, "offline", false, "answer with a fixed offline plan instead of calling the model")
	tuiCmd.Flags().StringVar(&tuiOutDir, "out-dir", ".", "directory for saved plan files")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Log lines would tear the alt screen.
	logger := newLogger(io.Discard, debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	planStore, closeStore, err := setupStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	n := setupNotifier(cfg, &http.Client{Timeout: 30 * time.Second}, logger)
	provider := setupProviderOrUnavailable(cfg, tuiOffline, logger)
	p := planner.New(provider, planStore, n, logger)

	return tui.Run(p, form.Defaults(time.Now()), generationTimeout(cfg), tuiOutDir)
}
