package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	wellmcp "github.com/amishk599/wellplan/internal/mcp"
	"github.com/amishk599/wellplan/internal/planner"
)

var mcpOffline bool

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the planner as an MCP server over stdio",
	Long: `Expose compute_metrics, render_prompt and generate_plan as MCP tools so that
an MCP client can use the planner. Logs are written to stderr.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().BoolVar(&mcpOffline, "offline", false, "answer with a fixed offline plan instead of calling the model")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	// stdout is the protocol stream.
	logger := newLogger(os.Stderr, debug)

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
	provider := setupProviderOrUnavailable(cfg, mcpOffline, logger)
	p := planner.New(provider, planStore, n, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("mcp server starting", "version", version)
	return wellmcp.NewServer(p, planStore, version).Serve(ctx)
}
