package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ehiller1/dementia/internal/alert"
	"github.com/ehiller1/dementia/internal/analyze"
	"github.com/ehiller1/dementia/internal/api"
	"github.com/ehiller1/dementia/internal/notify"
	"github.com/ehiller1/dementia/internal/safety"
)

var servePort int

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve exposes the analyzer and safety tools over HTTP:

  POST /api/v1/training/analyze   analyze a transcript
  POST /api/v1/safety/assess      classify one message (stateless)
  POST /api/v1/safety/monitor     monitor a live message (creates alerts)
  GET  /api/v1/alerts             list alerts
  GET  /api/v1/reports            list stored reports
  GET  /api/v1/philosophy         the ideal session script
  GET  /health

Alerts and reports are persisted in SQLite. If notify.nats_url is
configured, created alerts are also published to NATS.

Example:
  memorycare serve
  memorycare serve --port 9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "HTTP port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	store, err := alert.NewStore(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open alert store: %w", err)
	}
	defer store.Close()

	var notifier safety.Notifier
	if cfg.Notify.NATSURL != "" {
		natsNotifier, err := notify.NewNATSNotifier(cfg.Notify, logger)
		if err != nil {
			return fmt.Errorf("connect notifier: %w", err)
		}
		defer natsNotifier.Close()
		notifier = natsNotifier
		logger.Info("alert notifications enabled", "subject", cfg.Notify.Subject)
	}

	monitor := safety.NewMonitor(cfg.Safety, store, notifier)

	analyzer, err := analyze.NewAnalyzer(cfg)
	if err != nil {
		return err
	}
	if analyzer.CoachingEnabled() {
		logger.Info("LLM coaching enabled", "provider", cfg.LLM.Provider)
	}

	server := api.NewServer(cfg, analyzer, monitor, store, logger)
	return server.Start()
}
