package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"vitalsim/internal/config"
	"vitalsim/internal/logging"
	"vitalsim/internal/sim"
	"vitalsim/internal/web"
)

var (
	monConfigPath string
	monSchemaPath string
	monAddr       string
	monTick       time.Duration
	monLogFile    string
	monPrintOnly  bool
	monTUI        bool
	monLogLevel   string
	monLogFormat  string
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run the virtual wearable and dashboard",
	Long:  "monitor starts the vitals simulator and serves the polling dashboard with a live chart.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; ignore a missing file.
		_ = godotenv.Load()

		log := logging.New(monLogLevel, monLogFormat)

		cfg, err := config.Load(monConfigPath, monSchemaPath)
		if err != nil {
			return err
		}

		monitorID := os.Getenv("MONITOR_ID")
		if monitorID == "" {
			monitorID = "wearable-" + uuid.New().String()
		}

		tickInterval := monTick
		if envTick := os.Getenv("TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return err
			}
			tickInterval = d
		}

		addr := monAddr
		if addr == "" {
			addr = cfg.Server.ListenAddr
		}

		ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), log))
		defer cancel()

		registry := prometheus.NewRegistry()
		writer, cleanup, err := newWriters(cfg, registry, monPrintOnly, monTUI, monLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		simulator := sim.NewSimulator(monitorID, cfg, writer, tickInterval, nil, nil)

		srv := web.NewServer(simulator, registry)
		go func() {
			log.Info("dashboard listening", "addr", addr)
			if err := srv.Start(ctx, addr); err != nil && err != http.ErrServerClosed {
				log.Error("dashboard server failed", "err", err)
				cancel()
			}
		}()

		go simulator.Run(ctx)

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigs:
		case <-ctx.Done():
		}

		cancel()
		log.Info("vitals monitor stopped")
		return nil
	},
}

func init() {
	monitorCmd.Flags().StringVar(&monConfigPath, "config", "", "Path to monitor configuration YAML (defaults apply when empty)")
	monitorCmd.Flags().StringVar(&monSchemaPath, "schema", "", "Path to CUE schema file for config validation")
	monitorCmd.Flags().StringVar(&monAddr, "addr", "", "Dashboard listen address (overrides config)")
	monitorCmd.Flags().DurationVar(&monTick, "tick", time.Second, "Vitals tick interval (e.g. 500ms, 2s)")
	monitorCmd.Flags().StringVar(&monLogFile, "log-file", "", "Path to export vitals rows (JSONL)")
	monitorCmd.Flags().BoolVar(&monPrintOnly, "print-only", false, "Print vitals to STDOUT instead of writing to DB")
	monitorCmd.Flags().BoolVar(&monTUI, "tui", false, "Render vitals in a terminal UI")
	monitorCmd.Flags().StringVar(&monLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	monitorCmd.Flags().StringVar(&monLogFormat, "log-format", "text", "Log format (text, json)")
}
