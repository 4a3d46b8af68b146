package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"

	"github.com/ternarybob/shopcheck/internal/common"
	"github.com/ternarybob/shopcheck/internal/healthcheck"
	"github.com/ternarybob/shopcheck/internal/report"
	"github.com/ternarybob/shopcheck/internal/runner"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles  configPaths
	planFile     = flag.String("suites", "", "Suite plan file (YAML), built-in plan when empty")
	tags         = flag.String("tags", "", "Comma-separated suite tags to run")
	shards       = flag.Int("shards", 0, "Shard count override for every suite")
	shardIndex   = flag.Int("shard-index", -1, "Run only this zero-based shard")
	watchSpec    = flag.String("watch", "", "Cron expression for repeated runs")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("Shopcheck version %s\n", common.GetVersion())
		os.Exit(0)
	}

	logger := log.Logger{
		Level:  log.InfoLevel,
		Writer: &log.ConsoleWriter{ColorOutput: true},
	}

	// Startup sequence:
	// 1. Load config (defaults -> files -> env)
	// 2. Initialize the suite logger
	// 3. Print banner
	if len(configFiles) == 0 {
		if _, err := os.Stat("shopcheck.toml"); err == nil {
			configFiles = append(configFiles, "shopcheck.toml")
		}
	}

	config, err := common.LoadConfig(configFiles...)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	common.InitLogger(config)
	common.PrintBanner()

	logger.Info().
		Str("environment", config.Environment).
		Str("base_url", config.BaseURL).
		Str("output_dir", config.OutputDir).
		Msg("Runner configuration loaded")

	plan := runner.DefaultPlan()
	if *planFile != "" {
		plan, err = runner.LoadPlan(*planFile)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *planFile).Msg("Failed to load suite plan")
		}
	}

	if *watchSpec == "" {
		os.Exit(runOnce(config, plan, logger))
	}

	// Watch mode: run on a cron schedule until interrupted. A run failure
	// logs and waits for the next tick instead of exiting.
	scheduler := cron.New()
	_, err = scheduler.AddFunc(*watchSpec, func() {
		if code := runOnce(config, plan, logger); code != 0 {
			logger.Warn().Int("exit_code", code).Msg("Scheduled run failed")
		}
	})
	if err != nil {
		logger.Fatal().Err(err).Str("spec", *watchSpec).Msg("Invalid watch schedule")
	}

	logger.Info().Str("spec", *watchSpec).Msg("Watch mode started")
	scheduler.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx := scheduler.Stop()
	<-ctx.Done()
	logger.Info().Msg("Watch mode stopped")
}

// runOnce performs one complete run: health check, suites, reports.
// Returns the process exit code.
func runOnce(config *common.Config, plan *runner.Plan, logger log.Logger) int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	health := healthcheck.Run(ctx, config)
	if !health.Healthy {
		if config.FailOnHealthCheck {
			logger.Error().Str("detail", health.Detail).Msg("Target unhealthy, aborting run")
			return 1
		}
		logger.Warn().Str("detail", health.Detail).Msg("Target unhealthy, continuing anyway")
	} else {
		logger.Info().Int("status", health.StatusCode).Msg("Target healthy")
	}

	runID := common.NewRunID()
	runDir := filepath.Join(config.OutputDir, runID)

	opts := runner.Options{
		OutputDir:  runDir,
		Shards:     *shards,
		ShardIndex: *shardIndex,
		Tags:       splitTags(*tags),
		Env: []string{
			fmt.Sprintf("SHOPCHECK_RUN_ID=%s", runID),
		},
		Logger: logger,
	}

	run, err := runner.Execute(ctx, plan, runID, opts)
	if err != nil {
		logger.Error().Err(err).Msg("Runner failed")
		return 1
	}
	run.Environment = config.Environment
	run.BaseURL = config.BaseURL
	run.Artifacts = report.Artifacts{
		ScreenshotMode: config.Artifacts.ScreenshotMode,
		VideoMode:      config.Artifacts.VideoMode,
		TraceMode:      config.Artifacts.TraceMode,
	}

	for _, write := range []func(*report.Run, string) error{
		report.WriteJSON, report.WriteJUnit, report.WriteHTML,
	} {
		if err := write(run, runDir); err != nil {
			logger.Warn().Err(err).Msg("Failed to write report artifact")
		}
	}

	report.PrintSummary(os.Stdout, run)
	logger.Info().Str("run_dir", runDir).Msg("Run artifacts written")

	if !run.Success() {
		return 1
	}
	return 0
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
