package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ekaya-inc/sparkify-etl/pkg/config"
	"github.com/ekaya-inc/sparkify-etl/pkg/database"
	"github.com/ekaya-inc/sparkify-etl/pkg/logging"
	"github.com/ekaya-inc/sparkify-etl/pkg/repositories"
	"github.com/ekaya-inc/sparkify-etl/pkg/services"
	"github.com/ekaya-inc/sparkify-etl/pkg/sql"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file (optional)")
	reset := flag.Bool("reset", false, "Drop and recreate all tables before loading")
	songDir := flag.String("song-data", "", "Root of the song-metadata tree (overrides config)")
	logDir := flag.String("log-data", "", "Root of the activity-log tree (overrides config)")
	printConfig := flag.Bool("print-config", false, "Print the effective configuration and exit")
	flag.Parse()

	// A .env file is optional; real environment variables still win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to read .env: %v\n", err)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *reset {
		cfg.ResetSchema = true
	}
	if *songDir != "" {
		cfg.Data.SongDir = *songDir
	}
	if *logDir != "" {
		cfg.Data.LogDir = *logDir
	}

	if *printConfig {
		out, err := cfg.Dump()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		fmt.Print(out)
		return 0
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting sparkify-etl",
		zap.String("version", Version),
		zap.String("env", cfg.Env),
		zap.String("song_data", cfg.Data.SongDir),
		zap.String("log_data", cfg.Data.LogDir),
		zap.Bool("reset_schema", cfg.ResetSchema))

	if err := sql.ValidateCatalog(); err != nil {
		logger.Error("Statement catalog is invalid", zap.Error(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connStr := cfg.Database.ConnectionString()
	logger.Info("Connecting to database", zap.String("dsn", logging.SanitizeConnectionString(connStr)))

	db, err := database.Connect(ctx, &database.Config{
		URL:            connStr,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})
	if err != nil {
		logger.Error("Failed to connect to database", zap.String("error", logging.SanitizeError(err)))
		return 1
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			logger.Warn("Failed to close database connection", zap.Error(err))
		}
	}()

	if cfg.ResetSchema {
		logger.Info("Resetting schema")
		err = db.ResetSchema(ctx)
	} else {
		err = db.EnsureSchema(ctx)
	}
	if err != nil {
		logger.Error("Failed to prepare schema", zap.Error(err))
		return 1
	}

	songRepo := repositories.NewSongRepository()
	activityRepo := repositories.NewActivityRepository()

	etl := services.NewETLService(
		services.NewFileWalker(db, logger),
		services.NewSongFileProcessor(songRepo, logger),
		services.NewLogFileProcessor(songRepo, activityRepo, logger),
		services.Sources{SongDir: cfg.Data.SongDir, LogDir: cfg.Data.LogDir},
		logger,
	)

	summary, err := etl.Run(ctx)
	if summary != nil {
		totals := summary.Totals()
		logger.Info("Run summary",
			zap.String("run_id", summary.RunID.String()),
			zap.Int("passes", len(summary.Passes)),
			zap.Int("songs", totals.Songs),
			zap.Int("artists", totals.Artists),
			zap.Int("users", totals.Users),
			zap.Int("times", totals.Times),
			zap.Int("songplays", totals.Songplays),
			zap.Int("lookup_hits", totals.LookupHits),
			zap.Int("lookup_misses", totals.LookupMisses))
	}
	if err != nil {
		logger.Error("Load failed", zap.Error(err))
		return 1
	}

	logger.Info("Load complete")
	return 0
}
