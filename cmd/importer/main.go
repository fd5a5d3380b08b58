package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/loiht2/chess-trainer/config"
	"github.com/loiht2/chess-trainer/importer"
	"github.com/loiht2/chess-trainer/repository"
	"github.com/loiht2/chess-trainer/service"
	"github.com/loiht2/chess-trainer/storage"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "importer <dataset.csv | s3://bucket/key>",
	Short: "Import the Lichess puzzle dataset",
	Long: `Reads a Lichess puzzle CSV (PuzzleId,FEN,Moves,Rating,RatingDeviation,
Popularity,NbPlays,Themes,GameUrl[,...]) and stores every valid row in the
configured puzzle database. Malformed or out-of-range rows are skipped.

Example:
  importer --config config.yaml lichess_db_puzzle.csv
  importer s3://datasets/lichess_db_puzzle.csv`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err = config.NewLogger(level)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runImport,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to YAML config file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every skipped row")
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := cfg.OpenDatabase(logger); err != nil {
		return err
	}
	defer func() {
		if err := cfg.Close(); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}()
	if cfg.DB == nil {
		logger.Warn("In-memory storage selected, imported puzzles are discarded on exit")
	}

	var client storage.ObjectGetter
	if cfg.MinIO.Endpoint != "" {
		mc, err := storage.NewMinIOClient(cfg.MinIO)
		if err != nil {
			return err
		}
		client = mc
	}

	ctx := cmd.Context()
	dataset, err := storage.NewDatasetSource(client, logger).Open(ctx, args[0])
	if err != nil {
		return err
	}
	defer dataset.Close()

	puzzles, trainingSets := repository.New(cfg)
	svc := service.NewPuzzleService(puzzles, trainingSets, logger)

	result, err := importer.New(svc, logger).Run(ctx, dataset)
	if err != nil {
		return fmt.Errorf("import aborted after %d puzzles: %w", result.Imported, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d puzzles\n", result.Imported)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
