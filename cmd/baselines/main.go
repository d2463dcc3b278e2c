// Command baselines trains and evaluates the most-frequent-class and
// TF-IDF + linear SVM baselines on a tab-separated tweet corpus.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"baselines/internal/config"
	"baselines/internal/corpus"
	"baselines/internal/models"
	"baselines/internal/repository"
	"baselines/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by all commands of one invocation
type app struct {
	configPath string
	fine       bool
	fromDB     bool
	storeRuns  bool

	cfg    *config.Config
	logger *zap.Logger

	// buildLogger creates the logger once the config is known
	buildLogger func(cfg *config.Config) (*zap.Logger, error)
}

func newApp(logger *zap.Logger) *app {
	return &app{
		logger:      logger,
		buildLogger: developmentLogger,
	}
}

func developmentLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid logging.level: %w", err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = level
	return zc.Build()
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "baselines <corpus.tsv>",
		Short: "Most-frequent-class and TF-IDF + linear SVM baselines for offensive tweets",
		Long: `Reads a tab-separated corpus (tweet, coarse label, fine label), trains both
baselines on the first 80% of the lines and prints accuracy, per-label
precision/recall/F-score, macro F-score and a confusion matrix for each
baseline on the remaining 20%.

With --from-db the corpus stored by "baselines import" is used instead of a file.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if a.fromDB {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: a.evaluate,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to YAML config (defaults apply when omitted)")
	root.PersistentFlags().BoolVar(&a.fine, "fine", false, "use the 4-class fine labels instead of OTHER/OFFENSE")
	root.PersistentFlags().BoolVar(&a.fromDB, "from-db", false, "read the corpus from the database instead of a file")
	root.Flags().BoolVar(&a.storeRuns, "store-runs", false, "save a summary of each baseline's scores to the database")

	root.AddCommand(
		a.importCommand(),
		a.statsCommand(),
		a.runsCommand(),
		a.serveCommand(),
		a.classifyCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.fine {
		cfg.Labels.Mode = string(models.Fine)
	}
	a.cfg = cfg

	logger, err := a.buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *app) evaluate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var db *sqlx.DB
	if a.fromDB || a.storeRuns {
		var err error
		db, err = repository.Open(a.cfg, a.logger)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	texts, labels, err := a.loadCorpus(ctx, db, args)
	if err != nil {
		return err
	}

	var store service.RunStore
	if a.storeRuns {
		store = repository.NewRunRepository(db, a.logger)
	}

	_, err = service.NewRunner(a.cfg, store, a.logger).Run(ctx, texts, labels, cmd.OutOrStdout())
	return err
}

// loadCorpus reads texts and labels from the file in args or, with
// --from-db, from the stored dataset
func (a *app) loadCorpus(ctx context.Context, db *sqlx.DB, args []string) ([]string, []string, error) {
	mode := a.cfg.LabelMode()
	a.logger.Info("Reading in data...", zap.String("label_mode", string(mode)))

	if !a.fromDB {
		texts, labels, err := corpus.ReadCorpus(args[0], mode)
		if err != nil {
			return nil, nil, err
		}
		a.logger.Info("Corpus loaded", zap.String("path", args[0]), zap.Int("records", len(texts)))
		return texts, labels, nil
	}

	records, err := repository.NewDatasetRepository(db, a.logger).GetRecords(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, errors.New("dataset is empty, run \"baselines import\" first")
	}
	texts, labels := models.Columns(records, mode)
	a.logger.Info("Dataset loaded", zap.Int("records", len(texts)))
	return texts, labels, nil
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	gin.SetMode(gin.ReleaseMode)

	a := newApp(logger)
	if err := a.rootCommand().Execute(); err != nil {
		a.logger.Error("Failed to run", zap.Error(err))
		_ = a.logger.Sync()
		os.Exit(1)
	}
}
