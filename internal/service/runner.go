package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"baselines/internal/config"
	"baselines/internal/corpus"
	"baselines/internal/evaluation"
	"baselines/internal/models"
	"baselines/internal/pipeline"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RunStore persists evaluation run summaries
type RunStore interface {
	SaveRun(ctx context.Context, run *models.EvaluationRun) error
}

// BaselineResult is the evaluation of one baseline on the test split
type BaselineResult struct {
	Baseline string
	Title    string
	Report   *evaluation.Report
}

// RunResult collects everything one run produced
type RunResult struct {
	RunID     string
	LabelMode models.LabelMode
	TrainSize int
	TestSize  int
	Baselines []BaselineResult
}

// Runner trains both baselines on the training split, scores them on the
// test split and writes their reports
type Runner struct {
	cfg    *config.Config
	store  RunStore
	logger *zap.Logger
}

// NewRunner creates a runner. store may be nil, in which case nothing is persisted.
func NewRunner(cfg *config.Config, store RunStore, logger *zap.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		store:  store,
		logger: logger,
	}
}

type baseline struct {
	title    string
	pipeline *pipeline.Pipeline
}

func (r *Runner) baselines() []baseline {
	return []baseline{
		{title: "most frequent class", pipeline: pipeline.NewFrequencyBaseline()},
		{title: "svm", pipeline: pipeline.NewSVMBaseline(r.cfg.SVMOptions())},
	}
}

// Run splits texts and labels positionally, fits both baselines on the
// training part, predicts the rest and writes one report per baseline to out
func (r *Runner) Run(ctx context.Context, texts, labels []string, out io.Writer) (*RunResult, error) {
	start := time.Now()
	runID := uuid.New().String()
	mode := r.cfg.LabelMode()

	split, err := corpus.SplitData(texts, labels, r.cfg.Split.TrainFraction)
	if err != nil {
		return nil, fmt.Errorf("failed to split data: %w", err)
	}

	r.logger.Info("Data split",
		zap.String("run_id", runID),
		zap.String("label_mode", string(mode)),
		zap.Int("train", len(split.TrainTexts)),
		zap.Int("test", len(split.TestTexts)))

	baselines := r.baselines()

	r.logger.Info("Fitting models...")
	for _, b := range baselines {
		fitStart := time.Now()
		if err := b.pipeline.Fit(split.TrainTexts, split.TrainLabels); err != nil {
			return nil, fmt.Errorf("failed to fit baseline: %w", err)
		}
		r.logger.Info("Model fitted",
			zap.String("baseline", b.pipeline.Name()),
			zap.Int("vocabulary_size", b.pipeline.VocabularySize()),
			zap.Strings("classes", b.pipeline.Classes()),
			zap.Duration("elapsed", time.Since(fitStart)))
		if !b.pipeline.Converged() {
			r.logger.Warn("Model did not converge",
				zap.String("baseline", b.pipeline.Name()),
				zap.Int("max_iter", r.cfg.SVM.MaxIter),
				zap.Float64("tolerance", r.cfg.SVM.Tolerance))
		}
	}

	r.logger.Info("Predicting...")
	predictions := make([][]string, len(baselines))
	for i, b := range baselines {
		pred, err := b.pipeline.Predict(split.TestTexts)
		if err != nil {
			return nil, fmt.Errorf("failed to predict: %w", err)
		}
		predictions[i] = pred
	}

	result := &RunResult{
		RunID:     runID,
		LabelMode: mode,
		TrainSize: len(split.TrainTexts),
		TestSize:  len(split.TestTexts),
	}

	for i, b := range baselines {
		report, err := evaluation.Evaluate(split.TestLabels, predictions[i])
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate %s: %w", b.pipeline.Name(), err)
		}

		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return nil, fmt.Errorf("failed to write report: %w", err)
			}
		}
		if _, err := fmt.Fprintf(out, "Results for %s baseline:\n", b.title); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
		if err := report.Write(out); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}

		result.Baselines = append(result.Baselines, BaselineResult{
			Baseline: b.pipeline.Name(),
			Title:    b.title,
			Report:   report,
		})
	}

	if err := r.save(ctx, result); err != nil {
		return nil, err
	}

	r.logger.Info("Run completed",
		zap.String("run_id", runID),
		zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

func (r *Runner) save(ctx context.Context, result *RunResult) error {
	if r.store == nil {
		return nil
	}

	now := time.Now().UTC()
	for _, b := range result.Baselines {
		run := &models.EvaluationRun{
			RunID:     result.RunID,
			Baseline:  b.Baseline,
			LabelMode: string(result.LabelMode),
			TrainSize: result.TrainSize,
			TestSize:  result.TestSize,
			Accuracy:  b.Report.Accuracy,
			MacroF1:   b.Report.MacroF1,
			CreatedAt: now,
		}
		if err := r.store.SaveRun(ctx, run); err != nil {
			return fmt.Errorf("failed to store run: %w", err)
		}
	}

	r.logger.Info("Run stored",
		zap.String("run_id", result.RunID),
		zap.Int("baselines", len(result.Baselines)))
	return nil
}
