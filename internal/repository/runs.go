package repository

import (
	"context"
	"fmt"
	"time"

	"baselines/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// RunRepository stores evaluation run summaries
type RunRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB, logger *zap.Logger) *RunRepository {
	return &RunRepository{
		db:     db,
		logger: logger,
	}
}

// SaveRun inserts run and fills in its ID and CreatedAt
func (r *RunRepository) SaveRun(ctx context.Context, run *models.EvaluationRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	query := r.db.Rebind(`
		INSERT INTO evaluation_runs (
			run_id, baseline, label_mode, train_size, test_size,
			accuracy, macro_f1, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	err := r.db.QueryRowxContext(ctx, query,
		run.RunID,
		run.Baseline,
		run.LabelMode,
		run.TrainSize,
		run.TestSize,
		run.Accuracy,
		run.MacroF1,
		run.CreatedAt,
	).Scan(&run.ID)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	r.logger.Debug("Run saved",
		zap.Int64("id", run.ID),
		zap.String("run_id", run.RunID),
		zap.String("baseline", run.Baseline))
	return nil
}

// ListRuns returns the most recent runs first
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]*models.EvaluationRun, error) {
	var runs []*models.EvaluationRun
	err := r.db.SelectContext(ctx, &runs, r.db.Rebind(`
		SELECT id, run_id, baseline, label_mode, train_size, test_size,
		       accuracy, macro_f1, created_at
		FROM evaluation_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	return runs, nil
}
