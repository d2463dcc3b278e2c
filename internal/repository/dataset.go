package repository

import (
	"context"
	"fmt"
	"time"

	"baselines/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// DatasetRepository stores the labeled corpus in the ml_dataset table
type DatasetRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *sqlx.DB, logger *zap.Logger) *DatasetRepository {
	return &DatasetRepository{
		db:     db,
		logger: logger,
	}
}

// ReplaceRecords swaps the stored dataset for records in a single
// transaction. Positions follow slice order.
func (r *DatasetRepository) ReplaceRecords(ctx context.Context, records []models.Record, source string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM ml_dataset"); err != nil {
		return fmt.Errorf("failed to clear dataset: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`
		INSERT INTO ml_dataset (position, text, coarse_label, fine_label, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx, i, rec.Text, rec.Coarse, rec.Fine, source, now); err != nil {
			return fmt.Errorf("failed to save record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}

	r.logger.Info("Dataset replaced",
		zap.Int("records", len(records)),
		zap.String("source", source))
	return nil
}

// GetAllEntries returns every stored entry in file order
func (r *DatasetRepository) GetAllEntries(ctx context.Context) ([]*models.DatasetEntry, error) {
	var entries []*models.DatasetEntry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, position, text, coarse_label, fine_label, source, created_at
		FROM ml_dataset
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset: %w", err)
	}
	return entries, nil
}

// GetRecords returns the stored corpus in file order
func (r *DatasetRepository) GetRecords(ctx context.Context) ([]models.Record, error) {
	entries, err := r.GetAllEntries(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]models.Record, len(entries))
	for i, e := range entries {
		records[i] = e.Record()
	}
	return records, nil
}

// GetDatasetStats counts stored entries in total and per label
func (r *DatasetRepository) GetDatasetStats(ctx context.Context) (*models.DatasetStats, error) {
	stats := &models.DatasetStats{
		ByCoarse: make(map[string]int),
		ByFine:   make(map[string]int),
	}

	if err := r.db.GetContext(ctx, &stats.Total, "SELECT COUNT(*) FROM ml_dataset"); err != nil {
		return nil, fmt.Errorf("failed to count dataset: %w", err)
	}

	for column, dst := range map[string]map[string]int{
		"coarse_label": stats.ByCoarse,
		"fine_label":   stats.ByFine,
	} {
		var rows []struct {
			Label string `db:"label"`
			Count int    `db:"count"`
		}
		query := fmt.Sprintf("SELECT %s AS label, COUNT(*) AS count FROM ml_dataset GROUP BY %s", column, column)
		if err := r.db.SelectContext(ctx, &rows, query); err != nil {
			return nil, fmt.Errorf("failed to count by %s: %w", column, err)
		}
		for _, row := range rows {
			dst[row.Label] = row.Count
		}
	}

	return stats, nil
}
