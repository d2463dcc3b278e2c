package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"baselines/internal/config"
	"baselines/internal/models"
	"baselines/internal/pipeline"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyText is returned for a message without any content to classify
var ErrEmptyText = errors.New("text is empty")

// Classifier serves predictions from an SVM baseline fitted once on the
// whole corpus. It is read-only after NewClassifier returns.
type Classifier struct {
	pipeline *pipeline.Pipeline
	info     models.ModelInfo
	logger   *zap.Logger
}

// NewClassifier fits the SVM baseline on every text and label given
func NewClassifier(cfg *config.Config, texts, labels []string, logger *zap.Logger) (*Classifier, error) {
	start := time.Now()
	p := pipeline.NewSVMBaseline(cfg.SVMOptions())
	if err := p.Fit(texts, labels); err != nil {
		return nil, fmt.Errorf("failed to train classifier: %w", err)
	}

	info := models.ModelInfo{
		RunID:          uuid.New().String(),
		Baseline:       p.Name(),
		LabelMode:      cfg.LabelMode(),
		Labels:         p.Classes(),
		VocabularySize: p.VocabularySize(),
		TrainingSize:   len(texts),
		TrainedAt:      time.Now().UTC(),
	}

	logger.Info("Classifier trained",
		zap.String("run_id", info.RunID),
		zap.String("label_mode", string(info.LabelMode)),
		zap.Int("training_size", info.TrainingSize),
		zap.Int("vocabulary_size", info.VocabularySize),
		zap.Duration("elapsed", time.Since(start)))

	if !p.Converged() {
		logger.Warn("Classifier did not converge",
			zap.Int("max_iter", cfg.SVM.MaxIter),
			zap.Float64("tolerance", cfg.SVM.Tolerance))
	}

	return &Classifier{
		pipeline: p,
		info:     info,
		logger:   logger,
	}, nil
}

// Classify labels a single text
func (c *Classifier) Classify(ctx context.Context, text string) (*models.ClassifyResponse, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	pred, err := c.pipeline.Predict([]string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to classify: %w", err)
	}

	return &models.ClassifyResponse{
		Text:             text,
		Category:         pred[0],
		IsOffensive:      models.IsOffensive(pred[0]),
		ProcessingTimeMs: elapsedMs(start),
	}, nil
}

// ClassifyBatch labels all messages in one pass, keeping request order
func (c *Classifier) ClassifyBatch(ctx context.Context, messages []models.BatchMessage) (*models.BatchClassifyResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	texts := make([]string, len(messages))
	for i, m := range messages {
		if m.Text == "" {
			return nil, fmt.Errorf("message %d: %w", m.ID, ErrEmptyText)
		}
		texts[i] = m.Text
	}

	pred, err := c.pipeline.Predict(texts)
	if err != nil {
		return nil, fmt.Errorf("failed to classify batch: %w", err)
	}

	results := make([]models.BatchResult, len(messages))
	offensive := 0
	for i, m := range messages {
		results[i] = models.BatchResult{
			ID:          m.ID,
			Text:        m.Text,
			Category:    pred[i],
			IsOffensive: models.IsOffensive(pred[i]),
		}
		if results[i].IsOffensive {
			offensive++
		}
	}

	c.logger.Debug("Batch classified",
		zap.Int("total", len(results)),
		zap.Int("offensive", offensive))

	return &models.BatchClassifyResponse{
		Results:          results,
		Total:            len(results),
		ProcessingTimeMs: elapsedMs(start),
	}, nil
}

// ModelInfo describes the fitted model
func (c *Classifier) ModelInfo() models.ModelInfo {
	info := c.info
	info.Labels = append([]string(nil), c.info.Labels...)
	return info
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
