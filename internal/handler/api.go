package handler

import (
	"context"
	"errors"
	"net/http"

	"baselines/internal/models"
	"baselines/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TextClassifier is the model behind the API
type TextClassifier interface {
	Classify(ctx context.Context, text string) (*models.ClassifyResponse, error)
	ClassifyBatch(ctx context.Context, messages []models.BatchMessage) (*models.BatchClassifyResponse, error)
	ModelInfo() models.ModelInfo
}

// Handler handles HTTP requests
type Handler struct {
	classifier TextClassifier
	logger     *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(classifier TextClassifier, logger *zap.Logger) *Handler {
	return &Handler{
		classifier: classifier,
		logger:     logger,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.POST("/classify/single", h.ClassifySingle)
		api.POST("/classify/batch", h.ClassifyBatch)
		api.GET("/model", h.ModelInfo)
	}

	// Health check
	r.GET("/health", h.HealthCheck)
}

// ClassifySingle handles single message classification
func (h *Handler) ClassifySingle(c *gin.Context) {
	var req models.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.classifier.Classify(c.Request.Context(), req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ClassifyBatch handles batch classification
func (h *Handler) ClassifyBatch(c *gin.Context) {
	var req models.BatchClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.classifier.ClassifyBatch(c.Request.Context(), req.Messages)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("Batch classified", zap.Int("total", resp.Total))
	c.JSON(http.StatusOK, resp)
}

// ModelInfo returns the loaded model description
func (h *Handler) ModelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.classifier.ModelInfo())
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "baselines",
		"model":   h.classifier.ModelInfo().Baseline,
	})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrEmptyText) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Error("Failed to classify", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "classification failed"})
}
