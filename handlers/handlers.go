package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/loiht2/chess-trainer/models"
	"github.com/loiht2/chess-trainer/service"
)

// PuzzleService is the part of service.PuzzleService used over HTTP
type PuzzleService interface {
	ListPuzzles(ctx context.Context) ([]models.Puzzle, error)
	CreateSet(ctx context.Context, options models.CreateTrainingSetOptions) (models.TrainingSet, error)
	GetSet(ctx context.Context, id models.TrainingSetID) (models.TrainingSet, error)
}

// Handler handles HTTP requests
type Handler struct {
	puzzles PuzzleService
	logger  *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(puzzles PuzzleService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{puzzles: puzzles, logger: logger}
}

// Register mounts the health check and the /api/v1 routes
func (h *Handler) Register(router gin.IRouter) {
	router.GET("/health", h.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/puzzles", h.ListPuzzles)

		sets := api.Group("/training-sets")
		{
			sets.POST("", h.CreateTrainingSet)
			sets.GET("/:id", h.GetTrainingSet)
		}
	}
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// ListPuzzles handles GET /api/v1/puzzles
func (h *Handler) ListPuzzles(c *gin.Context) {
	puzzles, err := h.puzzles.ListPuzzles(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list puzzles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list puzzles"})
		return
	}
	c.JSON(http.StatusOK, puzzles)
}

// CreateTrainingSet handles POST /api/v1/training-sets
func (h *Handler) CreateTrainingSet(c *gin.Context) {
	var req models.CreateTrainingSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid request payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	set, err := h.puzzles.CreateSet(c.Request.Context(), req.ToOptions())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, set)
}

// GetTrainingSet handles GET /api/v1/training-sets/:id
func (h *Handler) GetTrainingSet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid training set id"})
		return
	}

	set, err := h.puzzles.GetSet(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

// respondError maps service errors to status codes. Repository failures are
// logged with their cause and reported generically.
func (h *Handler) respondError(c *gin.Context, err error) {
	var repoErr *service.RepositoryError
	switch {
	case errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrNameLengthLimitExceeded),
		errors.Is(err, service.ErrSizeTooSmall),
		errors.Is(err, service.ErrSizeLimitExceeded):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCriteriaUnmet):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrTrainingSetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Training set not found"})
	case errors.As(err, &repoErr):
		h.logger.Error("Repository error", zap.Error(repoErr.Err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": repoErr.Error()})
	default:
		h.logger.Error("Unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
