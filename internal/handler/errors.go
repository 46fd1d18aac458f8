package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/millionaire-api/internal/pkg/errors"
	"github.com/yourusername/millionaire-api/internal/service"
)

// handleServiceError переводит ошибки сервисов в HTTP ответ
func handleServiceError(c *gin.Context, err error) {
	var concurrent *service.ConcurrentGameError
	switch {
	case errors.As(err, &concurrent):
		c.JSON(http.StatusConflict, gin.H{
			"error":          err.Error(),
			"error_type":     "game_in_progress",
			"active_game_id": concurrent.ActiveGameID,
		})
	case errors.Is(err, apperrors.ErrConcurrentGame):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "game_in_progress"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "error_type": "forbidden"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "error_type": "unauthorized"})
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "error_type": "invalid_state"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "conflict"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
	case errors.Is(err, apperrors.ErrInsufficientData):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "error_type": "insufficient_questions"})
	default:
		log.Printf("ERROR: Internal server error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
