package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/millionaire-api/internal/pkg/errors"
)

// ExtractUintParam кладёт положительный числовой параметр пути paramName в контекст под ключом contextKey.
// Идентификаторы в базе начинаются с 1, поэтому 0 отклоняется вместе с нечисловыми значениями.
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(paramName)
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			err = fmt.Errorf("%w: %s must be a positive integer, got %q", apperrors.ErrValidation, paramName, raw)
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":      err.Error(),
				"error_type": "validation",
			})
			return
		}
		c.Set(contextKey, uint(id))
		c.Next()
	}
}
