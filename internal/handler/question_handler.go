package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/millionaire-api/internal/handler/dto"
	"github.com/yourusername/millionaire-api/internal/service"
)

// QuestionHandler обрабатывает административные запросы к банку вопросов
type QuestionHandler struct {
	bank *service.QuestionBankService
}

// NewQuestionHandler создает новый обработчик банка вопросов
func NewQuestionHandler(bank *service.QuestionBankService) *QuestionHandler {
	return &QuestionHandler{bank: bank}
}

// BulkUpload загружает пакет вопросов
// POST /api/admin/questions
func (h *QuestionHandler) BulkUpload(c *gin.Context) {
	var req dto.BulkUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	questions := req.ToEntities()
	n, err := h.bank.BulkUpload(questions)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	byLevel := make(map[int]int)
	for _, q := range questions {
		byLevel[q.Level]++
	}
	c.JSON(http.StatusCreated, dto.BulkUploadResponse{Total: n, ByLevel: byLevel})
}

// Stats возвращает статистику банка вопросов
// GET /api/admin/questions/stats
func (h *QuestionHandler) Stats(c *gin.Context) {
	stats, err := h.bank.Stats()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
