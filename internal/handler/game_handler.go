package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/millionaire-api/internal/handler/dto"
	"github.com/yourusername/millionaire-api/internal/service"
)

// GameHandler обрабатывает запросы, связанные с играми
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler создает новый обработчик игр
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// CreateGame начинает новую игру
// POST /api/games
func (h *GameHandler) CreateGame(c *gin.Context) {
	userID := c.GetUint("user_id")

	game, err := h.gameService.CreateGame(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewGameResponse(game, h.gameService.Now()))
}

// GetGame возвращает состояние игры
// GET /api/games/:id
func (h *GameHandler) GetGame(c *gin.Context) {
	game, err := h.gameService.GetGame(c.Request.Context(), c.GetUint("user_id"), c.MustGet("gameID").(uint))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewGameResponse(game, h.gameService.Now()))
}

// Answer принимает ответ на текущий вопрос
// PUT /api/games/:id/answer
func (h *GameHandler) Answer(c *gin.Context) {
	var req dto.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.gameService.SubmitAnswer(c.Request.Context(), c.GetUint("user_id"), c.MustGet("gameID").(uint), req.Letter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AnswerResponse{
		Correct:  res.Correct,
		Credited: res.Credited,
		Game:     dto.NewGameResponse(res.Game, h.gameService.Now()),
	})
}

// TakeMoney завершает игру с текущим выигрышем
// PUT /api/games/:id/take_money
func (h *GameHandler) TakeMoney(c *gin.Context) {
	res, err := h.gameService.CashOut(c.Request.Context(), c.GetUint("user_id"), c.MustGet("gameID").(uint))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AnswerResponse{
		Credited: res.Credited,
		Game:     dto.NewGameResponse(res.Game, h.gameService.Now()),
	})
}

// Help применяет подсказку
// PUT /api/games/:id/help
func (h *GameHandler) Help(c *gin.Context) {
	var req dto.HelpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.gameService.ApplyHint(c.Request.Context(), c.GetUint("user_id"), c.MustGet("gameID").(uint), req.HelpType)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.HintResponse{
		Hint: out.Hint,
		Game: dto.NewGameResponse(out.Game, h.gameService.Now()),
	})
}

// GetStatus возвращает статус игры
// GET /api/games/:id/status
func (h *GameHandler) GetStatus(c *gin.Context) {
	gameID := c.MustGet("gameID").(uint)

	status, err := h.gameService.GetStatus(c.Request.Context(), gameID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GameStatusResponse{ID: gameID, Status: status})
}

// CurrentGame возвращает незавершённую игру пользователя
// GET /api/games/current
func (h *GameHandler) CurrentGame(c *gin.Context) {
	game, err := h.gameService.GetActiveGame(c.Request.Context(), c.GetUint("user_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewGameResponse(game, h.gameService.Now()))
}
