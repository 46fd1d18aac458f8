package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/millionaire-api/internal/domain/entity"
	"github.com/yourusername/millionaire-api/internal/service"
)

// UserHandler обрабатывает запросы, связанные с пользователями
type UserHandler struct {
	userService     *service.UserService
	historyPageSize int
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService, historyPageSize int) *UserHandler {
	return &UserHandler{
		userService:     userService,
		historyPageSize: historyPageSize,
	}
}

// GetLeaderboard обрабатывает запрос на получение лидерборда
// GET /api/users
func (h *UserHandler) GetLeaderboard(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	leaderboard, err := h.userService.GetLeaderboard(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error getting leaderboard"})
		return
	}

	c.JSON(http.StatusOK, leaderboard)
}

// GetProfile возвращает профиль пользователя с историей игр
// GET /api/users/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.MustGet("profileUserID").(uint)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.historyPageSize)))

	profile, err := h.userService.GetProfile(userID, page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ExportGames выгружает историю игр пользователя
// GET /api/users/:id/games/export?format=csv|xlsx
func (h *UserHandler) ExportGames(c *gin.Context) {
	userID := c.MustGet("profileUserID").(uint)
	format := c.DefaultQuery("format", "csv")

	user, games, err := h.userService.GetAllGames(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("user_%d_games_%s", user.ID, time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, user, games, filename)
	default:
		h.exportCSV(c, user, games, filename)
	}
}

var exportHeaders = []string{"Игра", "Игрок", "Начата", "Завершена", "Уровень", "Выигрыш", "Статус", "Подсказки"}

func exportRow(user *entity.User, g entity.GameSnapshot) []string {
	finished := ""
	if g.FinishedAt != nil {
		finished = g.FinishedAt.Format(time.RFC3339)
	}
	helps := ""
	for i, h := range g.UsedHelps {
		if i > 0 {
			helps += ", "
		}
		helps += translateHelpType(h)
	}
	return []string{
		strconv.FormatUint(uint64(g.ID), 10),
		sanitizeForExcel(user.Name),
		g.CreatedAt.Format(time.RFC3339),
		finished,
		strconv.Itoa(g.CurrentLevel),
		strconv.FormatInt(g.Prize, 10),
		translateStatus(g.Status),
		helps,
	}
}

// exportCSV экспортирует историю в CSV с правильным экранированием спецсимволов
func (h *UserHandler) exportCSV(c *gin.Context, user *entity.User, games []entity.GameSnapshot, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, g := range games {
		writer.Write(exportRow(user, g))
	}
}

// exportXLSX экспортирует историю в Excel с использованием StreamWriter
func (h *UserHandler) exportXLSX(c *gin.Context, user *entity.User, games []entity.GameSnapshot, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Игры"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[UserHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, v := range exportHeaders {
		headers[i] = v
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[UserHandler] Ошибка записи заголовков: %v", err)
	}

	for i, g := range games {
		rowNum := i + 2 // 1 - заголовки
		cells := exportRow(user, g)
		row := make([]interface{}, len(cells))
		for j, v := range cells {
			row[j] = v
		}
		// Числовые колонки пишем числами, чтобы их можно было суммировать
		row[0] = g.ID
		row[4] = g.CurrentLevel
		row[5] = g.Prize
		if err := sw.SetRow(fmt.Sprintf("A%d", rowNum), row); err != nil {
			log.Printf("[UserHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[UserHandler] Ошибка при Flush: %v", err)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[UserHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

func translateStatus(s entity.GameStatus) string {
	switch s {
	case entity.GameStatusInProgress:
		return "В процессе"
	case entity.GameStatusWon:
		return "Победа"
	case entity.GameStatusFail:
		return "Проигрыш"
	case entity.GameStatusTimeout:
		return "Время вышло"
	case entity.GameStatusMoney:
		return "Забрал деньги"
	default:
		return string(s)
	}
}

func translateHelpType(h entity.HelpType) string {
	switch h {
	case entity.HelpFiftyFifty:
		return "50/50"
	case entity.HelpAudience:
		return "Помощь зала"
	case entity.HelpFriendCall:
		return "Звонок другу"
	default:
		return string(h)
	}
}
