package service

import (
	"log"

	"github.com/yourusername/millionaire-api/internal/domain/entity"
	"github.com/yourusername/millionaire-api/internal/domain/repository"
	"github.com/yourusername/millionaire-api/internal/handler/dto"
)

// exportBatchSize — размер страницы при выгрузке всей истории игр
const exportBatchSize = 100

// UserService предоставляет методы для работы с пользователями
type UserService struct {
	userRepo repository.UserRepository
	gameRepo repository.GameRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository, gameRepo repository.GameRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		gameRepo: gameRepo,
	}
}

// GetLeaderboard возвращает пагинированный список пользователей для лидерборда.
func (s *UserService) GetLeaderboard(page, pageSize int) (*dto.PaginatedLeaderboardResponse, error) {
	page, pageSize = normalizePage(page, pageSize)
	offset := (page - 1) * pageSize

	users, total, err := s.userRepo.GetLeaderboard(pageSize, offset)
	if err != nil {
		log.Printf("[UserService] Ошибка при получении лидерборда из репозитория: %v", err)
		return nil, err
	}

	userDTOs := make([]*dto.LeaderboardUserDTO, len(users))
	for i, user := range users {
		userDTOs[i] = &dto.LeaderboardUserDTO{
			Rank:    offset + i + 1, // Рассчитываем ранг на основе смещения и индекса
			UserID:  user.ID,
			Name:    user.Name,
			Balance: user.Balance,
		}
	}

	return &dto.PaginatedLeaderboardResponse{
		Users:   userDTOs,
		Total:   total,
		Page:    page,
		PerPage: pageSize,
	}, nil
}

// GetUser возвращает пользователя по ID
func (s *UserService) GetUser(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}

// GetProfile возвращает профиль пользователя со страницей истории игр
func (s *UserService) GetProfile(userID uint, page, pageSize int) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	page, pageSize = normalizePage(page, pageSize)
	games, total, err := s.gameRepo.ListByUser(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		log.Printf("[UserService] Ошибка получения игр пользователя %d: %v", userID, err)
		return nil, err
	}

	return &dto.UserProfileResponse{
		User:    dto.NewUserResponse(user),
		Games:   dto.NewListGameSummaryResponse(snapshotsOf(games)),
		Total:   total,
		Page:    page,
		PerPage: pageSize,
	}, nil
}

// GetAllGames возвращает всю историю игр пользователя для экспорта
func (s *UserService) GetAllGames(userID uint) (*entity.User, []entity.GameSnapshot, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, nil, err
	}

	var snapshots []entity.GameSnapshot
	for offset := 0; ; offset += exportBatchSize {
		games, total, err := s.gameRepo.ListByUser(userID, exportBatchSize, offset)
		if err != nil {
			log.Printf("[UserService] Ошибка выгрузки игр пользователя %d: %v", userID, err)
			return nil, nil, err
		}
		snapshots = append(snapshots, snapshotsOf(games)...)
		if len(games) < exportBatchSize || int64(len(snapshots)) >= total {
			break
		}
	}
	return user, snapshots, nil
}

func snapshotsOf(games []entity.Game) []entity.GameSnapshot {
	out := make([]entity.GameSnapshot, len(games))
	for i := range games {
		out[i] = games[i].Snapshot()
	}
	return out
}
