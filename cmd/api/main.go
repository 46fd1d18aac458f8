package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm/logger"

	"github.com/yourusername/millionaire-api/internal/config"
	"github.com/yourusername/millionaire-api/internal/handler"
	"github.com/yourusername/millionaire-api/internal/middleware"
	pgRepo "github.com/yourusername/millionaire-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/millionaire-api/internal/repository/redis"
	"github.com/yourusername/millionaire-api/internal/service"
	"github.com/yourusername/millionaire-api/pkg/auth"
	"github.com/yourusername/millionaire-api/pkg/database"
)

func main() {
	// .env нужен только для локальной разработки
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	isProduction := os.Getenv("GIN_MODE") == "release"

	// Инициализируем подключение к PostgreSQL
	logLevel := logger.Info
	if isProduction {
		logLevel = logger.Warn
	}
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), logLevel)
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db, database.DefaultMigrationsPath); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis с использованием унифицированной конфигурации
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	gameRepo := pgRepo.NewGameRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}
	locker, err := redisRepo.NewLocker(redisClient)
	if err != nil {
		log.Printf("Failed to initialize Locker: %v", err)
		os.Exit(1)
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.JWTExpiration())
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	questionBank := service.NewQuestionBankService(questionRepo, cacheRepo, cfg.Game.StatsCacheTTL)
	gameService := service.NewGameService(gameRepo, questionBank, locker, cfg.Game.LockTTL)
	userService := service.NewUserService(userRepo, gameRepo)
	authService, err := service.NewAuthService(userRepo, jwtService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	gameHandler := handler.NewGameHandler(gameService)
	userHandler := handler.NewUserHandler(userService, cfg.Game.HistoryPageSize)
	questionHandler := handler.NewQuestionHandler(questionBank)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Настраиваем Gin
	if isProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	if isProduction {
		// Production: не доверять прокси-заголовкам
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	allowedOrigins := cfg.Server.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.Use(rateLimiter.Limit(middleware.StrictAuthRateLimitConfig()))
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Лидерборд и профили
		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("", userHandler.GetLeaderboard)

			user := users.Group("/:id")
			user.Use(middleware.ExtractUintParam("id", "profileUserID"))
			{
				user.GET("", userHandler.GetProfile)
				user.GET("/games/export", userHandler.ExportGames)
			}
		}

		// Игры
		games := api.Group("/games")
		games.Use(authMiddleware.RequireAuth())
		games.Use(rateLimiter.Limit(middleware.GameRateLimitConfig(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)))
		{
			games.POST("", gameHandler.CreateGame)
			games.GET("/current", gameHandler.CurrentGame)

			game := games.Group("/:id")
			game.Use(middleware.ExtractUintParam("id", "gameID"))
			{
				game.GET("", gameHandler.GetGame)
				game.PUT("/answer", gameHandler.Answer)
				game.PUT("/take_money", gameHandler.TakeMoney)
				game.PUT("/help", gameHandler.Help)
				game.GET("/status", gameHandler.GetStatus)
			}
		}

		// Банк вопросов (только для администраторов)
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			admin.POST("/questions", questionHandler.BulkUpload)
			admin.GET("/questions/stats", questionHandler.Stats)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}
	if sqlDB, err := database.GetSQLDB(db); err == nil {
		sqlDB.Close()
	}

	log.Println("Server exited properly")
}
