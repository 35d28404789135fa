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

	"github.com/yourusername/quiz-miniapp-api/internal/bot"
	"github.com/yourusername/quiz-miniapp-api/internal/config"
	"github.com/yourusername/quiz-miniapp-api/internal/handler"
	"github.com/yourusername/quiz-miniapp-api/internal/middleware"
	pgRepo "github.com/yourusername/quiz-miniapp-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quiz-miniapp-api/internal/repository/redis"
	"github.com/yourusername/quiz-miniapp-api/internal/service"
	"github.com/yourusername/quiz-miniapp-api/pkg/database"
	"github.com/yourusername/quiz-miniapp-api/pkg/telegramauth"
)

func main() {
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

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	sessionRepo := pgRepo.NewSessionRepo(db)
	answerRepo := pgRepo.NewAnswerRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	userService := service.NewUserService(userRepo)
	quizService := service.NewQuizService(
		quizRepo, questionRepo, sessionRepo, cacheRepo,
		cfg.Cache.LeaderboardTTL, cfg.Cache.QuizListTTL,
	)
	sessionService := service.NewSessionService(sessionRepo, answerRepo, questionRepo, quizRepo, cacheRepo)
	cleanupService := service.NewCleanupService(sessionRepo, cfg.Session.CleanupInterval, cfg.Session.MaxIdleAge)

	// Валидатор initData. Пустой токен не роняет сервис:
	// валидация ответит NO_BOT_TOKEN на первом же запросе.
	validator := telegramauth.NewValidator(cfg.Telegram.BotToken)
	if cfg.Telegram.BotToken == "" {
		log.Println("WARNING: TELEGRAM_BOT_TOKEN не задан, аутентификация будет отвечать NO_BOT_TOKEN")
	}

	// Инициализируем middleware и обработчики
	authMiddleware := middleware.NewAuthMiddleware(validator, userService, &cfg.Telegram)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	userHandler := handler.NewUserHandler(userService)
	quizHandler := handler.NewQuizHandler(quizService)
	sessionHandler := handler.NewSessionHandler(sessionService)

	// Контекст жизненного цикла фоновых горутин
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Janitor устаревших сессий
	go cleanupService.Run(ctx)

	// Telegram-бот (кнопка мини-аппа), если включен
	if cfg.Telegram.BotEnabled && cfg.Telegram.BotToken != "" {
		tgBot, errBot := bot.New(cfg.Telegram.BotToken, cfg.Telegram.MiniAppURL)
		if errBot != nil {
			log.Printf("Ошибка инициализации Telegram-бота: %v. Бот будет неактивен.", errBot)
		} else {
			go tgBot.Run(ctx)
		}
	}

	// Настраиваем маршрутизацию
	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://web.telegram.org"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.InitDataHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(rateLimiter.Limit(middleware.DefaultAPIRateLimitConfig()))
	api.Use(authMiddleware.RequireAuth())
	{
		api.GET("/me", userHandler.GetMe)

		quizzes := api.Group("/quizzes")
		{
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.GET("/:id", middleware.ExtractUintParam("id", "quizID"), quizHandler.GetQuiz)
			quizzes.GET("/:id/leaderboard", middleware.ExtractUintParam("id", "quizID"), quizHandler.GetLeaderboard)
			quizzes.GET("/:id/duel-order", middleware.ExtractUintParam("id", "quizID"), quizHandler.GetDuelOrder)
		}

		sessions := api.Group("/sessions")
		{
			sessions.POST("", sessionHandler.StartSession)
			sessions.GET("/:id", middleware.ExtractUintParam("id", "sessionID"), sessionHandler.GetSession)
			sessions.POST("/:id/question-shown", middleware.ExtractUintParam("id", "sessionID"), sessionHandler.QuestionShown)
			sessions.POST("/:id/answers",
				middleware.ExtractUintParam("id", "sessionID"),
				rateLimiter.Limit(middleware.SubmitRateLimitConfig()),
				sessionHandler.SubmitAnswer)
		}

		admin := api.Group("/admin")
		admin.Use(authMiddleware.AdminOnly())
		{
			admin.POST("/quizzes", quizHandler.CreateQuiz)
			admin.PUT("/quizzes/:id", middleware.ExtractUintParam("id", "quizID"), quizHandler.UpdateQuiz)
			admin.POST("/quizzes/:id/questions", middleware.ExtractUintParam("id", "quizID"), quizHandler.AddQuestion)
		}
	}

	// Запускаем HTTP сервер с корректным завершением
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Сервер запущен на порту %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Ошибка HTTP сервера: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Получен сигнал завершения, останавливаем сервер...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Ошибка при остановке сервера: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Ошибка при закрытии Redis клиента: %v", err)
	}

	log.Println("Сервер остановлен")
}
