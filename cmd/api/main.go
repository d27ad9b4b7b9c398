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

	"github.com/yourusername/jobboard-api/internal/config"
	"github.com/yourusername/jobboard-api/internal/domain/entity"
	"github.com/yourusername/jobboard-api/internal/handler"
	"github.com/yourusername/jobboard-api/internal/middleware"
	pgRepo "github.com/yourusername/jobboard-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/jobboard-api/internal/repository/redis"
	"github.com/yourusername/jobboard-api/internal/service"
	"github.com/yourusername/jobboard-api/internal/service/quizengine"
	"github.com/yourusername/jobboard-api/pkg/auth"
	"github.com/yourusername/jobboard-api/pkg/database"
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
	jobRepo := pgRepo.NewJobRepo(db)
	categoryRepo := pgRepo.NewCategoryRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	historyRepo := pgRepo.NewUserQuestionHistoryRepo(db)
	applicationRepo := pgRepo.NewApplicationRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Настраиваем движок квизов
	quizConfig := quizengine.DefaultConfig()
	quizConfig.QuestionsPerQuiz = cfg.Quiz.QuestionsPerQuiz
	quizConfig.PassThreshold = cfg.Quiz.PassThreshold
	if cfg.Quiz.SelectionLockTTLSec > 0 {
		quizConfig.SelectionLockTTL = time.Duration(cfg.Quiz.SelectionLockTTLSec) * time.Second
	}
	quizDeps := &quizengine.Dependencies{
		QuestionRepo: questionRepo,
		CategoryRepo: categoryRepo,
		HistoryRepo:  historyRepo,
		CacheRepo:    cacheRepo,
		Sampler:      quizengine.NewSampler(),
	}
	selector := quizengine.NewQuestionSelector(quizConfig, quizDeps)
	scorer := quizengine.NewScorer(quizConfig, quizDeps)

	// JWT
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWT service: %v", err)
		os.Exit(1)
	}

	// Email-уведомления
	var emailService service.EmailService
	if cfg.Email.Enabled {
		emailService, err = service.NewResendEmailService(cfg.Email.APIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
		log.Println("Email notifications enabled via Resend")
	} else {
		emailService = &service.NoopEmailService{}
	}

	// Сервисы
	authService := service.NewAuthService(userRepo, jwtService)
	jobService := service.NewJobService(jobRepo, categoryRepo)
	questionService := service.NewQuestionService(questionRepo, categoryRepo, cacheRepo)
	applicationService := service.NewApplicationService(
		applicationRepo, jobRepo, questionRepo, userRepo, emailService, quizConfig)

	// Хендлеры
	authHandler := handler.NewAuthHandler(authService)
	jobHandler := handler.NewJobHandler(jobService)
	quizHandler := handler.NewQuizHandler(selector, scorer)
	questionHandler := handler.NewQuestionHandler(questionService)
	applicationHandler := handler.NewApplicationHandler(applicationService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	isProduction := os.Getenv("GIN_MODE") == "release"

	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Категории
		api.GET("/categories", jobHandler.GetCategories)

		// Квиз категории: анонимам - случайная выборка, с токеном - ротация
		categoryWithID := api.Group("/categories/:id")
		categoryWithID.Use(middleware.ExtractUintParam("id", "categoryID"))
		{
			categoryWithID.GET("/quiz", authMiddleware.OptionalAuth(), quizHandler.GetQuizQuestions)
		}

		// Проверка ответов квиза
		api.POST("/quiz/submit", quizHandler.SubmitQuiz)

		// Вакансии
		jobs := api.Group("/jobs")
		{
			recruiterJobs := jobs.Group("")
			recruiterJobs.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleRecruiter, entity.RoleAdmin))
			{
				recruiterJobs.POST("", jobHandler.CreateJob)
			}

			jobWithID := jobs.Group("/:id")
			jobWithID.Use(middleware.ExtractUintParam("id", "jobID"))
			{
				jobWithID.GET("", jobHandler.GetJob)

				// Отклик - только аутентифицированные соискатели
				jobWithID.POST("/apply", authMiddleware.RequireAuth(), applicationHandler.Apply)

				// Просмотр и экспорт откликов - рекрутер вакансии
				recruiterScope := jobWithID.Group("")
				recruiterScope.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleRecruiter, entity.RoleAdmin))
				{
					recruiterScope.GET("/applications", applicationHandler.ListJobApplications)
					recruiterScope.GET("/applications/export", applicationHandler.ExportApplications)
				}
			}
		}

		// Отклики текущего соискателя
		api.GET("/applications/my", authMiddleware.RequireAuth(), applicationHandler.ListMyApplications)

		// Решения по откликам
		applicationWithID := api.Group("/applications/:id")
		applicationWithID.Use(
			middleware.ExtractUintParam("id", "applicationID"),
			authMiddleware.RequireAuth(),
			authMiddleware.RequireRole(entity.RoleRecruiter, entity.RoleAdmin),
		)
		{
			applicationWithID.PUT("/status", applicationHandler.UpdateStatus)
		}

		// Админка
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin))
		{
			admin.POST("/categories", jobHandler.CreateCategory)

			adminCategory := admin.Group("/categories/:id")
			adminCategory.Use(middleware.ExtractUintParam("id", "categoryID"))
			{
				adminCategory.GET("/questions", questionHandler.GetCategoryQuestions)
				adminCategory.POST("/questions", questionHandler.CreateQuestion)
				adminCategory.POST("/questions/batch", questionHandler.CreateQuestions)
			}

			adminQuestion := admin.Group("/questions/:id")
			adminQuestion.Use(middleware.ExtractUintParam("id", "questionID"))
			{
				adminQuestion.PUT("", questionHandler.UpdateQuestion)
				adminQuestion.DELETE("", questionHandler.DeleteQuestion)
				adminQuestion.GET("/stats", questionHandler.GetQuestionStats)
			}
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	readTimeout := cfg.Server.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 15
	}
	writeTimeout := cfg.Server.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30
	}
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
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

	// Контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
