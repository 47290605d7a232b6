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

	"github.com/yourusername/ecolearn-api/internal/config"
	"github.com/yourusername/ecolearn-api/internal/domain/entity"
	"github.com/yourusername/ecolearn-api/internal/domain/repository"
	"github.com/yourusername/ecolearn-api/internal/handler"
	"github.com/yourusername/ecolearn-api/internal/middleware"
	pgRepo "github.com/yourusername/ecolearn-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/ecolearn-api/internal/repository/redis"
	"github.com/yourusername/ecolearn-api/internal/service"
	"github.com/yourusername/ecolearn-api/pkg/auth"
	"github.com/yourusername/ecolearn-api/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Loading configuration from %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Redis is optional: without it the leaderboard reads straight from the
	// database on every request.
	var cacheRepo repository.CacheRepository
	redisClient, err := database.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Printf("Redis unavailable, leaderboard caching disabled: %v", err)
	} else {
		log.Println("Successfully connected to Redis")
		repo, err := redisRepo.NewCacheRepo(redisClient)
		if err != nil {
			log.Printf("Failed to initialize CacheRepo: %v", err)
			os.Exit(1)
		}
		cacheRepo = repo
	}

	userRepo := pgRepo.NewUserRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	attemptRepo := pgRepo.NewAttemptRepo(db)
	pointsRepo := pgRepo.NewPointsRepo(db)
	submissionRepo := pgRepo.NewSubmissionRepo(db)

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	var emailService service.EmailService = &service.NoopEmailService{}
	if cfg.Email.Enabled {
		resendService, err := service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
		emailService = resendService
		log.Println("Review decision emails enabled")
	}

	authService := service.NewAuthService(userRepo, jwtService)
	pointsService := service.NewPointsService(pointsRepo, userRepo, cacheRepo, db)
	quizService := service.NewQuizService(quizRepo, userRepo)
	attemptService := service.NewAttemptService(attemptRepo, quizRepo, userRepo, db)
	challengeService := service.NewChallengeService(submissionRepo, userRepo, pointsService, emailService, db)

	authHandler := handler.NewAuthHandler(authService)
	quizHandler := handler.NewQuizHandler(quizService)
	attemptHandler := handler.NewAttemptHandler(attemptService)
	challengeHandler := handler.NewChallengeHandler(challengeService)
	pointsHandler := handler.NewPointsHandler(pointsService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	router := gin.Default()
	router.Use(middleware.RequestID())

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	reviewerRoles := []string{entity.RoleTeacher, entity.RoleInstitution}

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		quizzes := api.Group("/quizzes")
		quizzes.Use(authMiddleware.RequireAuth())
		{
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.POST("", authMiddleware.RequireRole(reviewerRoles...), quizHandler.CreateQuiz)

			quizWithID := quizzes.Group("/:id")
			quizWithID.Use(middleware.ExtractUintParam("id", "quizID"))
			{
				quizWithID.GET("", quizHandler.GetQuiz)
				quizWithID.GET("/with-questions", quizHandler.GetQuizWithQuestions)
				quizWithID.PUT("", authMiddleware.RequireRole(reviewerRoles...), quizHandler.UpdateQuiz)
				quizWithID.DELETE("", authMiddleware.RequireRole(reviewerRoles...), quizHandler.DeleteQuiz)

				quizWithID.POST("/attempts", authMiddleware.RequireRole(entity.RoleStudent), attemptHandler.RecordAttempt)
				quizWithID.GET("/attempts", authMiddleware.RequireRole(entity.RoleStudent), attemptHandler.GetHistory)
			}
		}

		challenges := api.Group("/challenges")
		challenges.Use(authMiddleware.RequireAuth())
		{
			challenges.POST("", authMiddleware.RequireRole(entity.RoleStudent), challengeHandler.Submit)
			challenges.GET("/pending", authMiddleware.RequireRole(reviewerRoles...), challengeHandler.ListPending)

			challengeWithID := challenges.Group("/:id")
			challengeWithID.Use(middleware.ExtractUintParam("id", "submissionID"))
			{
				challengeWithID.PUT("/review", authMiddleware.RequireRole(reviewerRoles...), challengeHandler.Review)
			}
		}

		points := api.Group("/points")
		points.Use(authMiddleware.RequireAuth())
		{
			points.GET("/me", pointsHandler.GetMyStats)
			points.GET("/leaderboard", pointsHandler.GetLeaderboard)
			points.GET("/leaderboard/export", authMiddleware.RequireRole(reviewerRoles...), pointsHandler.ExportLeaderboard)

			studentPoints := points.Group("/students/:id")
			studentPoints.Use(middleware.ExtractUintParam("id", "studentID"))
			studentPoints.Use(authMiddleware.RequireRole(reviewerRoles...))
			{
				studentPoints.GET("", pointsHandler.GetStudentStats)
				studentPoints.POST("/award", pointsHandler.AwardPoints)
				studentPoints.POST("/deduct", pointsHandler.DeductPoints)
			}
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

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

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}

	log.Println("Server exited properly")
}
