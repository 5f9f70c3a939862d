package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Cryptoquest/config"
	"github.com/lshigami/Cryptoquest/database"
	_ "github.com/lshigami/Cryptoquest/docs" // Swagger docs - auto-generated
	adminctrl "github.com/lshigami/Cryptoquest/internal/controller/admin"
	userctrl "github.com/lshigami/Cryptoquest/internal/controller/user"
	"github.com/lshigami/Cryptoquest/internal/logger"
	"github.com/lshigami/Cryptoquest/internal/middleware"
	"github.com/lshigami/Cryptoquest/internal/model"
	"github.com/lshigami/Cryptoquest/internal/repository"
	"github.com/lshigami/Cryptoquest/internal/security"
	"github.com/lshigami/Cryptoquest/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Cryptoquest API
// @version 1.0
// @description API for a sequential image-based trivia contest: participants answer one question at a time and climb a dense-ranked leaderboard.
// @contact.name API Support
// @contact.email support@example.com
// @license.name MIT
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			security.NewTokenManager,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewQuestionRepository,
			repository.NewQuestionOrderItemRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAnswerNormalizerService,
			service.NewEmailService,
			service.NewAuthService,
			service.NewUserService,
			service.NewQuestionService,
			service.NewQuestionOrderService,
			service.NewContestService,
		),

		// API Controllers Layer
		fx.Provide(
			middleware.NewAuthMiddleware,
			adminctrl.NewQuestionController,
			adminctrl.NewQuestionOrderController,
			adminctrl.NewUserAdminController,
			adminctrl.NewUtilsController,
			userctrl.NewAuthController,
			userctrl.NewUserController,
			userctrl.NewContestController,
		),

		// Invokers - Functions that are executed by Fx
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedFirstSuperuser),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	// Request logging via the global zerolog instance
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	auth *middleware.AuthMiddleware,
	questionCtrl *adminctrl.QuestionController,
	orderCtrl *adminctrl.QuestionOrderController,
	userAdminCtrl *adminctrl.UserAdminController,
	utilsCtrl *adminctrl.UtilsController,
	authCtrl *userctrl.AuthController,
	userCtrl *userctrl.UserController,
	contestCtrl *userctrl.ContestController,
) {
	api := router.Group("/api/v1")

	// Login and password recovery
	api.POST("/login/access-token", authCtrl.Login)
	api.POST("/login/test-token", auth.RequireUser(), authCtrl.TestToken)
	api.POST("/password-recovery/:email", authCtrl.RecoverPassword)
	api.POST("/reset-password", authCtrl.ResetPassword)

	// Users
	users := api.Group("/users")
	{
		users.POST("/open", userCtrl.CreateUserOpen)
		users.GET("/leaderboard", auth.RequireUser(), userCtrl.Leaderboard)
		users.GET("/me", auth.RequireUser(), userCtrl.GetMe)
		users.PUT("/me", auth.RequireUser(), userCtrl.UpdateMe)
		users.GET("/me/question", auth.RequireUser(), contestCtrl.CurrentQuestion)
		users.POST("/me/answer", auth.RequireUser(), contestCtrl.SubmitAnswer)
		users.GET("/:user_id", auth.RequireUser(), userCtrl.GetUser)

		// Superuser-only user management
		users.GET("", auth.RequireUser(), auth.RequireSuperuser(), userAdminCtrl.ListUsers)
		users.POST("", auth.RequireUser(), auth.RequireSuperuser(), userAdminCtrl.CreateUser)
		users.PUT("/:user_id", auth.RequireUser(), auth.RequireSuperuser(), userAdminCtrl.UpdateUser)
		users.DELETE("/:user_id", auth.RequireUser(), auth.RequireSuperuser(), userAdminCtrl.DeleteUser)
	}

	api.GET("/contest/completed", contestCtrl.Completed)

	// Question management (superuser only)
	questions := api.Group("/questions", auth.RequireUser(), auth.RequireSuperuser())
	{
		questions.GET("", questionCtrl.ListQuestions)
		questions.POST("", questionCtrl.CreateQuestion)
		questions.GET("/:question_id", questionCtrl.GetQuestion)
		questions.PATCH("/:question_id", questionCtrl.UpdateQuestion)
		questions.DELETE("/:question_id", questionCtrl.DeleteQuestion)
	}

	// Question ordering (superuser only)
	order := api.Group("/questions-order", auth.RequireUser(), auth.RequireSuperuser())
	{
		order.GET("", orderCtrl.ListOrderItems)
		order.POST("", orderCtrl.CreateOrderItem)
		order.GET("/:order_item_id", orderCtrl.GetOrderItem)
		order.PUT("/:order_item_id", orderCtrl.UpdateOrderItem)
		order.DELETE("/:order_item_id", orderCtrl.DeleteOrderItem)
	}

	// Utilities. The event timestamps are public so the frontend can show a
	// countdown before anyone logs in.
	utils := api.Group("/utils")
	{
		utils.POST("/test-email", auth.RequireUser(), auth.RequireSuperuser(), utilsCtrl.TestEmail)
		utils.GET("/start-time", utilsCtrl.StartTime)
		utils.GET("/end-time", utilsCtrl.EndTime)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Cryptoquest API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.QuestionOrderItem{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

// SeedFirstSuperuser creates the configured superuser account on first boot.
func SeedFirstSuperuser(cfg *config.Config, userRepo repository.UserRepository) error {
	fs := cfg.FirstSuperuser
	if fs.Email == "" || fs.Password == "" {
		log.Warn().Msg("First superuser not configured, skipping seed")
		return nil
	}

	if _, err := userRepo.FindByEmail(fs.Email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := security.HashPassword(fs.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		FullName:       fs.FullName,
		Email:          fs.Email,
		Username:       fs.Username,
		HashedPassword: hashed,
		IsSuperuser:    true,
		QuestionNumber: 1,
	}
	if err := userRepo.Create(user); err != nil {
		log.Error().Err(err).Msg("Failed to seed first superuser")
		return err
	}
	log.Info().Str("email", fs.Email).Msg("First superuser created")
	return nil
}
