package api

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"studybuddy/internal/api/handler"
	"studybuddy/internal/api/middleware"
	"studybuddy/internal/catalog"
	"studybuddy/internal/config"
	"studybuddy/internal/quizbank"
	"studybuddy/internal/service"
	"studybuddy/internal/util"
)

// Version is reported by the root banner
const Version = "1.0.0"

// Services groups the dependencies the handlers are built from
type Services struct {
	Quiz    *service.QuizService
	Chat    *service.ChatService
	Study   *service.StudyService
	Bank    *quizbank.Bank
	Classes *catalog.Catalog
}

var registerValidators sync.Once

// Router sets up all API routes
func Router(cfg *config.Config, svc Services) *gin.Engine {
	registerValidators.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("notblank", validators.NotBlank)
		}
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Apply middlewares
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(util.NewLogger("HTTP")))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	// Create handlers
	healthHandler := handler.NewHealthHandler(Version)
	quizHandler := handler.NewQuizHandler(svc.Quiz)
	chatHandler := handler.NewChatHandler(svc.Chat)
	studyHandler := handler.NewStudyHandler(svc.Study, svc.Bank, svc.Classes)

	// Health check
	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Check)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	// Quiz API routes
	quizzes := api.Group("/quizzes")
	{
		quizzes.POST("", quizHandler.Create)
		quizzes.GET("", quizHandler.List)
		quizzes.GET("/:id", quizHandler.Get)
		quizzes.PUT("/:id", quizHandler.Update)
		quizzes.DELETE("/:id", quizHandler.Delete)
		quizzes.POST("/:id/submit", quizHandler.Submit)
	}

	// Chat API routes
	api.POST("/chat", chatHandler.Handle)
	sessions := api.Group("/chat/sessions")
	{
		sessions.POST("", chatHandler.CreateSession)
		sessions.GET("", chatHandler.ListSessions)
		sessions.GET("/:id", chatHandler.GetSession)
		sessions.PUT("/:id/title", chatHandler.RenameSession)
		sessions.DELETE("/:id", chatHandler.DeleteSession)
		sessions.DELETE("/:id/messages", chatHandler.ClearMessages)
	}

	// Study material routes
	api.POST("/flashcards", studyHandler.Flashcards)
	api.POST("/quiz", studyHandler.Quiz)
	api.POST("/quiz/generate", studyHandler.BankQuiz)
	api.GET("/classes", studyHandler.Classes)

	return router
}
