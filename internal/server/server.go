package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/qoverflow/backend/internal/config"
	"github.com/qoverflow/backend/internal/database"
	"github.com/qoverflow/backend/internal/handlers"
	"github.com/qoverflow/backend/internal/logger"
	"github.com/qoverflow/backend/internal/middleware"
	"github.com/qoverflow/backend/internal/notify"
)

type Server struct {
	cfg     *config.Config
	db      database.Service
	handler *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer(cfg *config.Config) *http.Server {
	db := database.New(cfg)

	notifier := notify.NewSMSNotifier(cfg, logger.Logger)
	handler := handlers.NewHandler(db.GetDB(), cfg, notifier)

	newServer := &Server{
		cfg:     cfg,
		db:      db,
		handler: handler,
	}

	router := newServer.RegisterRoutes()

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.ServerPort,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Sugar.Infow("server configured", "port", cfg.ServerPort, "sms_enabled", notifier.Enabled())

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Public reads. OptionalAuth lets vote correction run for
		// signed-in viewers before counts are served.
		public := api.Group("")
		public.Use(middleware.OptionalAuth(s.cfg.JWTSecret))
		{
			public.GET("/questions", s.handler.Question.GetQuestions)
			public.GET("/questions/:id", s.handler.Question.GetQuestion)
			public.GET("/questions/:id/comments", s.handler.Comment.GetQuestionComments)
			public.GET("/answers/:id", s.handler.Answer.GetAnswer)
			public.GET("/answers/:id/comments", s.handler.Comment.GetAnswerComments)
			public.GET("/users/:id", s.handler.User.GetUserProfile)
		}

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(s.cfg.JWTSecret))
		{
			protected.GET("/me", s.handler.Auth.GetMe)

			protected.POST("/questions", s.handler.Question.CreateQuestion)
			protected.DELETE("/questions/:id", s.handler.Question.DeleteQuestion)
			protected.POST("/questions/:id/vote", s.handler.Question.VoteQuestion)
			protected.POST("/questions/:id/answers", s.handler.Answer.CreateAnswer)
			protected.POST("/questions/:id/answers/:answerId/accept", s.handler.Question.AcceptAnswer)
			protected.POST("/questions/:id/comments", s.handler.Comment.CreateQuestionComment)

			protected.POST("/answers/:id/vote", s.handler.Answer.VoteAnswer)
			protected.POST("/answers/:id/comments", s.handler.Comment.CreateAnswerComment)

			protected.PUT("/users/:id", s.handler.User.UpdateUserProfile)
		}
	}

	return r
}
