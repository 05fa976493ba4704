package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ripple-chat/config"
	"ripple-chat/internal/handler"
	"ripple-chat/internal/middleware"
	"ripple-chat/internal/redis"
	"ripple-chat/internal/services"
	"ripple-chat/internal/transport/httpdto"
	"ripple-chat/pkg/database"
	"ripple-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Contact *handler.ContactHandler
	Message *handler.MessageHandler
	Story   *handler.StoryHandler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

func (s *Server) SetupRoutes(handlers *Handlers, authService *services.AuthService, limiter *redis.RateLimiter) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))
	if limiter != nil {
		s.engine.Use(middleware.RateLimitMiddleware(limiter))
	}

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
			return
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	auth := s.engine.Group("/v1/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/password/forgot", handlers.Auth.ResetPassword)
		auth.GET("/state", handlers.Auth.State)

		protected := auth.Group("", middleware.AuthMiddleware(authService))
		{
			protected.POST("/logout", handlers.Auth.Logout)
			protected.GET("/me", handlers.Auth.Me)
			protected.PATCH("/profile", handlers.Auth.UpdateProfile)
			protected.POST("/password", handlers.Auth.UpdatePassword)
			protected.DELETE("/account", handlers.Auth.DeleteAccount)
		}
	}

	contacts := s.engine.Group("/v1/contacts", middleware.AuthMiddleware(authService))
	{
		contacts.GET("", handlers.Contact.List)
		contacts.POST("", handlers.Contact.Add)
		contacts.POST("/refresh-presence", handlers.Contact.RefreshPresence)
		contacts.GET("/:user_id", handlers.Contact.Get)
		contacts.DELETE("/:user_id", handlers.Contact.Remove)
		contacts.PATCH("/:user_id/status", handlers.Contact.UpdateStatus)
	}

	conversations := s.engine.Group("/v1/conversations", middleware.AuthMiddleware(authService))
	{
		conversations.GET("", handlers.Message.Conversations)
		conversations.GET("/active", handlers.Message.ActiveConversation)
		conversations.PUT("/with/:participant_id", handlers.Message.OrCreateConversation)
		conversations.POST("/:conversation_id/activate", handlers.Message.Activate)
		conversations.GET("/:conversation_id/messages", handlers.Message.Messages)
		conversations.PATCH("/:conversation_id/messages/:message_id", handlers.Message.Edit)
		conversations.DELETE("/:conversation_id/messages/:message_id", handlers.Message.Delete)
	}

	messages := s.engine.Group("/v1/messages", middleware.AuthMiddleware(authService))
	if limiter != nil {
		messages.Use(middleware.MessageRateLimitMiddleware(limiter))
	}
	{
		messages.POST("", handlers.Message.Send)
		messages.POST("/incoming", handlers.Message.Receive)
		messages.POST("/read", handlers.Message.MarkRead)
		messages.POST("/delivered", handlers.Message.MarkDelivered)
	}

	stories := s.engine.Group("/v1/stories", middleware.AuthMiddleware(authService))
	{
		stories.GET("", handlers.Story.Visible)
		stories.GET("/active", handlers.Story.Active)
		stories.GET("/user/:user_id", handlers.Story.UserStories)
		stories.POST("", handlers.Story.Create)
		stories.POST("/:story_id/view", handlers.Story.View)
	}
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if s.logger != nil {
		s.logger.Infof("Server is running on :%s", s.config.AppPort)
	}

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
