package main

import (
	"context"
	"log"
	"time"

	"ripple-chat/config"
	"ripple-chat/internal/handler"
	"ripple-chat/internal/identity"
	"ripple-chat/internal/persist"
	"ripple-chat/internal/redis"
	"ripple-chat/internal/server"
	"ripple-chat/internal/services"
	"ripple-chat/internal/session"
	"ripple-chat/internal/store"
	"ripple-chat/pkg/database"
	"ripple-chat/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()
	l := logger.New(cfg.AppMode)
	logger.SetGlobalLogger(l)

	// Connect to Database
	database.Connect(cfg)

	// Run GORM AutoMigrate for Tables
	if err := database.DB.AutoMigrate(&identity.Profile{}); err != nil {
		log.Fatalf("Failed to apply GORM migrations: %v", err)
	}

	redisClient := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	snapshots := persist.NewAsync(persist.NewRedisStore(redisClient), l)
	notifier := store.NewNotifier()

	contacts := store.NewContactDirectory(snapshots, notifier)
	messages := store.NewMessageLedger(snapshots, notifier)
	stories := store.NewStoryLedger(snapshots, notifier)

	restoreCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := contacts.Restore(restoreCtx); err != nil {
		l.Errorf("Restoring contacts: %s", err)
	}
	if err := messages.Restore(restoreCtx); err != nil {
		l.Errorf("Restoring conversations: %s", err)
	}
	if err := stories.Restore(restoreCtx); err != nil {
		l.Errorf("Restoring stories: %s", err)
	}

	presence := redis.NewPresenceStore(redisClient, time.Duration(cfg.PresenceTTL)*time.Second)
	limiterCfg := redis.DefaultRateLimitConfig()
	limiterCfg.MessageLimit = cfg.RateLimit
	limiter := redis.NewRateLimiter(redisClient, limiterCfg)

	sess := session.New(identity.NewPostgresProvider(database.DB))

	authService := services.NewAuthService(sess, presence, cfg)
	contactService := services.NewContactService(contacts, presence, l)
	messagingService := services.NewMessagingService(messages, contacts)
	storyService := services.NewStoryService(stories)

	handlers := &server.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Contact: handler.NewContactHandler(contactService),
		Message: handler.NewMessageHandler(messagingService),
		Story:   handler.NewStoryHandler(storyService),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, authService, limiter)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
