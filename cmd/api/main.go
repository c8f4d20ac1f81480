package main

import (
	"log"

	"parley-chat/config"
	"parley-chat/internal/handler"
	"parley-chat/internal/repository"
	"parley-chat/internal/server"
	"parley-chat/internal/services"
	"parley-chat/pkg/database"
	"parley-chat/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	logMode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		logMode = logger.ProductionMode
	}
	l := logger.New(logMode)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	authService := services.NewAuthService(userRepo, cfg)
	chatService := services.NewChatService(chatRepo, userRepo, messageRepo)
	messageService := services.NewMessageService(messageRepo, chatRepo)
	userService := services.NewUserService(userRepo)

	handlers := &server.Handlers{
		Auth:    handler.NewAuthHandler(authService, l),
		Chat:    handler.NewChatHandler(chatService, l),
		Message: handler.NewMessageHandler(messageService, l),
		User:    handler.NewUserHandler(userService, l),
	}

	srv := server.New(cfg, l, db)
	srv.SetupRoutes(handlers, authService)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
