package services_test

import (
	"context"
	"fmt"
	"testing"

	"parley-chat/config"
	"parley-chat/internal/domain/user"
	"parley-chat/internal/repository"
	"parley-chat/internal/services"
	"parley-chat/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A uniquely named shared in-memory database per test; one connection
	// so the schema survives for the whole test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:    "test-secret",
		JWTExpiryMin: 60,
	}
}

func createUser(t *testing.T, repo repository.UserRepository, username, email string) user.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	u := &user.User{Username: username, Email: email, PasswordHash: string(hash)}
	require.NoError(t, repo.Create(context.Background(), u))
	return *u
}

type fixture struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	chatRepo    repository.ChatRepository
	messageRepo repository.MessageRepository
	auth        *services.AuthService
	chats       *services.ChatService
	messages    *services.MessageService
	users       *services.UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	return &fixture{
		db:          db,
		userRepo:    userRepo,
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		auth:        services.NewAuthService(userRepo, testConfig()),
		chats:       services.NewChatService(chatRepo, userRepo, messageRepo),
		messages:    services.NewMessageService(messageRepo, chatRepo),
		users:       services.NewUserService(userRepo),
	}
}
