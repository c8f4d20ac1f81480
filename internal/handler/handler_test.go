package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"parley-chat/config"
	"parley-chat/internal/handler"
	"parley-chat/internal/repository"
	"parley-chat/internal/server"
	"parley-chat/internal/services"
	"parley-chat/internal/transport/httpdto"
	"parley-chat/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

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

	cfg := &config.Config{
		AppPort:      "0",
		AppMode:      server.TestMode,
		JWTSecret:    "test-secret",
		JWTExpiryMin: 60,
	}

	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	authService := services.NewAuthService(userRepo, cfg)
	handlers := &server.Handlers{
		Auth:    handler.NewAuthHandler(authService, nil),
		Chat:    handler.NewChatHandler(services.NewChatService(chatRepo, userRepo, messageRepo), nil),
		Message: handler.NewMessageHandler(services.NewMessageService(messageRepo, chatRepo), nil),
		User:    handler.NewUserHandler(services.NewUserService(userRepo), nil),
	}

	srv := server.New(cfg, nil, db)
	srv.SetupRoutes(handlers, authService)
	return srv.Engine()
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var res httpdto.Response[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res.Data
}

func registerUser(t *testing.T, engine *gin.Engine, username, email string) {
	t.Helper()
	rec := doJSON(t, engine, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": "pw12345",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func loginUser(t *testing.T, engine *gin.Engine, email string) (string, uint) {
	t.Helper()
	rec := doJSON(t, engine, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": "pw12345",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData[httpdto.LoginResponse](t, rec)
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken, data.User.ID
}
