package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	engine := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice",
		"email":    "alice@test.com",
		"password": "pw12345",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Same email again, different username
	rec = doJSON(t, engine, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice2",
		"email":    "alice@test.com",
		"password": "pw12345",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestRegisterEndpoint_MissingFields(t *testing.T) {
	engine := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice",
		"email":    "alice@test.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	engine := newTestRouter(t)
	registerUser(t, engine, "alice", "alice@test.com")

	token, _ := loginUser(t, engine, "alice@test.com")
	assert.NotEmpty(t, token)
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	engine := newTestRouter(t)
	registerUser(t, engine, "alice", "alice@test.com")

	wrongPassword := doJSON(t, engine, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@test.com",
		"password": "wrong",
	})
	unknownEmail := doJSON(t, engine, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ghost@test.com",
		"password": "pw12345",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// Same body for both, no account enumeration
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestAuthRequired(t *testing.T) {
	engine := newTestRouter(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/chats"},
		{http.MethodGet, "/api/users?q=a"},
		{http.MethodGet, "/api/profile"},
		{http.MethodDelete, "/api/profile"},
	} {
		rec := doJSON(t, engine, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}

	rec := doJSON(t, engine, http.MethodGet, "/api/chats", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
