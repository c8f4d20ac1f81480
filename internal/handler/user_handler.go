package handler

import (
	"net/http"

	"parley-chat/internal/services"
	"parley-chat/internal/transport/httpdto"
	"parley-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

// UserHandler handles user search and profile endpoints.
type UserHandler struct {
	service *services.UserService
	logger  *logger.Logger
}

func NewUserHandler(service *services.UserService, l *logger.Logger) *UserHandler {
	return &UserHandler{service: service, logger: l}
}

// Search handles GET /api/users?q=.
func (h *UserHandler) Search(c *gin.Context) {
	callerID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	results, err := h.service.Search(c.Request.Context(), callerID, c.Query("q"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	dtos := make([]httpdto.UserDTO, 0, len(results))
	for _, u := range results {
		dtos = append(dtos, httpdto.UserDTO{ID: u.ID, Username: u.Username, Email: u.Email})
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(dtos))
}

// GetProfile handles GET /api/profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	callerID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	info, err := h.service.GetProfile(c.Request.Context(), callerID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.UserDTO{
		ID:       info.ID,
		Username: info.Username,
		Email:    info.Email,
	}))
}

// UpdateProfile handles PUT /api/profile. Only supplied fields change.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	callerID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var req httpdto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	info, err := h.service.UpdateProfile(c.Request.Context(), callerID, services.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.UserDTO{
		ID:       info.ID,
		Username: info.Username,
		Email:    info.Email,
	}))
}

// DeleteProfile handles DELETE /api/profile.
func (h *UserHandler) DeleteProfile(c *gin.Context) {
	callerID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	if err := h.service.DeleteProfile(c.Request.Context(), callerID); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "account deleted successfully"}))
}
