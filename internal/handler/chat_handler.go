package handler

import (
	"net/http"
	"time"

	"parley-chat/internal/services"
	"parley-chat/internal/transport/httpdto"
	"parley-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles chat listing and creation.
type ChatHandler struct {
	service *services.ChatService
	logger  *logger.Logger
}

func NewChatHandler(service *services.ChatService, l *logger.Logger) *ChatHandler {
	return &ChatHandler{service: service, logger: l}
}

// List returns every chat the caller participates in.
func (h *ChatHandler) List(c *gin.Context) {
	callerID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	summaries, err := h.service.ListChats(c.Request.Context(), callerID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	dtos := make([]httpdto.ChatSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		dto := httpdto.ChatSummaryDTO{
			ID:              s.ID,
			PartnerID:       s.PartnerID,
			PartnerUsername: s.PartnerUsername,
		}
		if s.LastMessage != nil {
			dto.LastMessage = &httpdto.LastMessageDTO{
				Content:   s.LastMessage.Content,
				Timestamp: s.LastMessage.Timestamp.Format(time.RFC3339),
			}
		}
		dtos = append(dtos, dto)
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(dtos))
}

// Create opens a 1:1 chat with the recipient, or returns the existing one.
// A fresh chat answers 201, an existing one 200.
func (h *ChatHandler) Create(c *gin.Context) {
	callerID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var req httpdto.CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("recipient_id is required", "INVALID_REQUEST"))
		return
	}

	res, err := h.service.CreateChat(c.Request.Context(), callerID, req.RecipientID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	status := http.StatusCreated
	if res.AlreadyExists {
		status = http.StatusOK
	}
	c.JSON(status, httpdto.NewSuccessResponse(httpdto.CreateChatResponse{
		ChatID:        res.ChatID,
		AlreadyExists: res.AlreadyExists,
	}))
}
