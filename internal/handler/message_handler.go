package handler

import (
	"net/http"
	"strconv"
	"time"

	"parley-chat/internal/domain/message"
	"parley-chat/internal/services"
	"parley-chat/internal/transport/httpdto"
	"parley-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

// MessageHandler handles message send, retrieval, edit and delete.
type MessageHandler struct {
	service *services.MessageService
	logger  *logger.Logger
}

func NewMessageHandler(service *services.MessageService, l *logger.Logger) *MessageHandler {
	return &MessageHandler{service: service, logger: l}
}

// Send handles POST /api/chats/:id/messages.
func (h *MessageHandler) Send(c *gin.Context) {
	callerID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	chatID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat id", "INVALID_REQUEST"))
		return
	}

	var req httpdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("message content is required", "INVALID_REQUEST"))
		return
	}

	m, err := h.service.Send(c.Request.Context(), callerID, chatID, req.Content)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(toMessageDTO(m)))
}

// History handles GET /api/chats/:id/messages with the three cursor
// modes: after_id (delta), before_id (backward page), neither (latest).
func (h *MessageHandler) History(c *gin.Context) {
	callerID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	chatID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat id", "INVALID_REQUEST"))
		return
	}

	q, err := parseHistoryQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid query parameter", "INVALID_REQUEST"))
		return
	}

	messages, err := h.service.History(c.Request.Context(), callerID, chatID, q)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	dtos := make([]httpdto.MessageDTO, 0, len(messages))
	for _, m := range messages {
		dtos = append(dtos, toMessageDTO(m))
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(dtos))
}

// Edit handles PUT /api/messages/:id.
func (h *MessageHandler) Edit(c *gin.Context) {
	callerID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	messageID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}

	var req httpdto.EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("message content is required", "INVALID_REQUEST"))
		return
	}

	m, err := h.service.Edit(c.Request.Context(), callerID, messageID, req.Content)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(toMessageDTO(m)))
}

// Delete handles DELETE /api/messages/:id.
func (h *MessageHandler) Delete(c *gin.Context) {
	callerID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	messageID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), callerID, messageID); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "message deleted"}))
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

func parseHistoryQuery(c *gin.Context) (services.HistoryQuery, error) {
	var q services.HistoryQuery

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return services.HistoryQuery{}, strconv.ErrSyntax
		}
		q.Limit = limit
	}
	if raw := c.Query("after_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return services.HistoryQuery{}, err
		}
		afterID := uint(id)
		q.AfterID = &afterID
	}
	if raw := c.Query("before_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return services.HistoryQuery{}, err
		}
		beforeID := uint(id)
		q.BeforeID = &beforeID
	}

	return q, nil
}

func toMessageDTO(m message.Message) httpdto.MessageDTO {
	return httpdto.MessageDTO{
		ID:        m.ID,
		Content:   m.Content,
		Timestamp: m.CreatedAt.Format(time.RFC3339),
		AuthorID:  m.AuthorID,
		ChatID:    m.ChatID,
	}
}
