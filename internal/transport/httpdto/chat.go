package httpdto

// CreateChatRequest is used for POST /api/chats
type CreateChatRequest struct {
	RecipientID uint `json:"recipient_id" binding:"required"`
}

// CreateChatResponse reports the chat id; AlreadyExists marks an
// idempotent hit on an existing chat for the pair
type CreateChatResponse struct {
	ChatID        uint `json:"chat_id"`
	AlreadyExists bool `json:"already_exists"`
}

// ChatSummaryDTO is one entry of GET /api/chats
type ChatSummaryDTO struct {
	ID              uint            `json:"id"`
	PartnerID       *uint           `json:"partner_id"`
	PartnerUsername string          `json:"partner_username"`
	LastMessage     *LastMessageDTO `json:"last_message,omitempty"`
}

// LastMessageDTO is the preview of the most recent message in a chat
type LastMessageDTO struct {
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}
