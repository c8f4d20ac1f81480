package httpdto

// SendMessageRequest is used for POST /api/chats/{id}/messages
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// EditMessageRequest is used for PUT /api/messages/{id}
type EditMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// MessageDTO serializes a message; AuthorID is null once the authoring
// account has been deleted
type MessageDTO struct {
	ID        uint   `json:"id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	AuthorID  *uint  `json:"author_id"`
	ChatID    uint   `json:"chat_id"`
}
