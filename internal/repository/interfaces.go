package repository

import (
	"context"

	"parley-chat/internal/domain/chat"
	"parley-chat/internal/domain/message"
	"parley-chat/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uint) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByUsername(ctx context.Context, username string) (user.User, error)
	Search(ctx context.Context, query string, excludeID uint, limit int) ([]user.User, error)
	Update(ctx context.Context, u user.User) error
	Delete(ctx context.Context, id uint) error
}

type ChatRepository interface {
	Create(ctx context.Context, c *chat.Chat) error
	GetByID(ctx context.Context, id uint) (chat.Chat, error)
	Delete(ctx context.Context, id uint) error

	GetUserChats(ctx context.Context, userID uint) ([]chat.Chat, error)
	GetDirectChat(ctx context.Context, userID1, userID2 uint) (chat.Chat, error)

	AddParticipant(ctx context.Context, p *chat.Participant) error
	GetParticipants(ctx context.Context, chatID uint) ([]chat.Participant, error)
	IsParticipant(ctx context.Context, chatID, userID uint) (bool, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error
	GetByID(ctx context.Context, id uint) (message.Message, error)
	Update(ctx context.Context, m message.Message) error
	Delete(ctx context.Context, id uint) error

	// ListAfter returns every message with id > afterID, ascending.
	ListAfter(ctx context.Context, chatID, afterID uint) ([]message.Message, error)
	// ListBefore returns up to limit messages with id < beforeID, ascending.
	ListBefore(ctx context.Context, chatID, beforeID uint, limit int) ([]message.Message, error)
	// ListLatest returns up to limit most recent messages, ascending.
	ListLatest(ctx context.Context, chatID uint, limit int) ([]message.Message, error)
	GetLastChatMessage(ctx context.Context, chatID uint) (message.Message, error)
}
