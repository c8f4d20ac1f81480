package message

import (
	"time"

	"parley-chat/internal/domain/chat"
	"parley-chat/internal/domain/user"
)

// Message represents the messages table. AuthorID is nulled when the
// authoring account is deleted so that chat history survives; ChatID is
// required and messages are removed with their chat.
type Message struct {
	ID        uint      `gorm:"primaryKey"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	AuthorID  *uint
	ChatID    uint `gorm:"not null;index"`

	// Relationships
	Author *user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`
	Chat   chat.Chat  `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
}

func (Message) TableName() string {
	return "messages"
}
