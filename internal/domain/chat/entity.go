package chat

import (
	"database/sql"
	"fmt"
	"time"

	"parley-chat/internal/domain/user"
)

// Chat represents the chats table. PairKey is the normalized participant
// pair ("min:max" of the two user ids); its unique index closes the race
// where two users create the same 1:1 chat concurrently.
type Chat struct {
	ID        uint           `gorm:"primaryKey"`
	PairKey   sql.NullString `gorm:"size:64;uniqueIndex"`
	CreatedAt time.Time

	// Relationships
	Participants []Participant `gorm:"constraint:OnDelete:CASCADE"`
}

// Participant represents the participants join table. The composite
// primary key keeps a (chat, user) pair unique.
type Participant struct {
	ChatID   uint `gorm:"primaryKey"`
	UserID   uint `gorm:"primaryKey"`
	JoinedAt time.Time

	// Relationships
	User user.User `gorm:"constraint:OnDelete:CASCADE"`
}

// DirectPairKey normalizes two user ids into the unique pair key.
func DirectPairKey(userID1, userID2 uint) string {
	if userID2 < userID1 {
		userID1, userID2 = userID2, userID1
	}
	return fmt.Sprintf("%d:%d", userID1, userID2)
}

func (Chat) TableName() string {
	return "chats"
}

func (Participant) TableName() string {
	return "participants"
}
