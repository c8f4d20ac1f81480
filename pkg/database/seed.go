package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"parley-chat/internal/domain/chat"
	"parley-chat/internal/domain/message"
	"parley-chat/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	Password string
	Reset    bool
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		Password: "password",
		Reset:    true,
	}
}

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	Users    []*user.User
	Chats    []*chat.Chat
	Messages []*message.Message
}

// Seed populates the database with demo users, chats and messages.
func Seed(db *gorm.DB, cfg *SeedConfig) (*SeedResult, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}

	if cfg.Reset {
		log.Println("Dropping existing tables...")
		if err := db.Migrator().DropTable(
			&message.Message{},
			&chat.Participant{},
			&chat.Chat{},
			&user.User{},
		); err != nil {
			return nil, fmt.Errorf("failed to drop tables: %w", err)
		}
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	alice := &user.User{Username: "Alice", Email: "alice@test.com", PasswordHash: string(hash)}
	bob := &user.User{Username: "Bob", Email: "bob@test.com", PasswordHash: string(hash)}
	charlie := &user.User{Username: "Charlie", Email: "charlie@test.com", PasswordHash: string(hash)}

	users := []*user.User{alice, bob, charlie}
	for _, u := range users {
		if err := db.Create(u).Error; err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", u.Username, err)
		}
	}
	log.Println("Created users: Alice, Bob, Charlie")

	now := time.Now()
	chatAB := &chat.Chat{
		PairKey: sql.NullString{String: chat.DirectPairKey(alice.ID, bob.ID), Valid: true},
		Participants: []chat.Participant{
			{UserID: alice.ID, JoinedAt: now},
			{UserID: bob.ID, JoinedAt: now},
		},
	}
	chatAC := &chat.Chat{
		PairKey: sql.NullString{String: chat.DirectPairKey(alice.ID, charlie.ID), Valid: true},
		Participants: []chat.Participant{
			{UserID: alice.ID, JoinedAt: now},
			{UserID: charlie.ID, JoinedAt: now},
		},
	}

	chats := []*chat.Chat{chatAB, chatAC}
	for _, c := range chats {
		if err := db.Create(c).Error; err != nil {
			return nil, fmt.Errorf("failed to seed chat: %w", err)
		}
	}
	log.Println("Created chats.")

	messages := []*message.Message{
		{Content: "Hi Bob! How is the project?", AuthorID: &alice.ID, ChatID: chatAB.ID},
		{Content: "Hey Alice. It is going well!", AuthorID: &bob.ID, ChatID: chatAB.ID},
		{Content: "Welcome Charlie!", AuthorID: &alice.ID, ChatID: chatAC.ID},
	}
	for _, m := range messages {
		if err := db.Create(m).Error; err != nil {
			return nil, fmt.Errorf("failed to seed message: %w", err)
		}
	}
	log.Println("Added sample messages.")

	return &SeedResult{Users: users, Chats: chats, Messages: messages}, nil
}
