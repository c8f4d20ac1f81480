package main

import (
	"flag"
	"log"

	"parley-chat/config"
	"parley-chat/pkg/database"
)

func main() {
	password := flag.String("password", "password", "password assigned to all seeded users")
	keep := flag.Bool("keep", false, "keep existing tables instead of dropping them")
	flag.Parse()

	cfg := config.LoadConfig()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	result, err := database.Seed(db, &database.SeedConfig{
		Password: *password,
		Reset:    !*keep,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Database seeding completed: %d users, %d chats, %d messages",
		len(result.Users), len(result.Chats), len(result.Messages))
}
