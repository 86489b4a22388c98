// Command devtoken prints an access token for a user, creating the user
// when -create is set. It is meant for local development only.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"forumapi/internal/config"
	"forumapi/internal/database"
	"forumapi/internal/models"
	"forumapi/internal/repository"
	"forumapi/internal/server"
)

func main() {
	username := flag.String("username", "dicoding", "username to issue the token for")
	create := flag.Bool("create", false, "create the user if it does not exist")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("devtoken refuses to run with APP_ENV=production")
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	users := repository.NewUserRepository(db, repository.NewUUIDGenerator())
	user, err := users.GetUserByUsername(ctx, *username)
	if models.IsNotFound(err) && *create {
		user, err = users.AddUser(ctx, *username, *username)
	}
	if err != nil {
		log.Fatalf("Failed to resolve user %q: %v", *username, err)
	}

	token, err := server.IssueToken(cfg, user.ID, *ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}
