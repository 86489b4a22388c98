// Command seed fills the forum database with demo threads, comments,
// replies and likes.
package main

import (
	"context"
	"flag"
	"log"

	"forumapi/internal/config"
	"forumapi/internal/database"
	"forumapi/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()
	numUsers := flag.Int("users", defaults.Users, "Number of users to create")
	numThreads := flag.Int("threads", defaults.Threads, "Number of threads to create")
	comments := flag.Int("comments", defaults.CommentsPerThread, "Comments per thread")
	replies := flag.Int("replies", defaults.RepliesPerComment, "Replies per comment")
	deleteRatio := flag.Float64("delete-ratio", defaults.DeleteRatio, "Share of comments and replies to soft-delete")
	likeRatio := flag.Float64("like-ratio", defaults.LikeRatio, "Chance a user likes a comment")
	rngSeed := flag.Int64("seed", 0, "Random seed (0 for time-based)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Printf("Target: %d users, %d threads, clean=%v\n", *numUsers, *numThreads, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("seed refuses to run with APP_ENV=production")
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		Users:             *numUsers,
		Threads:           *numThreads,
		CommentsPerThread: *comments,
		RepliesPerComment: *replies,
		DeleteRatio:       *deleteRatio,
		LikeRatio:         *likeRatio,
		Seed:              *rngSeed,
	})

	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	sum, err := s.Run(ctx)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d threads, %d comments, %d replies, %d likes (%d soft-deleted)\n",
		sum.Users, sum.Threads, sum.Comments, sum.Replies, sum.Likes, sum.Deleted)
}
