// Package seed fills a database with demo forum content. Content is written
// through the same use cases the API uses, so seeded data obeys the same
// rules as real traffic. Development and testing only.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"forumapi/internal/middleware"
	"forumapi/internal/models"
	"forumapi/internal/repository"
	"forumapi/internal/service"
	"forumapi/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls how much content Run creates.
type Options struct {
	Users             int
	Threads           int
	CommentsPerThread int
	RepliesPerComment int
	// DeleteRatio is the share of comments and replies soft-deleted by their author.
	DeleteRatio float64
	// LikeRatio is the chance that a given user likes a given comment.
	LikeRatio float64
	// Seed makes runs reproducible; zero picks a time-based seed.
	Seed int64
}

func DefaultOptions() Options {
	return Options{
		Users:             8,
		Threads:           10,
		CommentsPerThread: 4,
		RepliesPerComment: 2,
		DeleteRatio:       0.15,
		LikeRatio:         0.3,
	}
}

// Summary counts what a run created.
type Summary struct {
	Users    int
	Threads  int
	Comments int
	Replies  int
	Deleted  int
	Likes    int
}

type Seeder struct {
	db       *gorm.DB
	opts     Options
	users    repository.UserRepository
	threads  *service.ThreadService
	comments *service.CommentService
	replies  *service.ReplyService
	likes    *service.LikeService
	faker    *gofakeit.Faker
	rng      *rand.Rand
}

// NewSeeder creates a Seeder bound to db. The detail cache is not used.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ids := repository.NewUUIDGenerator()
	repos := service.Repositories{
		Threads:  repository.NewThreadRepository(db, ids),
		Comments: repository.NewCommentRepository(db, ids),
		Replies:  repository.NewReplyRepository(db, ids),
		Likes:    repository.NewLikeRepository(db),
	}

	return &Seeder{
		db:       db,
		opts:     opts,
		users:    repository.NewUserRepository(db, ids),
		threads:  service.NewThreadService(repos, nil),
		comments: service.NewCommentService(repos, nil),
		replies:  service.NewReplyService(repos, nil),
		likes:    service.NewLikeService(repos, nil),
		faker:    gofakeit.New(seed),
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// ClearAll removes every forum row, children first.
func (s *Seeder) ClearAll(ctx context.Context) error {
	tables := []any{&models.CommentLike{}, &models.Reply{}, &models.Comment{}, &models.Thread{}, &models.User{}}
	for _, model := range tables {
		if err := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	middleware.Logger.InfoContext(ctx, "cleared forum tables")
	return nil
}

// Run creates users, then threads with comments, replies and likes.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	if s.opts.Users <= 0 {
		return nil, fmt.Errorf("seed: at least one user is required")
	}

	sum := &Summary{}
	users := make([]*models.User, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		username := fmt.Sprintf("%s%d", s.faker.Username(), i)
		user, err := s.users.AddUser(ctx, username, s.faker.Name())
		if err != nil {
			return nil, fmt.Errorf("seed user %s: %w", username, err)
		}
		users = append(users, user)
		sum.Users++
	}

	for i := 0; i < s.opts.Threads; i++ {
		if err := s.seedThread(ctx, users, sum); err != nil {
			return nil, err
		}
	}

	middleware.Logger.InfoContext(ctx, "seed complete",
		"users", sum.Users, "threads", sum.Threads, "comments", sum.Comments,
		"replies", sum.Replies, "deleted", sum.Deleted, "likes", sum.Likes)
	return sum, nil
}

func (s *Seeder) pick(users []*models.User) *models.User {
	return users[s.rng.Intn(len(users))]
}

func (s *Seeder) chance(p float64) bool {
	return s.rng.Float64() < p
}

func (s *Seeder) seedThread(ctx context.Context, users []*models.User, sum *Summary) error {
	author := s.pick(users)
	thread, err := s.threads.AddThread(ctx, service.AddThreadInput{
		Owner: author.ID,
		Payload: validation.Payload{
			"title": s.faker.Sentence(6),
			"body":  s.faker.Paragraph(1, 3, 12, "\n"),
		},
	})
	if err != nil {
		return fmt.Errorf("seed thread: %w", err)
	}
	sum.Threads++

	for i := 0; i < s.opts.CommentsPerThread; i++ {
		commenter := s.pick(users)
		comment, err := s.comments.AddComment(ctx, service.AddCommentInput{
			ThreadID: thread.ID,
			Owner:    commenter.ID,
			Payload:  validation.Payload{"content": s.faker.Sentence(12)},
		})
		if err != nil {
			return fmt.Errorf("seed comment: %w", err)
		}
		sum.Comments++

		for j := 0; j < s.opts.RepliesPerComment; j++ {
			if err := s.seedReply(ctx, thread.ID, comment.ID, s.pick(users), sum); err != nil {
				return err
			}
		}

		for _, u := range users {
			if !s.chance(s.opts.LikeRatio) {
				continue
			}
			if _, err := s.likes.ToggleLike(ctx, service.ToggleLikeInput{
				ThreadID: thread.ID, CommentID: comment.ID, Owner: u.ID,
			}); err != nil {
				return fmt.Errorf("seed like: %w", err)
			}
			sum.Likes++
		}

		if s.chance(s.opts.DeleteRatio) {
			if err := s.comments.DeleteComment(ctx, service.DeleteCommentInput{
				ThreadID: thread.ID, CommentID: comment.ID, Owner: commenter.ID,
			}); err != nil {
				return fmt.Errorf("seed comment delete: %w", err)
			}
			sum.Deleted++
		}
	}
	return nil
}

func (s *Seeder) seedReply(ctx context.Context, threadID, commentID string, author *models.User, sum *Summary) error {
	reply, err := s.replies.AddReply(ctx, service.AddReplyInput{
		ThreadID:  threadID,
		CommentID: commentID,
		Owner:     author.ID,
		Payload:   validation.Payload{"content": s.faker.Sentence(8)},
	})
	if err != nil {
		return fmt.Errorf("seed reply: %w", err)
	}
	sum.Replies++

	if s.chance(s.opts.DeleteRatio) {
		if err := s.replies.DeleteReply(ctx, service.DeleteReplyInput{
			ThreadID: threadID, CommentID: commentID, ReplyID: reply.ID, Owner: author.ID,
		}); err != nil {
			return fmt.Errorf("seed reply delete: %w", err)
		}
		sum.Deleted++
	}
	return nil
}
