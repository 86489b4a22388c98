package service

import (
	"context"
	"time"

	"forumapi/internal/cache"
	"forumapi/internal/models"
	"forumapi/internal/observability"
	"forumapi/internal/repository"
	"forumapi/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

type ThreadService struct {
	threadRepo  repository.ThreadRepository
	commentRepo repository.CommentRepository
	replyRepo   repository.ReplyRepository
	likeRepo    repository.LikeRepository
	detailCache *cache.ThreadDetailCache
}

type AddThreadInput struct {
	Owner   string
	Payload validation.Payload
}

// NewThreadService wires the thread use cases. detailCache may be nil.
func NewThreadService(repos Repositories, detailCache *cache.ThreadDetailCache) *ThreadService {
	return &ThreadService{
		threadRepo:  repos.Threads,
		commentRepo: repos.Comments,
		replyRepo:   repos.Replies,
		likeRepo:    repos.Likes,
		detailCache: detailCache,
	}
}

func (s *ThreadService) AddThread(ctx context.Context, in AddThreadInput) (*models.AddedThread, error) {
	thread, err := validation.NewThread(in.Payload)
	if err != nil {
		return nil, err
	}
	added, err := s.threadRepo.AddThread(ctx, thread, in.Owner)
	if err != nil {
		return nil, err
	}
	observability.ContentWrites.WithLabelValues("thread", "create").Inc()
	return added, nil
}

// GetThreadDetail returns the thread with its comments, their replies and
// like counts, with soft-deleted content masked.
func (s *ThreadService) GetThreadDetail(ctx context.Context, threadID string) (*models.ThreadDetail, error) {
	return s.detailCache.GetOrLoad(ctx, threadID, func(ctx context.Context) (*models.ThreadDetail, error) {
		return s.buildThreadDetail(ctx, threadID)
	})
}

func (s *ThreadService) buildThreadDetail(ctx context.Context, threadID string) (detail *models.ThreadDetail, err error) {
	span, ctx := observability.NewSpan(ctx, "thread.detail", attribute.String("thread.id", threadID))
	start := time.Now()
	defer func() {
		observability.ThreadDetailBuild.Observe(time.Since(start).Seconds())
		span.SetError(err)
		span.End()
	}()

	thread, err := s.threadRepo.GetThreadByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.GetCommentsByThreadID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	replies, err := s.replyRepo.GetRepliesByThreadID(ctx, threadID)
	if err != nil {
		return nil, err
	}

	likeCounts := make(map[string]int64, len(comments))
	for _, c := range comments {
		n, err := s.likeRepo.CountLikesByCommentID(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		likeCounts[c.ID] = n
	}

	span.AddAttributes(
		attribute.Int("thread.comments", len(comments)),
		attribute.Int("thread.replies", len(replies)),
	)
	return assembleThreadDetail(thread, comments, replies, likeCounts), nil
}
