package service

import (
	"context"

	"forumapi/internal/cache"
	"forumapi/internal/models"
	"forumapi/internal/observability"
	"forumapi/internal/repository"
	"forumapi/internal/validation"
)

type ReplyService struct {
	threadRepo  repository.ThreadRepository
	commentRepo repository.CommentRepository
	replyRepo   repository.ReplyRepository
	detailCache *cache.ThreadDetailCache
}

type AddReplyInput struct {
	ThreadID  string
	CommentID string
	Owner     string
	Payload   validation.Payload
}

type DeleteReplyInput struct {
	ThreadID  string
	CommentID string
	ReplyID   string
	Owner     string
}

func NewReplyService(repos Repositories, detailCache *cache.ThreadDetailCache) *ReplyService {
	return &ReplyService{
		threadRepo:  repos.Threads,
		commentRepo: repos.Comments,
		replyRepo:   repos.Replies,
		detailCache: detailCache,
	}
}

func (s *ReplyService) AddReply(ctx context.Context, in AddReplyInput) (*models.AddedReply, error) {
	reply, err := validation.NewReply(in.Payload)
	if err != nil {
		return nil, err
	}
	if err := s.threadRepo.VerifyThreadExist(ctx, in.ThreadID); err != nil {
		return nil, err
	}
	if err := s.commentRepo.VerifyCommentExist(ctx, in.ThreadID, in.CommentID); err != nil {
		return nil, err
	}

	added, err := s.replyRepo.AddReply(ctx, in.CommentID, reply, in.Owner)
	if err != nil {
		return nil, err
	}
	s.detailCache.Invalidate(ctx, in.ThreadID)
	observability.ContentWrites.WithLabelValues("reply", "create").Inc()
	return added, nil
}

// DeleteReply walks thread, comment and reply existence before checking
// that in.Owner wrote the reply.
func (s *ReplyService) DeleteReply(ctx context.Context, in DeleteReplyInput) error {
	if err := s.threadRepo.VerifyThreadExist(ctx, in.ThreadID); err != nil {
		return err
	}
	if err := s.commentRepo.VerifyCommentExist(ctx, in.ThreadID, in.CommentID); err != nil {
		return err
	}
	if err := s.replyRepo.VerifyReplyExist(ctx, in.CommentID, in.ReplyID); err != nil {
		return err
	}
	if err := s.replyRepo.VerifyReplyOwner(ctx, in.ReplyID, in.Owner); err != nil {
		return err
	}
	if err := s.replyRepo.DeleteReplyByID(ctx, in.ReplyID); err != nil {
		return err
	}
	s.detailCache.Invalidate(ctx, in.ThreadID)
	observability.ContentWrites.WithLabelValues("reply", "delete").Inc()
	return nil
}
