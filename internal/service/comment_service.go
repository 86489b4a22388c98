package service

import (
	"context"

	"forumapi/internal/cache"
	"forumapi/internal/models"
	"forumapi/internal/observability"
	"forumapi/internal/repository"
	"forumapi/internal/validation"
)

type CommentService struct {
	threadRepo  repository.ThreadRepository
	commentRepo repository.CommentRepository
	detailCache *cache.ThreadDetailCache
}

type AddCommentInput struct {
	ThreadID string
	Owner    string
	Payload  validation.Payload
}

type DeleteCommentInput struct {
	ThreadID  string
	CommentID string
	Owner     string
}

func NewCommentService(repos Repositories, detailCache *cache.ThreadDetailCache) *CommentService {
	return &CommentService{
		threadRepo:  repos.Threads,
		commentRepo: repos.Comments,
		detailCache: detailCache,
	}
}

func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.AddedComment, error) {
	comment, err := validation.NewComment(in.Payload)
	if err != nil {
		return nil, err
	}
	if err := s.threadRepo.VerifyThreadExist(ctx, in.ThreadID); err != nil {
		return nil, err
	}

	added, err := s.commentRepo.AddComment(ctx, in.ThreadID, comment, in.Owner)
	if err != nil {
		return nil, err
	}
	s.detailCache.Invalidate(ctx, in.ThreadID)
	observability.ContentWrites.WithLabelValues("comment", "create").Inc()
	return added, nil
}

// DeleteComment soft-deletes a comment owned by in.Owner. Existence is
// checked before ownership, so a missing comment is never reported as
// forbidden.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	if err := s.threadRepo.VerifyThreadExist(ctx, in.ThreadID); err != nil {
		return err
	}
	if err := s.commentRepo.VerifyCommentExist(ctx, in.ThreadID, in.CommentID); err != nil {
		return err
	}
	if err := s.commentRepo.VerifyCommentOwner(ctx, in.ThreadID, in.CommentID, in.Owner); err != nil {
		return err
	}
	if err := s.commentRepo.DeleteComment(ctx, in.ThreadID, in.CommentID); err != nil {
		return err
	}
	s.detailCache.Invalidate(ctx, in.ThreadID)
	observability.ContentWrites.WithLabelValues("comment", "delete").Inc()
	return nil
}
