package service

import (
	"context"

	"forumapi/internal/cache"
	"forumapi/internal/models"
	"forumapi/internal/observability"
	"forumapi/internal/repository"
)

type LikeService struct {
	threadRepo  repository.ThreadRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	detailCache *cache.ThreadDetailCache
}

type ToggleLikeInput struct {
	ThreadID  string
	CommentID string
	Owner     string
}

func NewLikeService(repos Repositories, detailCache *cache.ThreadDetailCache) *LikeService {
	return &LikeService{
		threadRepo:  repos.Threads,
		commentRepo: repos.Comments,
		likeRepo:    repos.Likes,
		detailCache: detailCache,
	}
}

// ToggleLike likes the comment for in.Owner, or removes the like if one
// exists. A concurrent toggle that loses the race to add the same like fails
// with CONFLICT from the store's uniqueness constraint.
func (s *LikeService) ToggleLike(ctx context.Context, in ToggleLikeInput) (models.LikeAction, error) {
	if err := s.threadRepo.VerifyThreadExist(ctx, in.ThreadID); err != nil {
		return "", err
	}
	if err := s.commentRepo.VerifyCommentExist(ctx, in.ThreadID, in.CommentID); err != nil {
		return "", err
	}

	liked, err := s.likeRepo.CheckLikeExist(ctx, in.CommentID, in.Owner)
	if err != nil {
		return "", err
	}

	action := models.LikeAdded
	if liked {
		action = models.LikeRemoved
		err = s.likeRepo.RemoveLike(ctx, in.CommentID, in.Owner)
	} else {
		err = s.likeRepo.AddLike(ctx, in.CommentID, in.Owner)
	}
	if err != nil {
		return "", err
	}

	s.detailCache.Invalidate(ctx, in.ThreadID)
	observability.LikeToggles.WithLabelValues(string(action)).Inc()
	return action, nil
}
