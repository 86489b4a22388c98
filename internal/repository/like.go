package repository

import (
	"context"
	"log/slog"

	"forumapi/internal/models"
	"forumapi/internal/observability"

	"gorm.io/gorm"
)

// LikeRepository defines the comment like storage contract. The store keeps
// at most one row per (comment, owner); AddLike on an existing pair fails
// with a CONFLICT error.
type LikeRepository interface {
	CheckLikeExist(ctx context.Context, commentID, userID string) (bool, error)
	AddLike(ctx context.Context, commentID, userID string) error
	RemoveLike(ctx context.Context, commentID, userID string) error
	CountLikesByCommentID(ctx context.Context, commentID string) (int64, error)
}

type likeRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db, log: observability.NewRepoLogger("comment_likes")}
}

func (r *likeRepository) CheckLikeExist(ctx context.Context, commentID, userID string) (bool, error) {
	defer observability.TrackQuery("count", "comment_likes")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("comment_id = ? AND owner = ?", commentID, userID).
		Count(&count).Error
	if err != nil {
		return false, storageError(ctx, r.log, "check like", err)
	}
	return count > 0, nil
}

func (r *likeRepository) AddLike(ctx context.Context, commentID, userID string) error {
	defer observability.TrackQuery("insert", "comment_likes")()

	like := models.CommentLike{CommentID: commentID, Owner: userID, Date: r.db.NowFunc()}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		return storageError(ctx, r.log, "add like", err)
	}
	r.log.LogCreate(ctx, slog.String("comment_id", commentID), slog.String("owner", userID))
	return nil
}

func (r *likeRepository) RemoveLike(ctx context.Context, commentID, userID string) error {
	defer observability.TrackQuery("delete", "comment_likes")()

	err := r.db.WithContext(ctx).
		Where("comment_id = ? AND owner = ?", commentID, userID).
		Delete(&models.CommentLike{}).Error
	if err != nil {
		return storageError(ctx, r.log, "remove like", err)
	}
	r.log.LogDelete(ctx, slog.String("comment_id", commentID), slog.String("owner", userID))
	return nil
}

func (r *likeRepository) CountLikesByCommentID(ctx context.Context, commentID string) (int64, error) {
	defer observability.TrackQuery("count", "comment_likes")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	if err != nil {
		return 0, storageError(ctx, r.log, "count likes", err)
	}
	return count, nil
}
