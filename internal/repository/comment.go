package repository

import (
	"context"
	"errors"
	"log/slog"

	"forumapi/internal/models"
	"forumapi/internal/observability"
	"forumapi/internal/validation"

	"gorm.io/gorm"
)

// CommentRepository defines the comment storage contract. Every lookup is
// scoped to the thread, so a comment id under another thread is not found.
type CommentRepository interface {
	AddComment(ctx context.Context, threadID string, comment *models.NewComment, owner string) (*models.AddedComment, error)
	// GetCommentsByThreadID returns the thread's comments oldest first,
	// including soft-deleted ones. Comments with equal dates come in id order.
	GetCommentsByThreadID(ctx context.Context, threadID string) ([]*models.Comment, error)
	VerifyCommentExist(ctx context.Context, threadID, commentID string) error
	VerifyCommentOwner(ctx context.Context, threadID, commentID, userID string) error
	DeleteComment(ctx context.Context, threadID, commentID string) error
}

type commentRepository struct {
	db  *gorm.DB
	ids IDGenerator
	log *observability.RepoLogger
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB, ids IDGenerator) CommentRepository {
	return &commentRepository{db: db, ids: ids, log: observability.NewRepoLogger("comments")}
}

func (r *commentRepository) AddComment(ctx context.Context, threadID string, comment *models.NewComment, owner string) (*models.AddedComment, error) {
	defer observability.TrackQuery("insert", "comments")()

	row := models.Comment{
		ID:       r.ids.NewID(PrefixComment),
		ThreadID: threadID,
		Owner:    owner,
		Date:     r.db.NowFunc(),
		Content:  comment.Content,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, storageError(ctx, r.log, "add comment", err)
	}
	r.log.LogCreate(ctx, slog.String("id", row.ID), slog.String("thread_id", threadID))

	return validation.AddedComment(validation.Payload{
		"id":      row.ID,
		"content": row.Content,
		"owner":   row.Owner,
	})
}

func (r *commentRepository) GetCommentsByThreadID(ctx context.Context, threadID string) ([]*models.Comment, error) {
	defer observability.TrackQuery("select", "comments")()

	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("comments.*, users.username").
		Joins("LEFT JOIN users ON users.id = comments.owner").
		Where("comments.thread_id = ?", threadID).
		Order("comments.date ASC, comments.id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, storageError(ctx, r.log, "list comments", err)
	}
	return comments, nil
}

func (r *commentRepository) VerifyCommentExist(ctx context.Context, threadID, commentID string) error {
	defer observability.TrackQuery("count", "comments")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ? AND thread_id = ?", commentID, threadID).
		Count(&count).Error
	if err != nil {
		return storageError(ctx, r.log, "verify comment", err)
	}
	if count == 0 {
		return models.NewNotFoundError(msgCommentNotFound)
	}
	return nil
}

func (r *commentRepository) VerifyCommentOwner(ctx context.Context, threadID, commentID, userID string) error {
	defer observability.TrackQuery("select", "comments")()

	var owner string
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("owner").
		Where("id = ? AND thread_id = ?", commentID, threadID).
		Take(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(msgCommentNotFound)
	}
	if err != nil {
		return storageError(ctx, r.log, "verify comment owner", err)
	}
	if owner != userID {
		return models.NewForbiddenError(msgForbidden)
	}
	return nil
}

// DeleteComment sets the soft-delete flag. Deleting an already deleted
// comment succeeds without changing anything.
func (r *commentRepository) DeleteComment(ctx context.Context, threadID, commentID string) error {
	defer observability.TrackQuery("update", "comments")()

	result := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ? AND thread_id = ?", commentID, threadID).
		Update("is_delete", true)
	if result.Error != nil {
		return storageError(ctx, r.log, "delete comment", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError(msgCommentNotFound)
	}
	r.log.LogDelete(ctx, slog.String("id", commentID), slog.String("thread_id", threadID))
	return nil
}
