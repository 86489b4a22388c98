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

// ReplyRepository defines the reply storage contract. It mirrors
// CommentRepository one level down.
type ReplyRepository interface {
	AddReply(ctx context.Context, commentID string, reply *models.NewReply, owner string) (*models.AddedReply, error)
	// GetRepliesByThreadID returns every reply under every comment of the
	// thread in one query, oldest first. Equal dates come in id order.
	GetRepliesByThreadID(ctx context.Context, threadID string) ([]*models.Reply, error)
	GetRepliesByCommentID(ctx context.Context, commentID string) ([]*models.Reply, error)
	VerifyReplyExist(ctx context.Context, commentID, replyID string) error
	VerifyReplyOwner(ctx context.Context, replyID, userID string) error
	DeleteReplyByID(ctx context.Context, replyID string) error
}

type replyRepository struct {
	db  *gorm.DB
	ids IDGenerator
	log *observability.RepoLogger
}

// NewReplyRepository creates a new ReplyRepository
func NewReplyRepository(db *gorm.DB, ids IDGenerator) ReplyRepository {
	return &replyRepository{db: db, ids: ids, log: observability.NewRepoLogger("replies")}
}

func (r *replyRepository) AddReply(ctx context.Context, commentID string, reply *models.NewReply, owner string) (*models.AddedReply, error) {
	defer observability.TrackQuery("insert", "replies")()

	row := models.Reply{
		ID:        r.ids.NewID(PrefixReply),
		CommentID: commentID,
		Owner:     owner,
		Date:      r.db.NowFunc(),
		Content:   reply.Content,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, storageError(ctx, r.log, "add reply", err)
	}
	r.log.LogCreate(ctx, slog.String("id", row.ID), slog.String("comment_id", commentID))

	return validation.AddedReply(validation.Payload{
		"id":      row.ID,
		"content": row.Content,
		"owner":   row.Owner,
	})
}

func (r *replyRepository) withUsername(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Reply{}).
		Select("replies.*, users.username").
		Joins("LEFT JOIN users ON users.id = replies.owner")
}

func (r *replyRepository) GetRepliesByThreadID(ctx context.Context, threadID string) ([]*models.Reply, error) {
	defer observability.TrackQuery("select", "replies")()

	var replies []*models.Reply
	err := r.withUsername(ctx).
		Joins("JOIN comments ON comments.id = replies.comment_id").
		Where("comments.thread_id = ?", threadID).
		Order("replies.date ASC, replies.id ASC").
		Find(&replies).Error
	if err != nil {
		return nil, storageError(ctx, r.log, "list thread replies", err)
	}
	return replies, nil
}

func (r *replyRepository) GetRepliesByCommentID(ctx context.Context, commentID string) ([]*models.Reply, error) {
	defer observability.TrackQuery("select", "replies")()

	var replies []*models.Reply
	err := r.withUsername(ctx).
		Where("replies.comment_id = ?", commentID).
		Order("replies.date ASC, replies.id ASC").
		Find(&replies).Error
	if err != nil {
		return nil, storageError(ctx, r.log, "list comment replies", err)
	}
	return replies, nil
}

func (r *replyRepository) VerifyReplyExist(ctx context.Context, commentID, replyID string) error {
	defer observability.TrackQuery("count", "replies")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reply{}).
		Where("id = ? AND comment_id = ?", replyID, commentID).
		Count(&count).Error
	if err != nil {
		return storageError(ctx, r.log, "verify reply", err)
	}
	if count == 0 {
		return models.NewNotFoundError(msgReplyNotFound)
	}
	return nil
}

func (r *replyRepository) VerifyReplyOwner(ctx context.Context, replyID, userID string) error {
	defer observability.TrackQuery("select", "replies")()

	var owner string
	err := r.db.WithContext(ctx).
		Model(&models.Reply{}).
		Select("owner").
		Where("id = ?", replyID).
		Take(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(msgReplyNotFound)
	}
	if err != nil {
		return storageError(ctx, r.log, "verify reply owner", err)
	}
	if owner != userID {
		return models.NewForbiddenError(msgForbidden)
	}
	return nil
}

// DeleteReplyByID sets the soft-delete flag; repeating it is a no-op.
func (r *replyRepository) DeleteReplyByID(ctx context.Context, replyID string) error {
	defer observability.TrackQuery("update", "replies")()

	result := r.db.WithContext(ctx).
		Model(&models.Reply{}).
		Where("id = ?", replyID).
		Update("is_delete", true)
	if result.Error != nil {
		return storageError(ctx, r.log, "delete reply", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError(msgReplyNotFound)
	}
	r.log.LogDelete(ctx, slog.String("id", replyID))
	return nil
}
