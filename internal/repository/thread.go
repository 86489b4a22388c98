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

// ThreadRepository defines the thread storage contract.
type ThreadRepository interface {
	AddThread(ctx context.Context, thread *models.NewThread, owner string) (*models.AddedThread, error)
	// GetThreadByID returns the thread with its owner's username or a NOT_FOUND error.
	GetThreadByID(ctx context.Context, id string) (*models.Thread, error)
	VerifyThreadExist(ctx context.Context, id string) error
}

type threadRepository struct {
	db  *gorm.DB
	ids IDGenerator
	log *observability.RepoLogger
}

// NewThreadRepository creates a new ThreadRepository
func NewThreadRepository(db *gorm.DB, ids IDGenerator) ThreadRepository {
	return &threadRepository{db: db, ids: ids, log: observability.NewRepoLogger("threads")}
}

func (r *threadRepository) AddThread(ctx context.Context, thread *models.NewThread, owner string) (*models.AddedThread, error) {
	defer observability.TrackQuery("insert", "threads")()

	row := models.Thread{
		ID:    r.ids.NewID(PrefixThread),
		Title: thread.Title,
		Body:  thread.Body,
		Date:  r.db.NowFunc(),
		Owner: owner,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, storageError(ctx, r.log, "add thread", err)
	}
	r.log.LogCreate(ctx, slog.String("id", row.ID), slog.String("owner", owner))

	return validation.AddedThread(validation.Payload{
		"id":    row.ID,
		"title": row.Title,
		"owner": row.Owner,
	})
}

func (r *threadRepository) GetThreadByID(ctx context.Context, id string) (*models.Thread, error) {
	defer observability.TrackQuery("select", "threads")()

	var thread models.Thread
	err := r.db.WithContext(ctx).
		Model(&models.Thread{}).
		Select("threads.*, users.username").
		Joins("LEFT JOIN users ON users.id = threads.owner").
		Where("threads.id = ?", id).
		Take(&thread).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError(msgThreadNotFound)
	}
	if err != nil {
		return nil, storageError(ctx, r.log, "get thread", err)
	}
	return &thread, nil
}

func (r *threadRepository) VerifyThreadExist(ctx context.Context, id string) error {
	defer observability.TrackQuery("count", "threads")()

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Thread{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return storageError(ctx, r.log, "verify thread", err)
	}
	if count == 0 {
		return models.NewNotFoundError(msgThreadNotFound)
	}
	return nil
}
