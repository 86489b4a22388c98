package repository

import (
	"context"
	"errors"
	"log/slog"

	"forumapi/internal/models"
	"forumapi/internal/observability"

	"gorm.io/gorm"
)

// UserRepository provisions and looks up the accounts content is attributed to.
// Registration itself lives outside this service; seeding and tooling use it.
type UserRepository interface {
	AddUser(ctx context.Context, username, fullname string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type userRepository struct {
	db  *gorm.DB
	ids IDGenerator
	log *observability.RepoLogger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB, ids IDGenerator) UserRepository {
	return &userRepository{db: db, ids: ids, log: observability.NewRepoLogger("users")}
}

// AddUser fails with CONFLICT when the username is taken.
func (r *userRepository) AddUser(ctx context.Context, username, fullname string) (*models.User, error) {
	defer observability.TrackQuery("insert", "users")()

	user := models.User{ID: r.ids.NewID(PrefixUser), Username: username, Fullname: fullname}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, storageError(ctx, r.log, "add user", err)
	}
	r.log.LogCreate(ctx, slog.String("id", user.ID), slog.String("username", username))
	return &user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	defer observability.TrackQuery("select", "users")()

	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("user tidak ditemukan")
	}
	if err != nil {
		return nil, storageError(ctx, r.log, "get user", err)
	}
	return &user, nil
}
