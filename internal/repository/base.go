// Package repository provides the storage adapters behind the forum's
// repository contracts.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"forumapi/internal/models"
	"forumapi/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fixed id prefixes.
const (
	PrefixUser    = "user"
	PrefixThread  = "thread"
	PrefixComment = "comment"
	PrefixReply   = "reply"
)

// Domain messages returned by existence and ownership checks.
const (
	msgThreadNotFound  = "thread tidak ditemukan"
	msgCommentNotFound = "komentar tidak ditemukan"
	msgReplyNotFound   = "balasan tidak ditemukan"
	msgForbidden       = "akses dilarang"
	msgUserNotFound    = "pengguna tidak ditemukan"
)

// IDGenerator produces identifiers of the form "<prefix>-<suffix>".
type IDGenerator interface {
	NewID(prefix string) string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func(prefix string) string

func (f IDGeneratorFunc) NewID(prefix string) string { return f(prefix) }

type uuidGenerator struct{}

// NewUUIDGenerator returns a generator backed by random UUIDs.
func NewUUIDGenerator() IDGenerator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID(prefix string) string {
	return prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// storageError wraps a driver failure, logging it and translating the cases
// callers act on.
func storageError(ctx context.Context, log *observability.RepoLogger, operation string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewConflictError("data sudah ada", err)
	}
	// Parents other than the owner are verified before every write, so a
	// dangling reference means the caller's user row is gone.
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		appErr := models.NewUnauthorizedError(msgUserNotFound)
		appErr.Err = err
		return appErr
	}
	log.LogError(ctx, err, operation)
	return fmt.Errorf("%s: %w", operation, err)
}
