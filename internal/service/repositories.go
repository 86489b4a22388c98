// Package service holds the forum use cases. Services depend only on the
// repository contracts; storage adapters are injected at wiring time.
package service

import (
	"forumapi/internal/models"
	"forumapi/internal/repository"
)

// Repositories bundles the storage adapters the use cases run against.
type Repositories struct {
	Threads  repository.ThreadRepository
	Comments repository.CommentRepository
	Replies  repository.ReplyRepository
	Likes    repository.LikeRepository
}

// Validate fails with METHOD_NOT_IMPLEMENTED for the first contract that has
// no adapter, so a half-wired server never starts.
func (r Repositories) Validate() error {
	switch {
	case r.Threads == nil:
		return models.NewMethodNotImplementedError("THREAD_REPOSITORY")
	case r.Comments == nil:
		return models.NewMethodNotImplementedError("COMMENT_REPOSITORY")
	case r.Replies == nil:
		return models.NewMethodNotImplementedError("REPLY_REPOSITORY")
	case r.Likes == nil:
		return models.NewMethodNotImplementedError("LIKE_REPOSITORY")
	}
	return nil
}
