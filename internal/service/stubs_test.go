package service

import (
	"context"
	"testing"

	"forumapi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threadRepoStub is a stub for repository.ThreadRepository.
type threadRepoStub struct {
	addThreadFn     func(context.Context, *models.NewThread, string) (*models.AddedThread, error)
	getThreadByIDFn func(context.Context, string) (*models.Thread, error)
	verifyExistFn   func(context.Context, string) error
}

func (s *threadRepoStub) AddThread(ctx context.Context, thread *models.NewThread, owner string) (*models.AddedThread, error) {
	return s.addThreadFn(ctx, thread, owner)
}
func (s *threadRepoStub) GetThreadByID(ctx context.Context, id string) (*models.Thread, error) {
	return s.getThreadByIDFn(ctx, id)
}
func (s *threadRepoStub) VerifyThreadExist(ctx context.Context, id string) error {
	return s.verifyExistFn(ctx, id)
}

func noopThreadRepo() *threadRepoStub {
	return &threadRepoStub{
		addThreadFn: func(_ context.Context, t *models.NewThread, owner string) (*models.AddedThread, error) {
			return &models.AddedThread{ID: "thread-123", Title: t.Title, Owner: owner}, nil
		},
		getThreadByIDFn: func(_ context.Context, id string) (*models.Thread, error) {
			return &models.Thread{ID: id, Title: "a thread", Body: "a body", Username: "dicoding"}, nil
		},
		verifyExistFn: func(_ context.Context, _ string) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	addCommentFn  func(context.Context, string, *models.NewComment, string) (*models.AddedComment, error)
	listFn        func(context.Context, string) ([]*models.Comment, error)
	verifyExistFn func(context.Context, string, string) error
	verifyOwnerFn func(context.Context, string, string, string) error
	deleteFn      func(context.Context, string, string) error
}

func (s *commentRepoStub) AddComment(ctx context.Context, threadID string, comment *models.NewComment, owner string) (*models.AddedComment, error) {
	return s.addCommentFn(ctx, threadID, comment, owner)
}
func (s *commentRepoStub) GetCommentsByThreadID(ctx context.Context, threadID string) ([]*models.Comment, error) {
	return s.listFn(ctx, threadID)
}
func (s *commentRepoStub) VerifyCommentExist(ctx context.Context, threadID, commentID string) error {
	return s.verifyExistFn(ctx, threadID, commentID)
}
func (s *commentRepoStub) VerifyCommentOwner(ctx context.Context, threadID, commentID, userID string) error {
	return s.verifyOwnerFn(ctx, threadID, commentID, userID)
}
func (s *commentRepoStub) DeleteComment(ctx context.Context, threadID, commentID string) error {
	return s.deleteFn(ctx, threadID, commentID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		addCommentFn: func(_ context.Context, _ string, c *models.NewComment, owner string) (*models.AddedComment, error) {
			return &models.AddedComment{ID: "comment-123", Content: c.Content, Owner: owner}, nil
		},
		listFn:        func(_ context.Context, _ string) ([]*models.Comment, error) { return nil, nil },
		verifyExistFn: func(_ context.Context, _, _ string) error { return nil },
		verifyOwnerFn: func(_ context.Context, _, _, _ string) error { return nil },
		deleteFn:      func(_ context.Context, _, _ string) error { return nil },
	}
}

// replyRepoStub is a stub for repository.ReplyRepository.
type replyRepoStub struct {
	addReplyFn      func(context.Context, string, *models.NewReply, string) (*models.AddedReply, error)
	listByThreadFn  func(context.Context, string) ([]*models.Reply, error)
	listByCommentFn func(context.Context, string) ([]*models.Reply, error)
	verifyExistFn   func(context.Context, string, string) error
	verifyOwnerFn   func(context.Context, string, string) error
	deleteFn        func(context.Context, string) error
}

func (s *replyRepoStub) AddReply(ctx context.Context, commentID string, reply *models.NewReply, owner string) (*models.AddedReply, error) {
	return s.addReplyFn(ctx, commentID, reply, owner)
}
func (s *replyRepoStub) GetRepliesByThreadID(ctx context.Context, threadID string) ([]*models.Reply, error) {
	return s.listByThreadFn(ctx, threadID)
}
func (s *replyRepoStub) GetRepliesByCommentID(ctx context.Context, commentID string) ([]*models.Reply, error) {
	return s.listByCommentFn(ctx, commentID)
}
func (s *replyRepoStub) VerifyReplyExist(ctx context.Context, commentID, replyID string) error {
	return s.verifyExistFn(ctx, commentID, replyID)
}
func (s *replyRepoStub) VerifyReplyOwner(ctx context.Context, replyID, userID string) error {
	return s.verifyOwnerFn(ctx, replyID, userID)
}
func (s *replyRepoStub) DeleteReplyByID(ctx context.Context, replyID string) error {
	return s.deleteFn(ctx, replyID)
}

func noopReplyRepo() *replyRepoStub {
	return &replyRepoStub{
		addReplyFn: func(_ context.Context, _ string, r *models.NewReply, owner string) (*models.AddedReply, error) {
			return &models.AddedReply{ID: "reply-123", Content: r.Content, Owner: owner}, nil
		},
		listByThreadFn:  func(_ context.Context, _ string) ([]*models.Reply, error) { return nil, nil },
		listByCommentFn: func(_ context.Context, _ string) ([]*models.Reply, error) { return nil, nil },
		verifyExistFn:   func(_ context.Context, _, _ string) error { return nil },
		verifyOwnerFn:   func(_ context.Context, _, _ string) error { return nil },
		deleteFn:        func(_ context.Context, _ string) error { return nil },
	}
}

// likeRepoStub keeps likes in memory so toggles observe their own writes.
type likeRepoStub struct {
	likes   map[[2]string]bool
	addErr  error
	checkFn func(context.Context, string, string) (bool, error)
}

func newLikeRepoStub() *likeRepoStub {
	return &likeRepoStub{likes: make(map[[2]string]bool)}
}

func (s *likeRepoStub) CheckLikeExist(ctx context.Context, commentID, userID string) (bool, error) {
	if s.checkFn != nil {
		return s.checkFn(ctx, commentID, userID)
	}
	return s.likes[[2]string{commentID, userID}], nil
}
func (s *likeRepoStub) AddLike(_ context.Context, commentID, userID string) error {
	if s.addErr != nil {
		return s.addErr
	}
	key := [2]string{commentID, userID}
	if s.likes[key] {
		return models.NewConflictError("data sudah ada", nil)
	}
	s.likes[key] = true
	return nil
}
func (s *likeRepoStub) RemoveLike(_ context.Context, commentID, userID string) error {
	delete(s.likes, [2]string{commentID, userID})
	return nil
}
func (s *likeRepoStub) CountLikesByCommentID(_ context.Context, commentID string) (int64, error) {
	var n int64
	for key := range s.likes {
		if key[0] == commentID {
			n++
		}
	}
	return n, nil
}

func stubRepos() (*threadRepoStub, *commentRepoStub, *replyRepoStub, *likeRepoStub, Repositories) {
	threads, comments, replies, likes := noopThreadRepo(), noopCommentRepo(), noopReplyRepo(), newLikeRepoStub()
	return threads, comments, replies, likes, Repositories{
		Threads:  threads,
		Comments: comments,
		Replies:  replies,
		Likes:    likes,
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, models.HasCode(err, code), "expected %s error, got %v", code, err)
}
