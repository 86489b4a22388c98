package validation

import (
	"errors"
	"testing"

	"forumapi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireReason(t *testing.T, err error, code, reason, message string) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, reason, appErr.Reason)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

func TestNewThread(t *testing.T) {
	t.Parallel()

	t.Run("missing body", func(t *testing.T) {
		t.Parallel()
		_, err := NewThread(Payload{"title": "a thread"})
		requireReason(t, err, models.CodeValidation, "NEW_THREAD.NOT_CONTAIN_NEEDED_PROPERTY",
			"tidak dapat membuat thread baru karena properti yang dibutuhkan tidak ada")
	})

	t.Run("empty title counts as missing", func(t *testing.T) {
		t.Parallel()
		_, err := NewThread(Payload{"title": "", "body": "x"})
		requireReason(t, err, models.CodeValidation, "NEW_THREAD.NOT_CONTAIN_NEEDED_PROPERTY", "")
	})

	t.Run("wrong type", func(t *testing.T) {
		t.Parallel()
		_, err := NewThread(Payload{"title": 123.0, "body": true})
		requireReason(t, err, models.CodeValidation, "NEW_THREAD.NOT_MEET_DATA_TYPE_SPECIFICATION",
			"tidak dapat membuat thread baru karena tipe data tidak sesuai")
	})

	t.Run("missing wins over wrong type", func(t *testing.T) {
		t.Parallel()
		_, err := NewThread(Payload{"title": 123.0})
		requireReason(t, err, models.CodeValidation, "NEW_THREAD.NOT_CONTAIN_NEEDED_PROPERTY", "")
	})

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		thread, err := NewThread(Payload{"title": "a thread", "body": "a body", "extra": 1})
		require.NoError(t, err)
		assert.Equal(t, &models.NewThread{Title: "a thread", Body: "a body"}, thread)
	})
}

func TestNewComment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload Payload
		reason  string
		message string
	}{
		{
			name:    "missing content",
			payload: Payload{},
			reason:  "NEW_COMMENT.NOT_CONTAIN_NEEDED_PROPERTY",
			message: "tidak dapat membuat komentar baru karena properti yang dibutuhkan tidak ada",
		},
		{
			name:    "null content",
			payload: Payload{"content": nil},
			reason:  "NEW_COMMENT.NOT_CONTAIN_NEEDED_PROPERTY",
			message: "tidak dapat membuat komentar baru karena properti yang dibutuhkan tidak ada",
		},
		{
			name:    "numeric content",
			payload: Payload{"content": 42.0},
			reason:  "NEW_COMMENT.NOT_MEET_DATA_TYPE_SPECIFICATION",
			message: "komentar harus berupa string",
		},
		{
			name:    "array content",
			payload: Payload{"content": []any{"a"}},
			reason:  "NEW_COMMENT.NOT_MEET_DATA_TYPE_SPECIFICATION",
			message: "komentar harus berupa string",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewComment(tc.payload)
			requireReason(t, err, models.CodeValidation, tc.reason, tc.message)
		})
	}

	comment, err := NewComment(Payload{"content": "a comment"})
	require.NoError(t, err)
	assert.Equal(t, "a comment", comment.Content)
}

func TestNewReply(t *testing.T) {
	t.Parallel()

	_, err := NewReply(Payload{})
	requireReason(t, err, models.CodeValidation, "NEW_REPLY.NOT_CONTAIN_NEEDED_PROPERTY",
		"tidak dapat membuat balasan baru karena properti yang dibutuhkan tidak ada")

	_, err = NewReply(Payload{"content": map[string]any{"text": "x"}})
	requireReason(t, err, models.CodeValidation, "NEW_REPLY.NOT_MEET_DATA_TYPE_SPECIFICATION",
		"balasan harus berupa string")

	reply, err := NewReply(Payload{"content": "a reply"})
	require.NoError(t, err)
	assert.Equal(t, "a reply", reply.Content)
}

func TestAddedThread(t *testing.T) {
	t.Parallel()

	_, err := AddedThread(Payload{"id": "thread-123", "title": "Hello World"})
	requireReason(t, err, models.CodeInternal, "ADDED_THREAD.NOT_CONTAIN_NEEDED_PROPERTY", "")

	_, err = AddedThread(Payload{"id": "thread-123", "title": "A thread", "owner": 123})
	requireReason(t, err, models.CodeInternal, "ADDED_THREAD.NOT_MEET_DATA_TYPE_SPECIFICATION", "")

	added, err := AddedThread(Payload{"id": "thread-123", "title": "A thread", "owner": "user-123"})
	require.NoError(t, err)
	assert.Equal(t, "thread-123", added.ID)
	assert.Equal(t, "A thread", added.Title)
	assert.Equal(t, "user-123", added.Owner)
}

func TestAddedCommentAndReply(t *testing.T) {
	t.Parallel()

	_, err := AddedComment(Payload{"id": "comment-1", "content": "x"})
	requireReason(t, err, models.CodeInternal, "ADDED_COMMENT.NOT_CONTAIN_NEEDED_PROPERTY", "")

	comment, err := AddedComment(Payload{"id": "comment-1", "content": "x", "owner": "user-1"})
	require.NoError(t, err)
	assert.Equal(t, &models.AddedComment{ID: "comment-1", Content: "x", Owner: "user-1"}, comment)

	_, err = AddedReply(Payload{"id": "reply-1", "content": 1, "owner": "user-1"})
	requireReason(t, err, models.CodeInternal, "ADDED_REPLY.NOT_MEET_DATA_TYPE_SPECIFICATION", "")

	reply, err := AddedReply(Payload{"id": "reply-1", "content": "y", "owner": "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "reply-1", reply.ID)
}
