package server

import (
	"net/http"
	"testing"

	"forumapi/internal/models"
	"forumapi/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostThread(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.addUser(t, "dicoding")

	t.Run("created", func(t *testing.T) {
		status, resp := env.do(t, http.MethodPost, "/threads",
			map[string]any{"title": "sebuah thread", "body": "sebuah body thread"}, token)
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, "sebuah thread", field(t, resp.Data, "addedThread", "title"))
		assert.Equal(t, userID, field(t, resp.Data, "addedThread", "owner"))
		assert.Regexp(t, `^thread-`, field(t, resp.Data, "addedThread", "id"))
	})

	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"missing body field", map[string]any{"title": "sebuah thread"},
			"tidak dapat membuat thread baru karena properti yang dibutuhkan tidak ada"},
		{"empty request", nil,
			"tidak dapat membuat thread baru karena properti yang dibutuhkan tidak ada"},
		{"wrong type", map[string]any{"title": "sebuah thread", "body": true},
			"tidak dapat membuat thread baru karena tipe data tidak sesuai"},
		{"not json", "{oops", "payload harus berupa objek JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := env.do(t, http.MethodPost, "/threads", tt.body, token)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "fail", resp.Status)
			assert.Equal(t, tt.message, resp.Message)
		})
	}

	t.Run("requires authentication", func(t *testing.T) {
		status, resp := env.do(t, http.MethodPost, "/threads",
			map[string]any{"title": "t", "body": "b"}, "")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Missing authentication", resp.Message)
	})
}

func TestGetThread_NotFound(t *testing.T) {
	env := newTestEnv(t)

	status, resp := env.do(t, http.MethodGet, "/threads/thread-404", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "fail", resp.Status)
	assert.Equal(t, "thread tidak ditemukan", resp.Message)
}

// TestThreadDetailFlow drives every route against one thread and checks the
// assembled detail.
func TestThreadDetailFlow(t *testing.T) {
	env := newTestEnv(t)
	_, ownerToken := env.addUser(t, "dicoding")
	_, otherToken := env.addUser(t, "johndoe")
	_, thirdToken := env.addUser(t, "janedoe")

	status, resp := env.do(t, http.MethodPost, "/threads",
		map[string]any{"title": "T1", "body": "thread body"}, ownerToken)
	require.Equal(t, http.StatusCreated, status)
	threadID := field(t, resp.Data, "addedThread", "id").(string)
	base := "/threads/" + threadID

	addComment := func(token, content string) string {
		status, resp := env.do(t, http.MethodPost, base+"/comments", map[string]any{"content": content}, token)
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, content, field(t, resp.Data, "addedComment", "content"))
		return field(t, resp.Data, "addedComment", "id").(string)
	}
	c1 := addComment(otherToken, "a comment")
	c2 := addComment(otherToken, "a deleted comment")

	addReply := func(token, commentID, content string) string {
		status, resp := env.do(t, http.MethodPost, base+"/comments/"+commentID+"/replies",
			map[string]any{"content": content}, token)
		require.Equal(t, http.StatusCreated, status)
		return field(t, resp.Data, "addedReply", "id").(string)
	}
	r1 := addReply(ownerToken, c1, "a reply")
	r2 := addReply(otherToken, c1, "a deleted reply")

	// Only the author may delete.
	status, resp = env.do(t, http.MethodDelete, base+"/comments/"+c2, nil, ownerToken)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "akses dilarang", resp.Message)

	status, resp = env.do(t, http.MethodDelete, base+"/comments/"+c2, nil, otherToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", resp.Status)

	// Deleting again is a no-op.
	status, _ = env.do(t, http.MethodDelete, base+"/comments/"+c2, nil, otherToken)
	assert.Equal(t, http.StatusOK, status)

	status, _ = env.do(t, http.MethodDelete, base+"/comments/"+c1+"/replies/"+r2, nil, ownerToken)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = env.do(t, http.MethodDelete, base+"/comments/"+c1+"/replies/"+r2, nil, otherToken)
	require.Equal(t, http.StatusOK, status)

	like := func(token, commentID string) {
		status, resp := env.do(t, http.MethodPut, base+"/comments/"+commentID+"/likes", nil, token)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "success", resp.Status)
	}
	like(ownerToken, c1)
	like(thirdToken, c1)
	like(otherToken, c1)
	like(otherToken, c1)

	status, resp = env.do(t, http.MethodGet, base, nil, "")
	require.Equal(t, http.StatusOK, status)
	thread := field(t, resp.Data, "thread")

	assert.Equal(t, threadID, field(t, thread, "id"))
	assert.Equal(t, "T1", field(t, thread, "title"))
	assert.Equal(t, "dicoding", field(t, thread, "username"))
	assert.NotEmpty(t, field(t, thread, "date"))

	comments := field(t, thread, "comments").([]any)
	require.Len(t, comments, 2)

	assert.Equal(t, c1, field(t, comments, 0, "id"))
	assert.Equal(t, "johndoe", field(t, comments, 0, "username"))
	assert.Equal(t, "a comment", field(t, comments, 0, "content"))
	assert.Equal(t, float64(2), field(t, comments, 0, "likeCount"))

	assert.Equal(t, c2, field(t, comments, 1, "id"))
	assert.Equal(t, models.DeletedCommentPlaceholder, field(t, comments, 1, "content"))
	assert.Equal(t, float64(0), field(t, comments, 1, "likeCount"))
	assert.Empty(t, field(t, comments, 1, "replies"))

	replies := field(t, comments, 0, "replies").([]any)
	require.Len(t, replies, 2)
	assert.Equal(t, r1, field(t, replies, 0, "id"))
	assert.Equal(t, "a reply", field(t, replies, 0, "content"))
	assert.Equal(t, "dicoding", field(t, replies, 0, "username"))
	assert.Equal(t, r2, field(t, replies, 1, "id"))
	assert.Equal(t, models.DeletedReplyPlaceholder, field(t, replies, 1, "content"))
}

func TestNestedResourceChecks(t *testing.T) {
	env := newTestEnv(t)
	_, ownerToken := env.addUser(t, "dicoding")
	_, strangerToken := env.addUser(t, "johndoe")

	newThread := func() string {
		status, resp := env.do(t, http.MethodPost, "/threads",
			map[string]any{"title": "t", "body": "b"}, ownerToken)
		require.Equal(t, http.StatusCreated, status)
		return field(t, resp.Data, "addedThread", "id").(string)
	}
	t1, t2 := newThread(), newThread()

	status, resp := env.do(t, http.MethodPost, "/threads/"+t1+"/comments", map[string]any{"content": "c"}, ownerToken)
	require.Equal(t, http.StatusCreated, status)
	commentID := field(t, resp.Data, "addedComment", "id").(string)

	tests := []struct {
		name    string
		method  string
		path    string
		body    any
		token   string
		status  int
		message string
	}{
		{"comment on missing thread", http.MethodPost, "/threads/thread-404/comments", map[string]any{"content": "c"}, ownerToken, http.StatusNotFound, "thread tidak ditemukan"},
		{"comment content wrong type", http.MethodPost, "/threads/" + t1 + "/comments", map[string]any{"content": 123}, ownerToken, http.StatusBadRequest, "komentar harus berupa string"},
		{"reply under comment of other thread", http.MethodPost, "/threads/" + t2 + "/comments/" + commentID + "/replies", map[string]any{"content": "r"}, ownerToken, http.StatusNotFound, "komentar tidak ditemukan"},
		{"stranger deleting missing comment", http.MethodDelete, "/threads/" + t1 + "/comments/comment-404", nil, strangerToken, http.StatusNotFound, "komentar tidak ditemukan"},
		{"delete missing reply", http.MethodDelete, "/threads/" + t1 + "/comments/" + commentID + "/replies/reply-404", nil, strangerToken, http.StatusNotFound, "balasan tidak ditemukan"},
		{"like on missing comment", http.MethodPut, "/threads/" + t1 + "/comments/comment-404/likes", nil, ownerToken, http.StatusNotFound, "komentar tidak ditemukan"},
		{"like without token", http.MethodPut, "/threads/" + t1 + "/comments/" + commentID + "/likes", nil, "", http.StatusUnauthorized, "Missing authentication"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := env.do(t, tt.method, tt.path, tt.body, tt.token)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, "fail", resp.Status)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestNewServerWithRepositories_RejectsMissingAdapter(t *testing.T) {
	_, err := NewServerWithRepositories(testConfig(), nil, nil, service.Repositories{})
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeMethodNotImplemented))
}
