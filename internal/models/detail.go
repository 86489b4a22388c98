package models

import "time"

// Placeholders shown instead of soft-deleted content.
const (
	DeletedCommentPlaceholder = "**komentar telah dihapus**"
	DeletedReplyPlaceholder   = "**balasan telah dihapus**"
)

// ThreadDetail is the nested read view of a thread. It is assembled per
// request and never persisted.
type ThreadDetail struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Body     string          `json:"body"`
	Date     time.Time       `json:"date"`
	Username string          `json:"username"`
	Comments []CommentDetail `json:"comments"`
}

type CommentDetail struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Date      time.Time     `json:"date"`
	Content   string        `json:"content"`
	LikeCount int64         `json:"likeCount"`
	Replies   []ReplyDetail `json:"replies"`
}

type ReplyDetail struct {
	ID       string    `json:"id"`
	Content  string    `json:"content"`
	Date     time.Time `json:"date"`
	Username string    `json:"username"`
}
