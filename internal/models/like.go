package models

import "time"

// CommentLike records that Owner likes CommentID. The composite primary key
// keeps at most one row per pair.
type CommentLike struct {
	CommentID string    `gorm:"primaryKey;size:50" json:"commentId"`
	Owner     string    `gorm:"primaryKey;size:50" json:"owner"`
	Date      time.Time `gorm:"not null" json:"date"`
}

func (CommentLike) TableName() string { return "comment_likes" }

// LikeAction is the outcome of a toggle.
type LikeAction string

const (
	LikeAdded   LikeAction = "liked"
	LikeRemoved LikeAction = "unliked"
)
