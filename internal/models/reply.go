package models

import "time"

// Reply is a second-level reply attached to a comment.
type Reply struct {
	ID        string    `gorm:"primaryKey;size:50" json:"id"`
	CommentID string    `gorm:"size:50;not null;index:idx_replies_comment_date,priority:1" json:"commentId"`
	Owner     string    `gorm:"size:50;not null" json:"owner"`
	Date      time.Time `gorm:"not null;index:idx_replies_comment_date,priority:2" json:"date"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	IsDelete  bool      `gorm:"not null;default:false" json:"isDelete"`

	Username string `gorm:"->;-:migration" json:"username"`
}

func (Reply) TableName() string { return "replies" }
