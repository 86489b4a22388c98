package models

import "time"

// Comment is a first-level reply to a thread. Deleting a comment only flips
// IsDelete; the stored content is kept.
type Comment struct {
	ID       string    `gorm:"primaryKey;size:50" json:"id"`
	ThreadID string    `gorm:"size:50;not null;index:idx_comments_thread_date,priority:1" json:"threadId"`
	Owner    string    `gorm:"size:50;not null" json:"owner"`
	Date     time.Time `gorm:"not null;index:idx_comments_thread_date,priority:2" json:"date"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	IsDelete bool      `gorm:"not null;default:false" json:"isDelete"`

	Username string `gorm:"->;-:migration" json:"username"`
}

func (Comment) TableName() string { return "comments" }
