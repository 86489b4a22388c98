package models

import "time"

// Thread is a top-level discussion post. Threads are immutable once created.
type Thread struct {
	ID    string    `gorm:"primaryKey;size:50" json:"id"`
	Title string    `gorm:"type:text;not null" json:"title"`
	Body  string    `gorm:"type:text;not null" json:"body"`
	Date  time.Time `gorm:"not null" json:"date"`
	Owner string    `gorm:"size:50;not null;index" json:"owner"`

	// Username is resolved by joining users on read.
	Username string `gorm:"->;-:migration" json:"username"`
}

func (Thread) TableName() string { return "threads" }
