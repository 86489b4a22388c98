package models

// User is the minimal account row the forum reads usernames from.
// Accounts are provisioned outside this service.
type User struct {
	ID       string `gorm:"primaryKey;size:50" json:"id"`
	Username string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Fullname string `gorm:"type:text" json:"fullname"`
}

func (User) TableName() string { return "users" }
