package model

import "time"

// User is a registered member. Rows are created at registration and are
// read-only as far as this service is concerned.
type User struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountName string    `gorm:"uniqueIndex;size:64;not null" json:"account_name"`
	NickName    string    `gorm:"size:64" json:"nick_name"`
	Email       string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	Passhash    string    `gorm:"size:128;not null" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Salt is the per-user salt for the legacy SHA-512 password scheme.
type Salt struct {
	UserID int64  `gorm:"primaryKey" json:"user_id"`
	Salt   string `gorm:"size:16;not null" json:"-"`
}
