package model

import "time"

// Entry is a diary entry. The first line of Body is the title, the rest is
// the content; the split happens at read time, never in storage.
type Entry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	Private   bool      `gorm:"not null;default:false" json:"private"`
	Body      string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// Comment is a comment on a diary entry.
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EntryID   int64     `gorm:"index;not null" json:"entry_id"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
