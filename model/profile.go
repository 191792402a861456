package model

import (
	"time"

	"gorm.io/datatypes"
)

// Profile holds the optional extended profile for a user.
type Profile struct {
	UserID    int64          `gorm:"primaryKey" json:"user_id"`
	FirstName string         `gorm:"size:64" json:"first_name"`
	LastName  string         `gorm:"size:64" json:"last_name"`
	Sex       string         `gorm:"size:8" json:"sex"`
	Birthday  datatypes.Date `json:"birthday"`
	Pref      string         `gorm:"size:16" json:"pref"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}
