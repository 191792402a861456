package model

import "time"

// Footprint records one profile-view event. Column naming is inherited from
// the schema and is inverted from intuition: user_id is the profile owner
// being viewed, owner_id is the viewer. The struct fields use the explicit
// names; only the column mapping preserves the legacy layout.
type Footprint struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileOwnerID int64     `gorm:"column:user_id;index;not null" json:"user_id"`
	ViewerID       int64     `gorm:"column:owner_id;not null" json:"owner_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
