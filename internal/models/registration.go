package models

import "time"

// Registration records a user's intent to attend an activity. At most one
// row may exist per (user, activity) pair; cancellation deletes the row.
type Registration struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:ux_registrations_user_activity" json:"user_id"`
	ActivityID   string    `gorm:"size:32;not null;uniqueIndex:ux_registrations_user_activity" json:"activity_id"`
	RegisteredAt time.Time `gorm:"not null;autoCreateTime" json:"registered_at"`
}
