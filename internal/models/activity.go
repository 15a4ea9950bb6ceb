package models

import (
	"strings"
	"time"
)

// Canonical activity statuses. Stored values are always canonical; free-text
// labels from legacy clients are normalized at write time.
const (
	StatusUpcoming = "upcoming"
	StatusOpen     = "open"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

// NormalizeStatus maps a status label onto a canonical status value.
// Vietnamese free-text labels are recognized by their marker substrings
// ("mở" open, "đang" ongoing, "kết" finished); unknown labels fall back to
// upcoming.
func NormalizeStatus(label string) string {
	normalized := strings.ToLower(strings.TrimSpace(label))
	switch normalized {
	case StatusUpcoming, StatusOpen, StatusOngoing, StatusFinished:
		return normalized
	}

	switch {
	case strings.Contains(normalized, "mở"):
		return StatusOpen
	case strings.Contains(normalized, "đang"):
		return StatusOngoing
	case strings.Contains(normalized, "kết"):
		return StatusFinished
	}
	return StatusUpcoming
}

// Activity represents a schedulable event members can register for.
// Code is the short shareable display identifier, distinct from the primary
// key; it stays nil until the allocator assigns one.
type Activity struct {
	ID           string     `gorm:"primaryKey;size:32" json:"id"`
	Code         *string    `gorm:"size:3;uniqueIndex:ux_activities_code" json:"code"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Type         string     `gorm:"size:100" json:"type"`
	Unit         string     `gorm:"size:100" json:"unit"`
	ActivityDate *time.Time `json:"activity_date"`
	Location     string     `gorm:"size:255" json:"location"`
	Status       string     `gorm:"size:30;not null;default:upcoming" json:"status"`
	Description  string     `gorm:"size:2000" json:"description"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
