package models

import "time"

// News is a published article on the public site. The dashboard only needs
// the row count; the public listing filters by group and title.
type News struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	GroupName   string     `gorm:"size:100" json:"group"`
	Excerpt     string     `gorm:"size:2000" json:"excerpt"`
	ImageURL    string     `gorm:"size:512" json:"image"`
	PublishDate *time.Time `json:"publish_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
