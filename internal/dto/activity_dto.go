package dto

import "time"

// ActivityFilter narrows the public activity listing. The literal "Tất cả"
// ("all") is treated the same as an empty filter.
type ActivityFilter struct {
	Type  string
	Unit  string
	Query string
}

// ActivityUpsertRequest is the admin create/update payload. ActivityDate is
// an RFC 3339 timestamp or a plain YYYY-MM-DD date.
type ActivityUpsertRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=255"`
	Type         string `json:"type" validate:"max=100"`
	Unit         string `json:"unit" validate:"max=100"`
	ActivityDate string `json:"activity_date" validate:"omitempty"`
	Location     string `json:"location" validate:"max=255"`
	Status       string `json:"status" validate:"max=30"`
	Description  string `json:"description" validate:"max=2000"`
}

// ActivityResponse serializes an activity for both public and admin reads.
type ActivityResponse struct {
	ID           string     `json:"id"`
	Code         *string    `json:"code"`
	Title        string     `json:"title"`
	Type         string     `json:"type"`
	Unit         string     `json:"unit"`
	ActivityDate *time.Time `json:"activity_date"`
	Location     string     `json:"location"`
	Status       string     `json:"status"`
	Description  string     `json:"description"`
}
