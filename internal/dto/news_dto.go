package dto

import "time"

// NewsFilter narrows the public news listing.
type NewsFilter struct {
	Group string
	Query string
}

// NewsResponse serializes a published article for the public listing.
type NewsResponse struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Group       string     `json:"group"`
	Excerpt     string     `json:"excerpt"`
	Image       string     `json:"image"`
	PublishDate *time.Time `json:"publish_date"`
}

// NewsListResponse wraps the listing with a cache indicator.
type NewsListResponse struct {
	Items    []NewsResponse `json:"items"`
	CacheHit bool           `json:"cache_hit"`
}
