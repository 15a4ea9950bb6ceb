package dto

import "time"

// RegisteredActivityResponse is an activity the caller registered for,
// joined with the registration timestamp.
type RegisteredActivityResponse struct {
	ActivityResponse
	RegisteredAt time.Time `json:"registered_at"`
}

// RegistrationRef identifies the registering user in the admin report.
type RegistrationRef struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
}

// RegistrationActivityRef identifies the target activity in the admin report.
type RegistrationActivityRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// AdminRegistrationResponse is one row of the admin registrations report.
type AdminRegistrationResponse struct {
	ID           uint                    `json:"id"`
	RegisteredAt time.Time               `json:"registered_at"`
	User         RegistrationRef         `json:"user"`
	Activity     RegistrationActivityRef `json:"activity"`
}
