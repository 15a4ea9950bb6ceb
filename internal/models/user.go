package models

import "time"

// Role values assignable to a user account.
const (
	RoleUser      = "user"
	RoleSecretary = "secretary"
	RoleAdmin     = "admin"
)

// ValidRole reports whether the given role is one of the assignable roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleSecretary, RoleAdmin:
		return true
	}
	return false
}

// User represents a portal account. Email and student id are each unique.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"size:255;not null" json:"fullName"`
	StudentID    string    `gorm:"size:32;uniqueIndex;not null" json:"studentId"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:32;not null;default:user" json:"role"`
	Locked       bool      `gorm:"not null;default:false" json:"locked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
