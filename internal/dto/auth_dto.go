package dto

// RegisterRequest is the public account-registration payload.
type RegisterRequest struct {
	FullName  string `json:"fullName" validate:"required,min=1,max=255"`
	StudentID string `json:"studentId" validate:"required,min=1,max=32"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest accepts an email or a student id as the login identity.
// Legacy clients send the identity under different keys; the handler
// coalesces them before calling the service.
type LoginRequest struct {
	EmailOrStudentID string `json:"emailOrStudentId"`
	Email            string `json:"email"`
	StudentID        string `json:"studentId"`
	Password         string `json:"password" validate:"required"`
}

// Identity returns the first populated identity field.
func (r LoginRequest) Identity() string {
	if r.EmailOrStudentID != "" {
		return r.EmailOrStudentID
	}
	if r.Email != "" {
		return r.Email
	}
	return r.StudentID
}

// ChangePasswordRequest updates the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

// UserResponse serializes account data for auth and admin endpoints.
type UserResponse struct {
	ID        uint   `json:"id"`
	FullName  string `json:"fullName"`
	StudentID string `json:"studentId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Locked    bool   `json:"locked"`
}

// LoginResponse carries the signed token alongside the account profile.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
