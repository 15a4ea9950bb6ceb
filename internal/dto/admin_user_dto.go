package dto

// AdminUserCreateRequest creates an account with an explicit role.
type AdminUserCreateRequest struct {
	FullName  string `json:"fullName" validate:"required,min=1,max=255"`
	StudentID string `json:"studentId" validate:"required,min=1,max=32"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	Role      string `json:"role" validate:"required,oneof=user secretary admin"`
}

// AdminUserUpdateRequest replaces the mutable profile fields of an account.
type AdminUserUpdateRequest struct {
	FullName  string `json:"fullName" validate:"required,min=1,max=255"`
	StudentID string `json:"studentId" validate:"required,min=1,max=32"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Role      string `json:"role" validate:"required,oneof=user secretary admin"`
}

// AdminUserRoleRequest changes only the role of an account.
type AdminUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user secretary admin"`
}

// AdminUserLockRequest locks or unlocks an account.
type AdminUserLockRequest struct {
	Lock *bool `json:"lock" validate:"required"`
}
