package request

// CreateUserRequest represents an admin creating a staff or admin account
type CreateUserRequest struct {
	FirstName string `json:"first_name" binding:"required,min=2,max=255"`
	LastName  string `json:"last_name" binding:"max=255"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"omitempty,oneof=admin staff"`
}

// UpdateUserRolesRequest replaces a user's roles
type UpdateUserRolesRequest struct {
	Roles []string `json:"roles" binding:"required,min=1,dive,oneof=admin staff"`
}

// SetActiveRequest activates or deactivates a user
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}
