package entity

import (
	"time"

	"github.com/autospa/autospa-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a member of shop staff who can sign in to the console
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FirstName   string         `gorm:"size:255;not null" json:"first_name"`
	LastName    string         `gorm:"size:255" json:"last_name"`
	Email       string         `gorm:"size:255;unique;not null" json:"email"`
	Password    string         `gorm:"size:255" json:"-"`
	Provider    string         `gorm:"size:50;default:'local'" json:"provider"`
	ProviderID  *string        `gorm:"size:255" json:"-"`
	Photo       *string        `gorm:"size:255" json:"photo,omitempty"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Roles []Role `gorm:"many2many:user_roles;foreignKey:ID;joinForeignKey:user_id;References:ID;joinReferences:role_id" json:"roles,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Role represents a role in the RBAC system
type Role struct {
	ID          uint         `gorm:"primary_key" json:"id"`
	Name        string       `gorm:"size:255;not null;unique" json:"name"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Permissions []Permission `gorm:"many2many:role_permissions;foreignKey:ID;joinForeignKey:role_id;References:ID;joinReferences:permission_id" json:"permissions,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Permission represents a permission in the RBAC system
type Permission struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null;unique" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Permission) TableName() string {
	return "permissions"
}

// HasPermission checks if the user has a specific permission
func (u *User) HasPermission(permissionName string) bool {
	for _, role := range u.Roles {
		for _, permission := range role.Permissions {
			if permission.Name == permissionName {
				return true
			}
		}
	}
	return false
}

// HasRole checks if the user has a specific role
func (u *User) HasRole(roleName string) bool {
	for _, role := range u.Roles {
		if role.Name == roleName {
			return true
		}
	}
	return false
}

// RoleNames returns the names of the user's roles
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}

// PrimaryRole is admin when the user holds it, otherwise staff
func (u *User) PrimaryRole() string {
	if u.HasRole(enum.RoleAdmin) {
		return enum.RoleAdmin
	}
	return enum.RoleStaff
}

// GetPermissions returns all permission names for the user
func (u *User) GetPermissions() []string {
	seen := make(map[string]bool)
	result := make([]string, 0)
	for _, role := range u.Roles {
		for _, permission := range role.Permissions {
			if !seen[permission.Name] {
				seen[permission.Name] = true
				result = append(result, permission.Name)
			}
		}
	}
	return result
}
