package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/enum"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/pkg/apperror"
	"github.com/autospa/autospa-api/pkg/email"
	"github.com/autospa/autospa-api/pkg/pagination"
	"github.com/autospa/autospa-api/pkg/utils"
	"github.com/google/uuid"
)

// UserService handles staff account management
type UserService struct {
	userRepo       repository.UserRepository
	roleRepo       repository.RoleRepository
	permissionRepo repository.PermissionRepository
	mailer         email.Sender
}

// NewUserService creates a new user service. mailer may be nil.
func NewUserService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	permissionRepo repository.PermissionRepository,
	mailer email.Sender,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		mailer:         mailer,
	}
}

// ListUsers returns a paginated list of users with their roles
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	params.Validate()
	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// GetUser returns a user by ID with roles and permissions
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

// CreateUser adds a staff or admin account
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	address := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := s.userRepo.GetByEmail(ctx, address)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	roleName := input.Role
	if roleName == "" {
		roleName = enum.RoleStaff
	}
	role, err := s.roleRepo.GetByName(ctx, roleName)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperror.NewBadRequestError("Unknown role " + roleName)
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     address,
		Password:  hashedPassword,
		Provider:  "local",
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Email already registered")
		}
		return nil, err
	}
	if err := s.userRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
		return nil, err
	}

	log.Printf("[users] created %s user=%s", roleName, user.ID)
	if s.mailer != nil {
		if err := s.mailer.SendWelcomeEmail(user.Email, user.FullName()); err != nil {
			log.Printf("[users] welcome mail to %s: %v", user.Email, err)
		}
	}

	return s.userRepo.GetWithRoles(ctx, user.ID)
}

// UpdateUserRolesInput represents the input for updating user roles
type UpdateUserRolesInput struct {
	ActorID uuid.UUID
	UserID  uuid.UUID
	Roles   []string
}

// UpdateUserRoles sets the roles assigned to a user. Admins cannot remove
// their own admin role.
func (s *UserService) UpdateUserRoles(ctx context.Context, input *UpdateUserRolesInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	if len(input.Roles) == 0 {
		return nil, apperror.NewBadRequestError("At least one role is required")
	}

	roles, err := s.roleRepo.GetByNames(ctx, input.Roles)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(input.Roles) {
		return nil, apperror.NewBadRequestError("Unknown role in " + strings.Join(input.Roles, ", "))
	}

	ids := make([]uint, 0, len(roles))
	keepsAdmin := false
	for _, role := range roles {
		ids = append(ids, role.ID)
		keepsAdmin = keepsAdmin || role.Name == enum.RoleAdmin
	}
	if input.ActorID == input.UserID && !keepsAdmin {
		return nil, apperror.NewBadRequestError("You cannot remove your own admin role")
	}

	if err := s.userRepo.ReplaceRoles(ctx, input.UserID, ids); err != nil {
		return nil, err
	}
	return s.userRepo.GetWithRoles(ctx, input.UserID)
}

// SetActive enables or disables sign-in for a user
func (s *UserService) SetActive(ctx context.Context, actorID, userID uuid.UUID, active bool) (*entity.User, error) {
	if actorID == userID && !active {
		return nil, apperror.NewBadRequestError("You cannot deactivate your own account")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	user.IsActive = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser soft deletes a user
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return apperror.NewBadRequestError("You cannot delete your own account")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	return s.userRepo.Delete(ctx, userID)
}

// ListRoles returns all available roles
func (s *UserService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return s.roleRepo.List(ctx)
}

// ListPermissions returns all available permissions
func (s *UserService) ListPermissions(ctx context.Context) ([]entity.Permission, error) {
	return s.permissionRepo.List(ctx)
}
