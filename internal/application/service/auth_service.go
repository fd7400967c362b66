package service

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/autospa/autospa-api/internal/application/session"
	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/pkg/apperror"
	"github.com/autospa/autospa-api/pkg/email"
	"github.com/autospa/autospa-api/pkg/oauth"
	"github.com/autospa/autospa-api/pkg/utils"
	"github.com/google/uuid"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo          repository.UserRepository
	passwordResetRepo repository.PasswordResetTokenRepository
	jwtManager        *utils.JWTManager
	revocations       *session.Revocations
	mailer            email.Sender
	google            *oauth.GoogleOAuthService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	passwordResetRepo repository.PasswordResetTokenRepository,
	jwtManager *utils.JWTManager,
	revocations *session.Revocations,
	mailer email.Sender,
	google *oauth.GoogleOAuthService,
) *AuthService {
	return &AuthService{
		userRepo:          userRepo,
		passwordResetRepo: passwordResetRepo,
		jwtManager:        jwtManager,
		revocations:       revocations,
		mailer:            mailer,
		google:            google,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password == "" {
		return nil, apperror.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperror.ErrAccountDisabled
	}

	return s.issue(ctx, user)
}

// issue loads the user's roles and signs a fresh token pair
func (s *AuthService) issue(ctx context.Context, user *entity.User) (*LoginOutput, error) {
	user, err := s.userRepo.GetWithRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.FullName(), user.PrimaryRole(), user.GetPermissions())
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		log.Printf("[auth] touch last login user=%s: %v", user.ID, err)
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.AccessTokenExpiry() / time.Second),
	}, nil
}

// RefreshToken exchanges a refresh token for a new pair. The presented
// refresh token cannot be used again.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	claims, userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	if s.revocations.IsRevoked(claims.ID) {
		return nil, apperror.ErrTokenRevoked
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, apperror.ErrAccountDisabled
	}

	var until time.Time
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	if err := s.revocations.Revoke(ctx, claims.ID, until); err != nil {
		return nil, err
	}

	return s.issue(ctx, user)
}

// Logout ends the caller's session. A refresh token, when given, is revoked
// too.
func (s *AuthService) Logout(ctx context.Context, sess *session.Session, refreshToken string) error {
	if err := sess.Logout(ctx); err != nil {
		return apperror.ErrUnauthorized
	}
	if refreshToken == "" {
		return nil
	}
	claims, _, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil
	}
	var until time.Time
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	return s.revocations.Revoke(ctx, claims.ID, until)
}

// GetCurrentUser returns the current user by ID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword changes the user's password
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	if user.Password != "" && !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.NewBadRequestError("Current password is incorrect")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}

// UpdateProfileInput represents the update profile input
type UpdateProfileInput struct {
	UserID    uuid.UUID
	FirstName string
	LastName  *string
	Photo     *string
}

// UpdateProfile updates the user's own profile
func (s *AuthService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.FirstName != "" {
		user.FirstName = strings.TrimSpace(input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Photo != nil {
		user.Photo = input.Photo
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ForgotPassword mails a reset link when the address belongs to an active
// user. It reports success either way so addresses cannot be probed.
func (s *AuthService) ForgotPassword(ctx context.Context, address string) error {
	address = strings.TrimSpace(address)
	user, err := s.userRepo.GetByEmail(ctx, address)
	if err != nil {
		log.Printf("[auth] forgot password lookup: %v", err)
		return nil
	}
	if user == nil || !user.IsActive {
		return nil
	}

	if err := s.passwordResetRepo.DeleteByEmail(ctx, user.Email); err != nil {
		return err
	}

	token, err := utils.GenerateToken(32)
	if err != nil {
		return err
	}
	if err := s.passwordResetRepo.Create(ctx, entity.NewPasswordResetToken(user.Email, token, time.Now())); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetEmail(user.Email, token); err != nil {
		log.Printf("[auth] send reset mail to %s: %v", user.Email, err)
		return apperror.NewBadGatewayError("Could not send the reset email, try again later")
	}
	return nil
}

// ResetPasswordInput represents the reset password input
type ResetPasswordInput struct {
	Email       string
	Token       string
	NewPassword string
}

// ResetPassword sets a new password using an emailed token
func (s *AuthService) ResetPassword(ctx context.Context, input *ResetPasswordInput) error {
	invalid := apperror.NewBadRequestError("Invalid or expired reset token")

	resetToken, err := s.passwordResetRepo.GetByToken(ctx, input.Token)
	if err != nil {
		return err
	}
	if resetToken == nil || !strings.EqualFold(resetToken.Email, input.Email) || !resetToken.UsableAt(time.Now()) {
		return invalid
	}

	user, err := s.userRepo.GetByEmail(ctx, resetToken.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return invalid
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.passwordResetRepo.MarkAsUsed(ctx, input.Token); err != nil {
		log.Printf("[auth] mark reset token used: %v", err)
	}
	_ = s.passwordResetRepo.DeleteByEmail(ctx, user.Email)

	log.Printf("[auth] password reset for user=%s", user.ID)
	return nil
}

// GoogleEnabled reports whether Google sign-in is configured
func (s *AuthService) GoogleEnabled() bool {
	return s.google != nil && s.google.IsConfigured()
}

// GoogleAuthURL returns the Google consent page for state
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if !s.GoogleEnabled() {
		return "", apperror.NewAppError(http.StatusServiceUnavailable, oauth.ErrOAuthNotConfigured.Error())
	}
	return s.google.AuthURL(state), nil
}

// GoogleLogin signs in an existing staff member with their Google account.
// Unknown addresses are refused; accounts are created by an admin.
func (s *AuthService) GoogleLogin(ctx context.Context, code string) (*LoginOutput, error) {
	if !s.GoogleEnabled() {
		return nil, apperror.NewAppError(http.StatusServiceUnavailable, oauth.ErrOAuthNotConfigured.Error())
	}
	info, err := s.google.Identify(ctx, code)
	if err != nil {
		log.Printf("[auth] google sign-in: %v", err)
		return nil, apperror.NewAppError(http.StatusUnauthorized, "Google sign-in failed")
	}

	user, err := s.userRepo.GetByProviderID(ctx, "google", info.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.userRepo.GetByEmail(ctx, info.Email)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperror.NewForbiddenError("No staff account exists for " + info.Email)
		}
		user.Provider = "google"
		user.ProviderID = &info.ID
		if user.Photo == nil && info.Picture != "" {
			user.Photo = &info.Picture
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	if !user.IsActive {
		return nil, apperror.ErrAccountDisabled
	}

	return s.issue(ctx, user)
}
