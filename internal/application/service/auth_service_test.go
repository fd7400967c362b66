package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/autospa/autospa-api/internal/application/session"
	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/enum"
	"github.com/autospa/autospa-api/internal/domain/repository/mocks"
	"github.com/autospa/autospa-api/pkg/apperror"
	"github.com/autospa/autospa-api/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingMailer struct {
	resetTo, resetToken string
}

func (m *recordingMailer) SendPasswordResetEmail(toEmail, token string) error {
	m.resetTo, m.resetToken = toEmail, token
	return nil
}

func (m *recordingMailer) SendWelcomeEmail(string, string) error { return nil }

type authFixture struct {
	service     *AuthService
	users       *mocks.MockUserRepository
	resets      *mocks.MockPasswordResetTokenRepository
	jwt         *utils.JWTManager
	revocations *session.Revocations
	mailer      *recordingMailer
}

func newAuthFixture(t *testing.T) *authFixture {
	ctrl := gomock.NewController(t)
	f := &authFixture{
		users:       mocks.NewMockUserRepository(ctrl),
		resets:      mocks.NewMockPasswordResetTokenRepository(ctrl),
		jwt:         utils.NewJWTManager("auth-test-secret", time.Hour, 24*time.Hour),
		revocations: session.NewRevocations(),
		mailer:      &recordingMailer{},
	}
	f.service = NewAuthService(f.users, f.resets, f.jwt, f.revocations, f.mailer, nil)
	return f
}

func cashier(t *testing.T, password string) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &entity.User{
		ID:        uuid.New(),
		FirstName: "Ravi",
		LastName:  "Kumar",
		Email:     "ravi@autospa.local",
		Password:  hash,
		IsActive:  true,
		Roles: []entity.Role{{
			Name:        enum.RoleStaff,
			Permissions: []entity.Permission{{Name: enum.PermCreateBills}, {Name: enum.PermViewDashboard}},
		}},
	}
}

func (f *authFixture) expectIssue(user *entity.User) {
	f.users.EXPECT().GetWithRoles(gomock.Any(), user.ID).Return(user, nil)
	f.users.EXPECT().TouchLastLogin(gomock.Any(), user.ID).Return(nil)
}

func TestAuthService_Login(t *testing.T) {
	t.Run("issues a token pair carrying the user's permissions", func(t *testing.T) {
		f := newAuthFixture(t)
		user := cashier(t, "s3cret-pass")
		f.users.EXPECT().GetByEmail(gomock.Any(), "ravi@autospa.local").Return(user, nil)
		f.expectIssue(user)

		out, err := f.service.Login(context.Background(), &LoginInput{Email: " ravi@autospa.local ", Password: "s3cret-pass"})
		require.NoError(t, err)
		assert.Equal(t, int64(3600), out.ExpiresIn)

		claims, err := f.jwt.ValidateAccessToken(out.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "Ravi Kumar", claims.Name)
		assert.Equal(t, enum.RoleStaff, claims.Role)
		assert.ElementsMatch(t, []string{enum.PermCreateBills, enum.PermViewDashboard}, claims.Permissions)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(cashier(t, "s3cret-pass"), nil)

		_, err := f.service.Login(context.Background(), &LoginInput{Email: "ravi@autospa.local", Password: "guess"})
		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.service.Login(context.Background(), &LoginInput{Email: "nobody@autospa.local", Password: "x"})
		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		f := newAuthFixture(t)
		user := cashier(t, "s3cret-pass")
		user.IsActive = false
		f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(user, nil)

		_, err := f.service.Login(context.Background(), &LoginInput{Email: user.Email, Password: "s3cret-pass"})
		requireAppError(t, err, http.StatusForbidden)
	})
}

func TestAuthService_RefreshTokenIsSingleUse(t *testing.T) {
	f := newAuthFixture(t)
	user := cashier(t, "s3cret-pass")
	refresh, err := f.jwt.GenerateRefreshToken(user.ID)
	require.NoError(t, err)

	f.users.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
	f.expectIssue(user)

	out, err := f.service.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEqual(t, refresh, out.RefreshToken)

	_, err = f.service.RefreshToken(context.Background(), refresh)
	assert.ErrorIs(t, err, apperror.ErrTokenRevoked)

	_, err = f.service.RefreshToken(context.Background(), out.AccessToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestAuthService_LogoutRevokesBothTokens(t *testing.T) {
	f := newAuthFixture(t)
	user := cashier(t, "s3cret-pass")

	access, err := f.jwt.GenerateAccessToken(user.ID, user.Email, user.FullName(), enum.RoleStaff, nil)
	require.NoError(t, err)
	refresh, err := f.jwt.GenerateRefreshToken(user.ID)
	require.NoError(t, err)

	claims, err := f.jwt.ValidateAccessToken(access)
	require.NoError(t, err)
	sess := session.New(claims, f.revocations)
	require.True(t, sess.IsAuthenticated())

	require.NoError(t, f.service.Logout(context.Background(), sess, refresh))
	assert.False(t, sess.IsAuthenticated())
	assert.True(t, f.revocations.IsRevoked(claims.ID))

	_, err = f.service.RefreshToken(context.Background(), refresh)
	assert.ErrorIs(t, err, apperror.ErrTokenRevoked)
}

func TestAuthService_PasswordReset(t *testing.T) {
	f := newAuthFixture(t)
	user := cashier(t, "old-password")

	var stored *entity.PasswordResetToken
	f.users.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil).Times(2)
	f.resets.EXPECT().DeleteByEmail(gomock.Any(), user.Email).Return(nil).Times(2)
	f.resets.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, token *entity.PasswordResetToken) error {
			stored = token
			return nil
		})

	require.NoError(t, f.service.ForgotPassword(context.Background(), user.Email))
	require.NotNil(t, stored)
	require.NotEmpty(t, f.mailer.resetToken)
	assert.Equal(t, user.Email, f.mailer.resetTo)
	assert.NotEqual(t, f.mailer.resetToken, stored.TokenHash)
	assert.Equal(t, entity.HashResetToken(f.mailer.resetToken), stored.TokenHash)

	token := f.mailer.resetToken
	f.resets.EXPECT().GetByToken(gomock.Any(), token).Return(stored, nil)
	f.users.EXPECT().Update(gomock.Any(), user).Return(nil)
	f.resets.EXPECT().MarkAsUsed(gomock.Any(), token).Return(nil)

	err := f.service.ResetPassword(context.Background(), &ResetPasswordInput{
		Email:       "RAVI@autospa.local",
		Token:       token,
		NewPassword: "new-password",
	})
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("new-password", user.Password))
}

func TestAuthService_ResetPasswordRejectsSpentToken(t *testing.T) {
	f := newAuthFixture(t)
	used := time.Now().Add(-time.Minute)
	spent := entity.NewPasswordResetToken("ravi@autospa.local", "tok", time.Now())
	spent.UsedAt = &used
	f.resets.EXPECT().GetByToken(gomock.Any(), "tok").Return(spent, nil)

	err := f.service.ResetPassword(context.Background(), &ResetPasswordInput{
		Email: "ravi@autospa.local", Token: "tok", NewPassword: "new-password",
	})
	requireAppError(t, err, http.StatusBadRequest)
}

func TestAuthService_ForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	f := newAuthFixture(t)
	f.users.EXPECT().GetByEmail(gomock.Any(), "nobody@autospa.local").Return(nil, nil)

	require.NoError(t, f.service.ForgotPassword(context.Background(), "nobody@autospa.local"))
	assert.Empty(t, f.mailer.resetToken)
}
