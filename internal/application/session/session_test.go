package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/autospa/autospa-api/internal/application/session"
	"github.com/autospa/autospa-api/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimsFor(role string, permissions ...string) *utils.JWTClaims {
	return &utils.JWTClaims{
		UserID:      uuid.New(),
		Email:       "desk@autospa.local",
		Name:        "Front Desk",
		Role:        role,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestSessionLifecycle(t *testing.T) {
	revocations := session.NewRevocations()
	s := session.New(claimsFor("staff", "create-bills"), revocations)

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "staff", s.Role())
	assert.True(t, s.Can("create-bills"))
	assert.False(t, s.Can("manage-users"))

	require.NoError(t, s.Logout(context.Background()))

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Role())
	assert.False(t, s.Can("create-bills"))
	assert.ErrorIs(t, s.Logout(context.Background()), session.ErrNoSession)
}

func TestLogoutOnlyRevokesThatToken(t *testing.T) {
	revocations := session.NewRevocations()
	claims := claimsFor("admin")
	first := session.New(claims, revocations)

	other := *claims
	other.ID = uuid.NewString()
	second := session.New(&other, revocations)

	require.NoError(t, first.Logout(context.Background()))

	assert.False(t, first.IsAuthenticated())
	assert.True(t, second.IsAuthenticated())
}

func TestExpiredTokenIsNotAuthenticated(t *testing.T) {
	claims := claimsFor("staff")
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	assert.False(t, session.New(claims, nil).IsAuthenticated())
}

func TestFromContext(t *testing.T) {
	_, ok := session.FromContext(context.Background())
	assert.False(t, ok)

	s := session.New(claimsFor("staff"), session.NewRevocations())
	ctx := session.WithSession(context.Background(), s)

	got, ok := session.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, s.UserID(), got.UserID())

	require.NoError(t, s.Logout(ctx))
	_, ok = session.FromContext(ctx)
	assert.False(t, ok)
}

func TestNilSession(t *testing.T) {
	var s *session.Session
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, uuid.Nil, s.UserID())
}

func TestPurgeDropsExpired(t *testing.T) {
	r := session.NewRevocations()
	ctx := context.Background()
	require.NoError(t, r.Revoke(ctx, "old", time.Now().Add(-time.Second)))
	require.NoError(t, r.Revoke(ctx, "live", time.Now().Add(time.Hour)))

	assert.Equal(t, 1, r.Purge())
	assert.True(t, r.IsRevoked("live"))
	assert.False(t, r.IsRevoked("old"))
}
