package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPasswordResetToken(t *testing.T) {
	now := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	token := NewPasswordResetToken("desk@autospa.local", "emailed-token", now)

	assert.Equal(t, HashResetToken("emailed-token"), token.TokenHash)
	assert.Len(t, token.TokenHash, 64)
	assert.NotContains(t, token.TokenHash, "emailed-token")

	assert.True(t, token.UsableAt(now.Add(59*time.Minute)))
	assert.False(t, token.UsableAt(now.Add(PasswordResetTTL)))

	used := now.Add(time.Minute)
	token.UsedAt = &used
	assert.False(t, token.UsableAt(now.Add(2*time.Minute)))
}
