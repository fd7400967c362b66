package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PasswordResetTTL bounds how long an emailed reset link works
const PasswordResetTTL = time.Hour

// PasswordResetToken is an outstanding reset link. Only the SHA-256 of the
// emailed token is stored.
type PasswordResetToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Email     string     `gorm:"size:255;not null;index" json:"email"`
	TokenHash string     `gorm:"size:64;not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewPasswordResetToken records token for email, valid for PasswordResetTTL from now
func NewPasswordResetToken(email, token string, now time.Time) *PasswordResetToken {
	return &PasswordResetToken{
		Email:     email,
		TokenHash: HashResetToken(token),
		ExpiresAt: now.Add(PasswordResetTTL),
	}
}

// HashResetToken is the lookup key for an emailed token
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (t *PasswordResetToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// UsableAt reports whether the token can still reset a password at now
func (t *PasswordResetToken) UsableAt(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
