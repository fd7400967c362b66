package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyTTL is how long a stored response can be replayed
const IdempotencyTTL = 24 * time.Hour

// IdempotencyKey records the response to a write request so a retried
// request with the same key is answered without running it again
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string    `gorm:"uniqueIndex:idx_idempotency_user_key;size:255;not null"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_user_key"`
	Endpoint     string    `gorm:"size:255;not null"` // e.g. "POST /api/v1/bills"
	RequestHash  string    `gorm:"size:64"`           // SHA256 of the request body
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// SameRequest reports whether hash matches the body originally sent with the key
func (i *IdempotencyKey) SameRequest(hash string) bool {
	return i.RequestHash == "" || i.RequestHash == hash
}
