package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// BillNumber is the short number printed on receipts, derived from the bill id
func BillNumber(id uuid.UUID) string {
	return "AS-" + strings.ToUpper(id.String()[:8])
}

// GenerateProductCode generates a product code when none is supplied
func GenerateProductCode() string {
	return "PROD-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateServiceCode generates a service code when none is supplied
func GenerateServiceCode() string {
	return "SRV-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateToken returns n random bytes hex encoded, for reset links
func GenerateToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
