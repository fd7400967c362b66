package service

import (
	"context"
	"testing"
	"time"

	"github.com/autospa/autospa-api/internal/application/session"
	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/pkg/apperror"
	"github.com/autospa/autospa-api/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	oilFilterID = uuid.MustParse("0d6a3f5e-5a37-4c55-9b0e-2f1f6a1c0001")
	washID      = uuid.MustParse("0d6a3f5e-5a37-4c55-9b0e-2f1f6a1c0002")
)

func testCatalog() billing.Catalog {
	return billing.Catalog{
		Products: []billing.ProductEntry{{
			ID:    oilFilterID.String(),
			Code:  "OF-01",
			Name:  "Oil Filter",
			Price: billing.MoneyFromMajor(450),
			Stock: 3,
		}},
		Services: []billing.ServiceEntry{{
			ID:    washID.String(),
			Code:  "WASH",
			Name:  "Foam Wash",
			Price: billing.MoneyFromMajor(300),
		}},
	}
}

// signedIn returns a context carrying an authenticated staff session
func signedIn(t *testing.T) (context.Context, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	claims := &utils.JWTClaims{
		UserID:      userID,
		Email:       "desk@autospa.local",
		Name:        "Front Desk",
		Role:        "staff",
		Permissions: []string{"create-bills"},
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	return session.WithSession(context.Background(), session.New(claims, nil)), userID
}

// requireAppError asserts err is an *apperror.AppError with the given code
func requireAppError(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperror.IsAppError(err), "expected AppError, got %T: %v", err, err)
	appErr := apperror.GetAppError(err)
	require.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}
