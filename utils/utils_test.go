package utils

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTokenRoundTrip(t *testing.T) {
	InitJWT("unit-test-secret", time.Hour)

	token, err := GenerateToken(7, "mario")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "mario", claims.Username)
	assert.NotEmpty(t, claims.ID)
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	InitJWT("first-secret", time.Hour)
	token, err := GenerateToken(1, "adrian")
	require.NoError(t, err)

	InitJWT("second-secret", time.Hour)
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestRevokedTokenIsRejected(t *testing.T) {
	InitJWT("unit-test-secret", time.Hour)
	token, err := GenerateToken(3, "tilly")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)

	RevokeToken(claims.ID, claims.ExpiresAt.Time)
	assert.True(t, IsTokenRevoked(claims.ID))

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestRevocationExpires(t *testing.T) {
	RevokeToken("old-id", time.Now().Add(-time.Minute))
	assert.False(t, IsTokenRevoked("old-id"))
}

func TestMoneyHelpers(t *testing.T) {
	price := decimal.RequireFromString("2.50")

	assert.Equal(t, "7.50", FormatMoney(LineTotal(price, 3)))
	assert.Equal(t, "2.75", FormatMoney(WithTax(price, decimal.RequireFromString("0.10"))))
	assert.Equal(t, "10.25", FormatMoney(SumMoney(
		decimal.RequireFromString("5.00"),
		decimal.RequireFromString("5.25"),
	)))
	assert.Equal(t, "0.00", FormatMoney(SumMoney()))

	assert.True(t, HasCents(decimal.RequireFromString("4.99")))
	assert.False(t, HasCents(decimal.RequireFromString("4.999")))
}

func TestAsAppError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"duplicate key", gorm.ErrDuplicatedKey, http.StatusBadRequest},
		{"forbidden", Forbidden("no"), http.StatusForbidden},
		{"wrapped validation", errors.Join(Validation("bad")), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"unauthorized", Unauthorized("who"), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, StatusCode(AsAppError(tt.err).Kind))
		})
	}
}

func TestFieldError(t *testing.T) {
	err := FieldError("rating", "Ensure this value is less than or equal to 5.")
	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, "Ensure this value is less than or equal to 5.", err.Fields["rating"])
}
