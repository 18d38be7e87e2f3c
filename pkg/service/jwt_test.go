package service

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "hr-system/pkg/errors"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, time.Hour, zap.NewNop())
	userID := uuid.New()

	pair, err := svc.GenerateTokens(userID, "hr")
	require.NoError(t, err)
	require.NotEmpty(t, pair.RefreshID)

	access, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, access.UserID)
	assert.Equal(t, "hr", access.Role)
	assert.False(t, access.IsRefreshToken)

	refresh, err := svc.ValidateToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, refresh.IsRefreshToken)
	assert.Equal(t, pair.RefreshID, refresh.ID)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, time.Hour, zap.NewNop()).(*jwtService)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	pair, err := svc.GenerateTokens(uuid.New(), "employee")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, time.Hour, zap.NewNop())
	other := NewJWTService("other-secret", time.Minute, time.Hour, zap.NewNop())

	pair, err := other.GenerateTokens(uuid.New(), "admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateRejectsNoneAlgorithm(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, time.Hour, zap.NewNop())
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &JwtCustomClaim{UserID: uuid.New()})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(raw)
	assert.Error(t, err)
}
