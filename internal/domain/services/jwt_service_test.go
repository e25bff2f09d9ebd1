package services

import (
	"testing"
	"time"

	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/infrastructure/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService(&config.Config{JWTSecretKey: "secret"})
	user := &models.User{BaseModel: models.BaseModel{ID: 9}, Position: models.PositionAdmin, Email: "a@example.com"}

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.EqualValues(t, 9, claims.UserID)
	assert.Equal(t, models.PositionAdmin, claims.Position)
	assert.Equal(t, "sk-barangay-service", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTRejectsForeignAndExpiredTokens(t *testing.T) {
	user := &models.User{BaseModel: models.BaseModel{ID: 1}, Position: models.PositionStaff}
	svc := NewJWTService(&config.Config{JWTSecretKey: "secret"}).(*JWTService)

	other, err := NewJWTService(&config.Config{JWTSecretKey: "other"}).GenerateToken(user)
	require.NoError(t, err)
	_, err = svc.ExtractClaims(other)
	assert.Error(t, err)

	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	stale, err := svc.GenerateToken(user)
	require.NoError(t, err)
	_, err = svc.ExtractClaims(stale)
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &JWTClaims{UserID: 1})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ExtractClaims(unsigned)
	assert.Error(t, err)
}
