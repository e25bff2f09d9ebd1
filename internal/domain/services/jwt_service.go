package services

import (
	"errors"
	"fmt"
	"time"

	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/infrastructure/config"

	"github.com/golang-jwt/jwt/v4"
)

// InterfaceJWTService defines the token service interface
type InterfaceJWTService interface {
	GenerateToken(user *models.User) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	ExtractClaims(tokenString string) (*JWTClaims, error)
}

// JWTService signs and verifies session tokens
type JWTService struct {
	secretKey string
	issuer    string
	expiry    time.Duration
	now       func() time.Time
}

// JWTClaims is the payload of a session token
type JWTClaims struct {
	UserID             uint   `json:"userId"`
	Position           string `json:"position"`
	Email              string `json:"email"`
	MustChangePassword bool   `json:"must_change_password,omitempty"`
	jwt.RegisteredClaims
}

// NewJWTService creates the token service
func NewJWTService(cfg *config.Config) InterfaceJWTService {
	expiry := cfg.JWTExpiry
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    "sk-barangay-service",
		expiry:    expiry,
		now:       time.Now,
	}
}

// GenerateToken signs an HS256 token for user
func (s *JWTService) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := &JWTClaims{
		UserID:             user.ID,
		Position:           user.Position,
		Email:              user.Email,
		MustChangePassword: user.MustChangePassword,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ValidateToken parses and verifies a token
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
}

// ExtractClaims returns the claims of a valid token
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
