package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brecho-backend/internal/domain"
)

const testSecret = "unit-test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager(testSecret, 60, 0)

	token, err := manager.GenerateAccessToken(42, "maria@example.com", domain.RoleAdmin)
	require.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(42), claims.CustomerID)
	assert.Equal(t, "maria@example.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.Equal(t, "42", claims.Subject)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager(testSecret, 0, 0)

	token, err := manager.GenerateRefreshToken(7, "joao@example.com")
	require.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(7), claims.CustomerID)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
	assert.Contains(t, claims.Audience, "token-refresh")
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("other-secret", 60, 0)
	token, err := issuer.GenerateAccessToken(1, "a@example.com", domain.RoleCustomer)
	require.NoError(t, err)

	manager := NewTokenManager(testSecret, 60, 0)
	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	claims := SessionClaims{
		CustomerID: 1,
		Type:       TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	manager := NewTokenManager(testSecret, 60, 0)
	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	manager := NewTokenManager(testSecret, 60, 0)
	_, err := manager.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_FillsCustomerIDFromSubject(t *testing.T) {
	// Tokens issued before the customer_id claim existed only carry sub.
	claims := SessionClaims{
		Type: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "99",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	manager := NewTokenManager(testSecret, 60, 0)
	parsed, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(99), parsed.CustomerID)
}
