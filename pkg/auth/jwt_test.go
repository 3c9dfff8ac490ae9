package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func baseClaims() Claims {
	return Claims{
		UserID: "user-123",
		Email:  "student@example.com",
		Roles:  []string{"student"},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "kgraph",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestNewJWTValidator_RequiresSecret(t *testing.T) {
	validator, err := NewJWTValidator("", "kgraph")
	assert.Error(t, err)
	assert.Nil(t, validator)
}

func TestJWTValidator_ValidToken(t *testing.T) {
	validator, err := NewJWTValidator(testSecret, "kgraph")
	require.NoError(t, err)

	claims, err := validator.ValidateToken(signToken(t, testSecret, baseClaims()))

	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "student@example.com", claims.Email)
	assert.Equal(t, []string{"student"}, claims.Roles)
}

func TestJWTValidator_StripsBearerPrefix(t *testing.T) {
	validator, err := NewJWTValidator(testSecret, "kgraph")
	require.NoError(t, err)

	claims, err := validator.ValidateToken("Bearer " + signToken(t, testSecret, baseClaims()))

	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestJWTValidator_MissingToken(t *testing.T) {
	validator, err := NewJWTValidator(testSecret, "kgraph")
	require.NoError(t, err)

	_, err = validator.ValidateToken("   ")

	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestJWTValidator_ExpiredToken(t *testing.T) {
	validator, err := NewJWTValidator(testSecret, "kgraph")
	require.NoError(t, err)

	claims := baseClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	_, err = validator.ValidateToken(signToken(t, testSecret, claims))

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTValidator_WrongSecret(t *testing.T) {
	validator, err := NewJWTValidator(testSecret, "kgraph")
	require.NoError(t, err)

	_, err = validator.ValidateToken(signToken(t, "other-secret", baseClaims()))

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestJWTValidator_WrongIssuer(t *testing.T) {
	validator, err := NewJWTValidator(testSecret, "kgraph")
	require.NoError(t, err)

	claims := baseClaims()
	claims.Issuer = "someone-else"

	_, err = validator.ValidateToken(signToken(t, testSecret, claims))

	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestJWTValidator_MissingUserID(t *testing.T) {
	validator, err := NewJWTValidator(testSecret, "kgraph")
	require.NoError(t, err)

	claims := baseClaims()
	claims.UserID = ""

	_, err = validator.ValidateToken(signToken(t, testSecret, claims))

	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestJWTValidator_GarbageToken(t *testing.T) {
	validator, err := NewJWTValidator(testSecret, "kgraph")
	require.NoError(t, err)

	_, err = validator.ValidateToken("not-a-jwt")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserContext_RoundTrip(t *testing.T) {
	user := &UserContext{UserID: "user-123", Email: "student@example.com"}
	ctx := SetUserInContext(context.Background(), user)

	got, err := GetUserFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = GetUserFromContext(context.Background())
	assert.Error(t, err)
}
