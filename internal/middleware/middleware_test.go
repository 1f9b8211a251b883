package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmalhotra/bookshelf-service/internal/config"
	"github.com/nmalhotra/bookshelf-service/internal/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, userID uuid.UUID, email string, lifetime time.Duration) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, models.TokenClaims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedEndpoint(t *testing.T, captured **AuthUser) http.Handler {
	cfg := &config.Config{JWTSecret: testSecret}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		require.True(t, ok)
		*captured = user
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(cfg)(next)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	var captured *AuthUser
	handler := protectedEndpoint(t, &captured)

	req := httptest.NewRequest("GET", "/books", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Auth-Token not found")
	assert.Nil(t, captured)
}

func TestAuthMiddleware_MissingTokenSegment(t *testing.T) {
	var captured *AuthUser
	handler := protectedEndpoint(t, &captured)

	req := httptest.NewRequest("GET", "/books", nil)
	req.Header.Set("Authorization", "Bearer")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not authenticated")
	assert.Nil(t, captured)
}

func TestAuthMiddleware_BadSignature(t *testing.T) {
	var captured *AuthUser
	handler := protectedEndpoint(t, &captured)

	token := signToken(t, "other-secret", uuid.New(), "a@x.com", time.Hour)
	req := httptest.NewRequest("GET", "/books", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
	assert.Nil(t, captured)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	var captured *AuthUser
	handler := protectedEndpoint(t, &captured)

	token := signToken(t, testSecret, uuid.New(), "a@x.com", -time.Minute)
	req := httptest.NewRequest("GET", "/books", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, captured)
}

func TestAuthMiddleware_MalformedToken(t *testing.T) {
	var captured *AuthUser
	handler := protectedEndpoint(t, &captured)

	req := httptest.NewRequest("GET", "/books", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, captured)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	var captured *AuthUser
	handler := protectedEndpoint(t, &captured)

	userID := uuid.New()
	token := signToken(t, testSecret, userID, "a@x.com", time.Hour)
	req := httptest.NewRequest("GET", "/books", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, userID, captured.ID)
	assert.Equal(t, "a@x.com", captured.Email)
}

func TestUserFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest("GET", "/books", nil)
	_, ok := UserFromContext(req.Context())
	assert.False(t, ok)
}
