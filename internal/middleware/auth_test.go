package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afetlink/afetlink-backend/internal/models"
)

var testSecret = []byte("test-signing-secret")

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("abc123", models.RoleAdmin, testSecret)
	require.NoError(t, err)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "abc123", claims.AccountID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("abc123", models.RoleAdmin, testSecret)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("other-secret"))
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		AccountID: "abc123",
		Role:      models.RoleAdmin,
	})
	tokenString, err := expired.SignedString(testSecret)
	require.NoError(t, err)

	_, err = ParseToken(tokenString, testSecret)
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	handler := Authenticate(testSecret)(okHandler())

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/volunteer-datas", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Token required"}`, rec.Body.String())
	})

	t.Run("malformed token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/volunteer-datas", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Invalid token"}`, rec.Body.String())
	})

	t.Run("valid token stores claims", func(t *testing.T) {
		var got *Claims
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = ClaimsFrom(r.Context())
		})
		token, err := GenerateToken("abc123", models.RoleWorker, testSecret)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/volunteer-datas", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		Authenticate(testSecret)(inner).ServeHTTP(rec, req)

		require.NotNil(t, got)
		assert.Equal(t, "abc123", got.AccountID)
		assert.Equal(t, models.RoleWorker, got.Role)
	})
}

func TestRequireAdmin(t *testing.T) {
	protected := Authenticate(testSecret)(RequireAdmin(okHandler()))

	request := func(t *testing.T, role string) *httptest.ResponseRecorder {
		t.Helper()
		token, err := GenerateToken("abc123", role, testSecret)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/create-worker", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		return rec
	}

	t.Run("no token is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/create-worker", nil)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("worker is 403", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, request(t, models.RoleWorker).Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, request(t, models.RoleAdmin).Code)
	})

	t.Run("superadmin passes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, request(t, models.RoleSuperadmin).Code)
	})
}
