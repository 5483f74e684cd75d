package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtutil "github.com/Dias221467/Reminder_Manager/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protected(role string) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetUserFromContext(r.Context())
		_, _ = w.Write([]byte(claims.UserID))
	})
	h := http.Handler(ok)
	if role != "" {
		h = RequireRole(role)(h)
	}
	return AuthMiddleware("secret")(h)
}

func request(t *testing.T, h http.Handler, role string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if role != "" {
		token, err := jwtutil.GenerateToken("u1", "u1@example.com", role, "secret", time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, request(t, protected(""), "").Code)

	rec := request(t, protected(""), "user")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())
}

func TestRequireRole(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, request(t, protected("admin"), "user").Code)
	assert.Equal(t, http.StatusOK, request(t, protected("admin"), "admin").Code)
}
