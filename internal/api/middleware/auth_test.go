package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userIDRecorder(got *int64, found *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, *found = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_PutsUserIDIntoContext(t *testing.T) {
	var got int64
	var found bool

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-ID", "42")
	rec := httptest.NewRecorder()

	Auth(userIDRecorder(&got, &found)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, found)
	assert.Equal(t, int64(42), got)
}

func TestAuth_MissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	called := false
	Auth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuth_InvalidHeader(t *testing.T) {
	for _, bad := range []string{"abc", "-1", "0", "9999999999999999999999"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-ID", bad)
		rec := httptest.NewRecorder()

		Auth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", bad)
	}
}

func TestOptionalAuth_WithHeader(t *testing.T) {
	var got int64
	var found bool

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-User-ID", "7")
	rec := httptest.NewRecorder()

	OptionalAuth(userIDRecorder(&got, &found)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, found)
	assert.Equal(t, int64(7), got)
}

func TestOptionalAuth_WithoutHeaderPassesThrough(t *testing.T) {
	var got int64
	var found bool

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()

	OptionalAuth(userIDRecorder(&got, &found)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, found)
}

func TestOptionalAuth_InvalidHeaderIgnored(t *testing.T) {
	var found bool
	var got int64

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-User-ID", "garbage")
	rec := httptest.NewRecorder()

	OptionalAuth(userIDRecorder(&got, &found)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, found)
}
