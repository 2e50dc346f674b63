package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	var (
		gotUserID int64
		gotOK     bool
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	do := func(header string) *httptest.ResponseRecorder {
		gotUserID, gotOK = 0, false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(HeaderUserID, header)
		}
		rec := httptest.NewRecorder()
		Auth(next).ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid header reaches the handler", func(t *testing.T) {
		rec := do("42")
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.True(t, gotOK)
		assert.Equal(t, int64(42), gotUserID)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := do("")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, gotOK)
	})

	t.Run("non numeric header", func(t *testing.T) {
		rec := do("abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non positive id", func(t *testing.T) {
		rec := do("0")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUserIDFromContext_WithoutAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)
}
