package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangvn/nhatro/internal/auth"
)

func newService() *auth.Service {
	return auth.NewService("test-secret", "chu-nha", "mat-khau", time.Hour)
}

func TestService_Login(t *testing.T) {
	svc := newService()

	t.Run("ValidCredentials", func(t *testing.T) {
		token, err := svc.Login("chu-nha", "mat-khau")
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		subject, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "chu-nha", subject)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Login("chu-nha", "sai-roi")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("WrongUsername", func(t *testing.T) {
		_, err := svc.Login("ai-do", "mat-khau")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestService_Verify(t *testing.T) {
	t.Run("Garbage", func(t *testing.T) {
		_, err := newService().Verify("not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := newService().Login("chu-nha", "mat-khau")
		require.NoError(t, err)

		other := auth.NewService("other-secret", "chu-nha", "mat-khau", time.Hour)
		_, err = other.Verify(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		svc := auth.NewService("test-secret", "chu-nha", "mat-khau", -time.Minute)

		token, err := svc.Login("chu-nha", "mat-khau")
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestMiddleware(t *testing.T) {
	svc := newService()

	var gotSubject string

	handler := svc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = auth.Subject(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("NoHeader", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("BadToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, err := svc.Login("chu-nha", "mat-khau")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "chu-nha", gotSubject)
	})
}
