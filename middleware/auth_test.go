package middleware

import (
	"Inkwell/internal/testutil"
	"Inkwell/models"
	pctx "Inkwell/pkg/context"
	"Inkwell/pkg/jwt"
	"Inkwell/types"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	calls atomic.Int32
	err   error
}

func (s *stubResolver) EnsureUser(_ context.Context, identity *types.Identity) (*models.User, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &models.User{ID: 42, TokenIdentifier: identity.TokenIdentifier}, nil
}

func newAuthEngine(users UserResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := NewAuthenticator(testutil.NewConfig(), users)
	r := gin.New()
	r.GET("/whoami", auth.Handler(), func(c *gin.Context) {
		uid, err := pctx.GetUserID(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		identity := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"id": uid, "subject": identity.TokenIdentifier, "email": identity.Email})
	})
	return r
}

func signed(t *testing.T, secret, issuer string, expire time.Duration) string {
	t.Helper()
	tok, err := jwt.GenerateToken([]byte(secret), issuer, jwt.Claims{
		Email:            "ada@example.com",
		RegisteredClaims: jwtlib.RegisteredClaims{Subject: "auth0|ada"},
	}, expire, time.Now())
	require.NoError(t, err)
	return tok
}

func call(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticatorRejects(t *testing.T) {
	users := &stubResolver{}
	r := newAuthEngine(users)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer abc"},
		{"wrong secret", "Bearer " + signed(t, "other-secret", "inkwell-test", time.Hour)},
		{"wrong issuer", "Bearer " + signed(t, "test-secret", "someone-else", time.Hour)},
		{"expired", "Bearer " + signed(t, "test-secret", "inkwell-test", -time.Minute)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
	assert.Zero(t, users.calls.Load())
}

func TestAuthenticatorResolvesOnce(t *testing.T) {
	users := &stubResolver{}
	r := newAuthEngine(users)
	header := "Bearer " + signed(t, "test-secret", "inkwell-test", time.Hour)

	for i := 0; i < 3; i++ {
		w := call(r, header)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":42,"subject":"auth0|ada","email":"ada@example.com"}`, w.Body.String())
	}
	assert.EqualValues(t, 1, users.calls.Load())
}

func TestAuthenticatorResolverFailure(t *testing.T) {
	users := &stubResolver{err: errors.New("db down")}
	r := newAuthEngine(users)

	w := call(r, "Bearer "+signed(t, "test-secret", "inkwell-test", time.Hour))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// failures are not cached
	users.err = nil
	w = call(r, "Bearer "+signed(t, "test-secret", "inkwell-test", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, users.calls.Load())
}
