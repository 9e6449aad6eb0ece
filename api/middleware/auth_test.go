package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/mateng0/shopkeeper-station/config"
	"github.com/mateng0/shopkeeper-station/lib"
	"github.com/mateng0/shopkeeper-station/structs"
	"github.com/mateng0/shopkeeper-station/structs/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMiddleware(t *testing.T) *Middleware {
	t.Helper()
	cfg := config.GetConfig()
	return NewMiddleware(cfg, gecho.NewDefaultLogger(), nil)
}

func signedToken(t *testing.T, role string) (string, *structs.AuthClaims) {
	t.Helper()
	claims := &structs.AuthClaims{
		Sub:   uuid.New(),
		Email: "vendor@example.com",
		Role:  role,
		Iat:   time.Now(),
		Exp:   time.Now().Add(15 * time.Minute),
		Jti:   uuid.New(),
	}
	token, err := lib.SignClaims(claims, config.GetConfig().Auth.AccessTokenSecret)
	require.NoError(t, err)
	return token, claims
}

func TestUserAuthMiddleware_MissingCookie(t *testing.T) {
	mw := newTestMiddleware(t)

	handler := mw.UserAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vendor/products", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserAuthMiddleware_GarbageToken(t *testing.T) {
	mw := newTestMiddleware(t)

	handler := mw.UserAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	r := httptest.NewRequest(http.MethodGet, "/vendor/products", nil)
	r.AddCookie(&http.Cookie{Name: lib.AccessCookieName, Value: "not.a.token"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserAuthMiddleware_WrongSecret(t *testing.T) {
	mw := newTestMiddleware(t)

	claims := &structs.AuthClaims{
		Sub:   uuid.New(),
		Email: "vendor@example.com",
		Role:  tables.RoleVendor,
		Iat:   time.Now(),
		Exp:   time.Now().Add(15 * time.Minute),
		Jti:   uuid.New(),
	}
	token, err := lib.SignClaims(claims, "some-other-secret")
	require.NoError(t, err)

	handler := mw.UserAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	r := httptest.NewRequest(http.MethodGet, "/vendor/products", nil)
	r.AddCookie(&http.Cookie{Name: lib.AccessCookieName, Value: token})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserAuthMiddleware_ValidToken(t *testing.T) {
	mw := newTestMiddleware(t)
	token, signed := signedToken(t, tables.RoleVendor)

	reached := false
	handler := mw.UserAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		claims, ok := GetClaimsFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, signed.Sub, claims.Sub)
		assert.Equal(t, tables.RoleVendor, claims.Role)
	}))

	r := httptest.NewRequest(http.MethodGet, "/vendor/products", nil)
	r.AddCookie(&http.Cookie{Name: lib.AccessCookieName, Value: token})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminAuthMiddleware_VendorRejected(t *testing.T) {
	mw := newTestMiddleware(t)
	_, claims := signedToken(t, tables.RoleVendor)

	handler := mw.AdminAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	r := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	r = r.WithContext(context.WithValue(r.Context(), ClaimsContextKey, claims))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminAuthMiddleware_AdminAllowed(t *testing.T) {
	mw := newTestMiddleware(t)
	_, claims := signedToken(t, tables.RoleAdmin)

	reached := false
	handler := mw.AdminAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	r := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	r = r.WithContext(context.WithValue(r.Context(), ClaimsContextKey, claims))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminAuthMiddleware_NoClaims(t *testing.T) {
	mw := newTestMiddleware(t)

	handler := mw.AdminAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/products", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
