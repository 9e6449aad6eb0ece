package lib

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mateng0/shopkeeper-station/structs"
	"github.com/mateng0/shopkeeper-station/structs/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-for-signing"

func testClaims() *structs.AuthClaims {
	return &structs.AuthClaims{
		Sub:   uuid.New(),
		Email: "vendor@example.com",
		Role:  tables.RoleVendor,
		Iat:   time.Now(),
		Exp:   time.Now().Add(15 * time.Minute),
		Jti:   uuid.New(),
	}
}

func TestSignAndParseToken(t *testing.T) {
	claims := testClaims()

	token, err := SignClaims(claims, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := ParseToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, claims.Sub, parsed.Sub)
	assert.Equal(t, claims.Email, parsed.Email)
	assert.Equal(t, claims.Role, parsed.Role)
	assert.Equal(t, claims.Jti, parsed.Jti)
	assert.WithinDuration(t, claims.Exp, parsed.Exp, time.Second)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := SignClaims(testClaims(), testSecret)
	require.NoError(t, err)

	_, err = ParseToken(token, "a-different-secret")
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	claims := testClaims()
	claims.Iat = time.Now().Add(-time.Hour)
	claims.Exp = time.Now().Add(-30 * time.Minute)

	token, err := SignClaims(claims, testSecret)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestExtractClaims(t *testing.T) {
	claims := testClaims()
	claims.Role = tables.RoleAdmin

	token, err := SignClaims(claims, testSecret)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: token})

	extracted, err := ExtractClaims(r, testSecret)
	require.NoError(t, err)
	assert.Equal(t, claims.Sub, extracted.Sub)
	assert.Equal(t, tables.RoleAdmin, extracted.Role)
}

func TestExtractClaims_MissingCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	_, err := ExtractClaims(r, testSecret)
	assert.Error(t, err)
}
