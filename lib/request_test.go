package lib

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mateng0/shopkeeper-station/structs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/vendor/products", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestExtractAndValidateBody_ValidProduct(t *testing.T) {
	body, err := ExtractAndValidateBody[structs.ProductRequest](postJSON(
		`{"name":"Organic Honey","mrp":"499.00","category":"Groceries"}`,
	))
	require.NoError(t, err)
	assert.Equal(t, "Organic Honey", body.Name)
	assert.Equal(t, "499.00", body.MRP)
	require.NotNil(t, body.Category)
	assert.Equal(t, "Groceries", *body.Category)
}

func TestExtractAndValidateBody_MissingName(t *testing.T) {
	_, err := ExtractAndValidateBody[structs.ProductRequest](postJSON(`{"mrp":"499.00"}`))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.NotEmpty(t, ve.Errors)
	assert.Equal(t, "name", ve.Errors[0].Field)
}

func TestExtractAndValidateBody_UnknownField(t *testing.T) {
	_, err := ExtractAndValidateBody[structs.ProductRequest](postJSON(
		`{"name":"X","surprise":"field"}`,
	))
	assert.Error(t, err)
}

func TestExtractAndValidateBody_BadExpiryDate(t *testing.T) {
	_, err := ExtractAndValidateBody[structs.ProductRequest](postJSON(
		`{"name":"X","expiry_date":"31-12-2026"}`,
	))
	assert.Error(t, err)
}

func TestExtractAndValidateBody_BadKeepPhotoIDs(t *testing.T) {
	_, err := ExtractAndValidateBody[structs.ProductRequest](postJSON(
		`{"name":"X","keep_photo_ids":["not-a-uuid"]}`,
	))
	assert.Error(t, err)
}

func TestExtractAndValidateBody_AuthRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		body, err := ExtractAndValidateBody[structs.AuthRequest](postJSON(
			`{"email":"vendor@example.com","password":"supersecret"}`,
		))
		require.NoError(t, err)
		assert.Equal(t, "vendor@example.com", body.Email)
	})

	t.Run("bad email", func(t *testing.T) {
		_, err := ExtractAndValidateBody[structs.AuthRequest](postJSON(
			`{"email":"not-an-email","password":"supersecret"}`,
		))
		assert.Error(t, err)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := ExtractAndValidateBody[structs.AuthRequest](postJSON(
			`{"email":"vendor@example.com","password":"short"}`,
		))
		assert.Error(t, err)
	})
}
