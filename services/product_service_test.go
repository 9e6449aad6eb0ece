package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mateng0/shopkeeper-station/database"
	"github.com/mateng0/shopkeeper-station/structs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProduct_NameOnly(t *testing.T) {
	userID := uuid.New()

	product, err := buildProduct(userID, &structs.ProductRequest{Name: "Bare Listing"})
	require.NoError(t, err)

	assert.Equal(t, "Bare Listing", product.Name)
	assert.Equal(t, userID, product.UserID)

	// everything optional must be genuinely absent, not zero
	assert.Nil(t, product.Description)
	assert.Nil(t, product.Category)
	assert.Nil(t, product.SKU)
	assert.Nil(t, product.MRP)
	assert.Nil(t, product.Discount)
	assert.Nil(t, product.ExpiryDate)
	assert.Nil(t, product.Manufacturer)
	assert.Nil(t, product.Quantity)
	assert.Nil(t, product.ReturnPolicy)
}

func TestBuildProduct_FullRequest(t *testing.T) {
	userID := uuid.New()
	expiry := "2027-06-30"
	req := &structs.ProductRequest{
		Name:         "Organic Honey",
		Description:  strPtr("Raw, unfiltered"),
		Category:     strPtr("Groceries"),
		SKU:          strPtr("HNY-001"),
		MRP:          "499.00",
		Discount:     "50",
		ExpiryDate:   &expiry,
		Manufacturer: strPtr("Bee Farms"),
		Quantity:     strPtr("500g"),
		ReturnPolicy: strPtr("7 days"),
	}

	product, err := buildProduct(userID, req)
	require.NoError(t, err)

	require.NotNil(t, product.MRP)
	assert.Equal(t, uint64(49900), *product.MRP)
	require.NotNil(t, product.Discount)
	assert.Equal(t, uint64(5000), *product.Discount)
	require.NotNil(t, product.ExpiryDate)
	assert.Equal(t, time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC), *product.ExpiryDate)
	assert.Equal(t, "Groceries", *product.Category)
}

func TestBuildProduct_MalformedNumbersAreAbsent(t *testing.T) {
	product, err := buildProduct(uuid.New(), &structs.ProductRequest{
		Name:     "Odd Pricing",
		MRP:      "not a number",
		Discount: "12.345",
	})
	require.NoError(t, err)

	assert.Nil(t, product.MRP)
	assert.Nil(t, product.Discount)
}

func TestBuildProduct_BlankTextCollapsesToAbsent(t *testing.T) {
	product, err := buildProduct(uuid.New(), &structs.ProductRequest{
		Name:        "Trimmed",
		Description: strPtr("   "),
		Category:    strPtr("  Snacks  "),
	})
	require.NoError(t, err)

	assert.Nil(t, product.Description)
	require.NotNil(t, product.Category)
	assert.Equal(t, "Snacks", *product.Category)
}

func TestBuildProduct_BadExpiryDate(t *testing.T) {
	bad := "30/06/2027"
	_, err := buildProduct(uuid.New(), &structs.ProductRequest{
		Name:       "Bad Date",
		ExpiryDate: &bad,
	})
	assert.Error(t, err)
}

func TestNormalizeSort(t *testing.T) {
	tests := []struct {
		name        string
		sortBy      string
		direction   string
		wantField   string
		wantDir     database.OrderDirection
		expectError bool
	}{
		{name: "defaults", wantField: "created_at", wantDir: database.DESC},
		{name: "name ascending", sortBy: "name", direction: "ASC", wantField: "name", wantDir: database.ASC},
		{name: "direction defaults to DESC", sortBy: "mrp", wantField: "mrp", wantDir: database.DESC},
		{name: "unknown field", sortBy: "password_hash", expectError: true},
		{name: "unknown direction", sortBy: "name", direction: "SIDEWAYS", expectError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			field, dir, err := normalizeSort(tc.sortBy, tc.direction)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantField, field)
			assert.Equal(t, tc.wantDir, dir)
		})
	}
}
