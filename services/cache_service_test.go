package services

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/mateng0/shopkeeper-station/database"
	"github.com/mateng0/shopkeeper-station/structs/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A cached storefront page must report the totals of the query it replaced,
// not the length of the page itself.
func TestCachedProductListCarriesPagination(t *testing.T) {
	entry := cachedProductList{
		Products: []tables.Product{
			{ID: uuid.New(), Name: "Honey Jar"},
			{ID: uuid.New(), Name: "Soap Bar"},
		},
		Pagination: database.Pagination{Page: 2, PageSize: 2, Total: 57},
	}

	raw, err := json.Marshal(entry)
	require.NoError(t, err)

	var restored cachedProductList
	require.NoError(t, json.Unmarshal(raw, &restored))

	require.Len(t, restored.Products, 2)
	assert.Equal(t, 57, restored.Pagination.Total)
	assert.NotEqual(t, len(restored.Products), restored.Pagination.Total)
	assert.Equal(t, 2, restored.Pagination.Page)
}

func TestProductListKeyIncludesSort(t *testing.T) {
	base := productListKey(1, 20, "created_at", "DESC")
	byName := productListKey(1, 20, "name", "ASC")
	assert.NotEqual(t, base, byName)
}
