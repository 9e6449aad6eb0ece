package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mateng0/shopkeeper-station/structs/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestAttachPhotos(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()
	orphanProduct := uuid.New()

	products := []tables.Product{
		{ID: productA, Name: "Organic Honey"},
		{ID: productB, Name: "Basmati Rice"},
	}
	photos := []tables.ProductPhoto{
		{ID: uuid.New(), ProductID: productA, URL: "https://cdn.example/a1.jpg"},
		{ID: uuid.New(), ProductID: productB, URL: "https://cdn.example/b1.jpg"},
		{ID: uuid.New(), ProductID: productA, URL: "https://cdn.example/a2.jpg"},
		{ID: uuid.New(), ProductID: orphanProduct, URL: "https://cdn.example/x.jpg"},
	}

	merged := AttachPhotos(products, photos)
	require.Len(t, merged, 2)

	assert.Equal(t, productA, merged[0].ID)
	assert.Len(t, merged[0].Photos, 2)
	assert.Equal(t, "https://cdn.example/a1.jpg", merged[0].Photos[0].URL)
	assert.Equal(t, "https://cdn.example/a2.jpg", merged[0].Photos[1].URL)

	assert.Equal(t, productB, merged[1].ID)
	assert.Len(t, merged[1].Photos, 1)
}

func TestAttachPhotos_NoPhotosYieldsEmptySlice(t *testing.T) {
	products := []tables.Product{
		{ID: uuid.New(), Name: "Plain Flour"},
	}

	merged := AttachPhotos(products, nil)
	require.Len(t, merged, 1)
	assert.NotNil(t, merged[0].Photos)
	assert.Empty(t, merged[0].Photos)
}

func TestAttachPhotos_EmptyProducts(t *testing.T) {
	merged := AttachPhotos(nil, []tables.ProductPhoto{
		{ID: uuid.New(), ProductID: uuid.New()},
	})
	assert.Empty(t, merged)
}

func TestFilterProducts(t *testing.T) {
	products := []tables.Product{
		{ID: uuid.New(), Name: "Organic Honey", Category: strPtr("Groceries")},
		{ID: uuid.New(), Name: "Shampoo", Category: strPtr("Personal Care"), Description: strPtr("Herbal formula with honey extract")},
		{ID: uuid.New(), Name: "Notebook"},
	}

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{
			name:     "empty query matches everything",
			query:    "",
			expected: []string{"Organic Honey", "Shampoo", "Notebook"},
		},
		{
			name:     "whitespace query matches everything",
			query:    "   ",
			expected: []string{"Organic Honey", "Shampoo", "Notebook"},
		},
		{
			name:     "matches name case-insensitively",
			query:    "ORGANIC",
			expected: []string{"Organic Honey"},
		},
		{
			name:     "matches across name and description",
			query:    "honey",
			expected: []string{"Organic Honey", "Shampoo"},
		},
		{
			name:     "matches category",
			query:    "personal",
			expected: []string{"Shampoo"},
		},
		{
			name:     "no match",
			query:    "bicycle",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := FilterProducts(products, tt.query)

			names := make([]string, 0, len(filtered))
			for _, p := range filtered {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestFilterProducts_NilOptionalFields(t *testing.T) {
	products := []tables.Product{
		{ID: uuid.New(), Name: "Bare Listing"},
	}

	filtered := FilterProducts(products, "listing")
	require.Len(t, filtered, 1)

	filtered = FilterProducts(products, "groceries")
	assert.Empty(t, filtered)
}

func TestReconcilePhotos(t *testing.T) {
	photoA := tables.ProductPhoto{ID: uuid.New(), URL: "a"}
	photoB := tables.ProductPhoto{ID: uuid.New(), URL: "b"}
	photoC := tables.ProductPhoto{ID: uuid.New(), URL: "c"}
	existing := []tables.ProductPhoto{photoA, photoB, photoC}

	t.Run("keeps listed, removes the rest", func(t *testing.T) {
		kept, removed := ReconcilePhotos(existing, []uuid.UUID{photoA.ID, photoC.ID})
		assert.Equal(t, []tables.ProductPhoto{photoA, photoC}, kept)
		assert.Equal(t, []tables.ProductPhoto{photoB}, removed)
	})

	t.Run("empty keep list removes everything", func(t *testing.T) {
		kept, removed := ReconcilePhotos(existing, nil)
		assert.Empty(t, kept)
		assert.Len(t, removed, 3)
	})

	t.Run("unknown ids are ignored", func(t *testing.T) {
		kept, removed := ReconcilePhotos(existing, []uuid.UUID{uuid.New()})
		assert.Empty(t, kept)
		assert.Len(t, removed, 3)
	})

	t.Run("no existing photos", func(t *testing.T) {
		kept, removed := ReconcilePhotos(nil, []uuid.UUID{photoA.ID})
		assert.Empty(t, kept)
		assert.Empty(t, removed)
	})
}

func TestFilterProducts_Idempotent(t *testing.T) {
	products := []tables.Product{
		{ID: uuid.New(), Name: "Honey Jar", Category: strPtr("Food")},
		{ID: uuid.New(), Name: "Soap Bar", Description: strPtr("honey scented")},
		{ID: uuid.New(), Name: "Candle"},
	}

	once := FilterProducts(products, "honey")
	twice := FilterProducts(once, "honey")

	require.Len(t, once, 2)
	assert.Equal(t, once, twice)
}

func TestFilterProducts_PreservesOrder(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	third := uuid.New()
	products := []tables.Product{
		{ID: first, Name: "Honey Jar"},
		{ID: second, Name: "Candle"},
		{ID: third, Name: "Honeycomb"},
	}

	filtered := FilterProducts(products, "honey")
	require.Len(t, filtered, 2)
	assert.Equal(t, first, filtered[0].ID)
	assert.Equal(t, third, filtered[1].ID)
}

func TestCommitPhotosInOrder(t *testing.T) {
	names := []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"}

	t.Run("all succeed in order", func(t *testing.T) {
		var calls []string
		committed, err := CommitPhotosInOrder(names, func(name string) (tables.ProductPhoto, error) {
			calls = append(calls, name)
			return tables.ProductPhoto{URL: "https://cdn.example/" + name}, nil
		})
		require.NoError(t, err)
		require.Len(t, committed, 4)
		assert.Equal(t, names, calls)
		assert.Equal(t, "https://cdn.example/a.jpg", committed[0].URL)
	})

	t.Run("failure keeps earlier photos and stops the batch", func(t *testing.T) {
		var calls []string
		committed, err := CommitPhotosInOrder(names, func(name string) (tables.ProductPhoto, error) {
			calls = append(calls, name)
			if name == "c.jpg" {
				return tables.ProductPhoto{}, assert.AnError
			}
			return tables.ProductPhoto{URL: "https://cdn.example/" + name}, nil
		})
		require.Error(t, err)
		require.Len(t, committed, 2)
		assert.Equal(t, "https://cdn.example/a.jpg", committed[0].URL)
		assert.Equal(t, "https://cdn.example/b.jpg", committed[1].URL)
		assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, calls)
	})

	t.Run("empty batch", func(t *testing.T) {
		committed, err := CommitPhotosInOrder(nil, func(string) (tables.ProductPhoto, error) {
			t.Fatal("commit should not be called")
			return tables.ProductPhoto{}, nil
		})
		require.NoError(t, err)
		assert.Empty(t, committed)
	})
}
