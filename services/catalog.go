package services

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mateng0/shopkeeper-station/structs/tables"
)

// AttachPhotos merges separately fetched photo rows onto their products by
// product id. Product order is preserved and every product ends up with a
// non-nil Photos slice so the JSON encoding is always an array.
func AttachPhotos(products []tables.Product, photos []tables.ProductPhoto) []tables.Product {
	grouped := make(map[uuid.UUID][]tables.ProductPhoto, len(products))
	for _, photo := range photos {
		grouped[photo.ProductID] = append(grouped[photo.ProductID], photo)
	}

	merged := make([]tables.Product, len(products))
	for i, product := range products {
		attached := grouped[product.ID]
		if attached == nil {
			attached = []tables.ProductPhoto{}
		}
		product.Photos = attached
		merged[i] = product
	}
	return merged
}

// FilterProducts returns the products whose name, category, or description
// contains the query, case-insensitively. An empty query matches everything.
func FilterProducts(products []tables.Product, query string) []tables.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return products
	}

	filtered := make([]tables.Product, 0, len(products))
	for _, product := range products {
		if matchesQuery(&product, query) {
			filtered = append(filtered, product)
		}
	}
	return filtered
}

func matchesQuery(product *tables.Product, query string) bool {
	if strings.Contains(strings.ToLower(product.Name), query) {
		return true
	}
	if product.Category != nil && strings.Contains(strings.ToLower(*product.Category), query) {
		return true
	}
	if product.Description != nil && strings.Contains(strings.ToLower(*product.Description), query) {
		return true
	}
	return false
}

// ReconcilePhotos splits a product's existing photos into the ones to keep
// and the ones to remove, given the ids the client wants to retain. Ids that
// don't belong to the product are ignored.
func ReconcilePhotos(existing []tables.ProductPhoto, keepIDs []uuid.UUID) (kept, removed []tables.ProductPhoto) {
	keep := make(map[uuid.UUID]bool, len(keepIDs))
	for _, id := range keepIDs {
		keep[id] = true
	}

	kept = make([]tables.ProductPhoto, 0, len(existing))
	removed = make([]tables.ProductPhoto, 0)
	for _, photo := range existing {
		if keep[photo.ID] {
			kept = append(kept, photo)
		} else {
			removed = append(removed, photo)
		}
	}
	return kept, removed
}

// CommitPhotosInOrder processes pending photo uploads strictly one at a
// time, where commit both stores the object and records its row before the
// next item starts. The first failure stops the batch; photos committed
// before it stay committed and are returned so a retry only resends the
// rest.
func CommitPhotosInOrder[T any](pending []T, commit func(T) (tables.ProductPhoto, error)) ([]tables.ProductPhoto, error) {
	committed := make([]tables.ProductPhoto, 0, len(pending))
	for _, item := range pending {
		photo, err := commit(item)
		if err != nil {
			return committed, err
		}
		committed = append(committed, photo)
	}
	return committed, nil
}
