package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/mateng0/shopkeeper-station/database"
	"github.com/mateng0/shopkeeper-station/lib"
	"github.com/mateng0/shopkeeper-station/structs"
	"github.com/mateng0/shopkeeper-station/structs/tables"
)

type ProductService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewProductService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *ProductService {
	return &ProductService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// buildProduct maps a validated request onto a product row. Empty or
// malformed free-text numbers become absent values, never zeroes.
func buildProduct(userID uuid.UUID, req *structs.ProductRequest) (*tables.Product, error) {
	expiry, err := lib.ParseOptionalDate(req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	return &tables.Product{
		Name:         req.Name,
		Description:  lib.NormalizeOptionalText(req.Description),
		Category:     lib.NormalizeOptionalText(req.Category),
		SKU:          lib.NormalizeOptionalText(req.SKU),
		MRP:          lib.ParsePriceToCents(req.MRP),
		Discount:     lib.ParsePriceToCents(req.Discount),
		ExpiryDate:   expiry,
		Manufacturer: lib.NormalizeOptionalText(req.Manufacturer),
		Quantity:     lib.NormalizeOptionalText(req.Quantity),
		ReturnPolicy: lib.NormalizeOptionalText(req.ReturnPolicy),
		UserID:       userID,
	}, nil
}

var validSortFields = map[string]bool{
	"created_at": true,
	"name":       true,
	"mrp":        true,
}

// normalizeSort validates the requested sort and fills in the defaults,
// created_at DESC.
func normalizeSort(sortBy, sortDirection string) (string, database.OrderDirection, error) {
	if sortBy == "" {
		sortBy = "created_at"
	}
	if !validSortFields[sortBy] {
		return "", "", fmt.Errorf("invalid sort field: %s", sortBy)
	}

	switch sortDirection {
	case "":
		return sortBy, database.DESC, nil
	case "ASC":
		return sortBy, database.ASC, nil
	case "DESC":
		return sortBy, database.DESC, nil
	default:
		return "", "", fmt.Errorf("invalid sort direction: %s", sortDirection)
	}
}

// ListPublicProducts returns a page of the storefront, newest first by
// default. Products and photos are fetched independently and merged by
// product id.
func (ps *ProductService) ListPublicProducts(ctx context.Context, page, pageSize int, sortBy, sortDirection string) ([]tables.Product, *database.Pagination, error) {
	startTime := time.Now()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	sortField, direction, err := normalizeSort(sortBy, sortDirection)
	if err != nil {
		return nil, nil, errors.Join(lib.ErrInvalidInput, err)
	}

	cached, cachedPagination, err := ps.cacheService.GetProductListFromCache(page, pageSize, sortField, string(direction))
	if err != nil {
		ps.logger.Warn("Failed to get product list from cache", gecho.Field("error", err))
	} else if cached != nil {
		ps.logger.Debug("Product list retrieved from cache",
			gecho.Field("count", len(cached)),
			gecho.Field("page", page),
			gecho.Field("duration", time.Since(startTime)),
		)
		return cached, cachedPagination, nil
	}

	query := database.Query[tables.Product](ps.db).
		OrderBy(sortField, direction).
		OrderBy("id", database.ASC).
		Timeout(10 * time.Second)

	result, err := database.Paginate(query, ctx, page, pageSize)
	if err != nil {
		ps.logger.Error("Failed to fetch products",
			gecho.Field("error", err),
			gecho.Field("page", page),
			gecho.Field("duration", time.Since(startTime)),
		)
		return nil, nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	products, err := ps.withPhotos(ctx, result.Data)
	if err != nil {
		return nil, nil, err
	}

	go func() {
		if err := ps.cacheService.SetProductListInCache(page, pageSize, sortField, string(direction), products, result.Pagination); err != nil {
			ps.logger.Warn("Failed to cache product list", gecho.Field("error", err))
		}
	}()

	ps.logger.Debug("Products fetched successfully",
		gecho.Field("count", len(products)),
		gecho.Field("total", result.Pagination.Total),
		gecho.Field("page", page),
		gecho.Field("duration", time.Since(startTime)),
	)

	return products, &result.Pagination, nil
}

// GetProductByID retrieves a single product with its photos.
func (ps *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	product, err := database.Query[tables.Product](ps.db).
		Where("id", id).
		Timeout(5 * time.Second).
		First(ctx)
	if err != nil {
		ps.logger.Error("Failed to fetch product by ID", gecho.Field("id", id), gecho.Field("error", err))
		return nil, lib.MapPgError(err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}

	photos, err := ps.GetProductPhotos(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Photos = photos

	return product, nil
}

// ListVendorProducts returns all products owned by a vendor, newest first.
func (ps *ProductService) ListVendorProducts(ctx context.Context, userID uuid.UUID) ([]tables.Product, error) {
	products, err := database.Query[tables.Product](ps.db).
		Where("user_id", userID).
		OrderBy("created_at", database.DESC).
		OrderBy("id", database.ASC).
		Timeout(10 * time.Second).
		All(ctx)
	if err != nil {
		ps.logger.Error("Failed to fetch vendor products",
			gecho.Field("user_id", userID),
			gecho.Field("error", err),
		)
		return nil, fmt.Errorf("failed to fetch vendor products: %w", err)
	}

	return ps.withPhotos(ctx, products)
}

// SearchProducts returns every product matching the query across name,
// category, and description. The filter runs in memory so its semantics stay
// identical to FilterProducts, which is what the admin view promises.
func (ps *ProductService) SearchProducts(ctx context.Context, query string) ([]tables.Product, error) {
	products, err := database.Query[tables.Product](ps.db).
		OrderBy("created_at", database.DESC).
		OrderBy("id", database.ASC).
		Timeout(15 * time.Second).
		All(ctx)
	if err != nil {
		ps.logger.Error("Failed to fetch products for search", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	products, err = ps.withPhotos(ctx, products)
	if err != nil {
		return nil, err
	}

	return FilterProducts(products, query), nil
}

// withPhotos fetches the photos for a set of products in one query and merges
// them in. The merge itself is pure so it stays testable without a database.
func (ps *ProductService) withPhotos(ctx context.Context, products []tables.Product) ([]tables.Product, error) {
	if len(products) == 0 {
		return []tables.Product{}, nil
	}

	ids := make([]any, len(products))
	for i, product := range products {
		ids[i] = product.ID
	}

	photos, err := database.Query[tables.ProductPhoto](ps.db).
		WhereIn("product_id", ids).
		Timeout(10 * time.Second).
		All(ctx)
	if err != nil {
		ps.logger.Error("Failed to fetch product photos", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch product photos: %w", err)
	}

	return AttachPhotos(products, photos), nil
}

// CreateProduct inserts a new listing for the vendor.
func (ps *ProductService) CreateProduct(ctx context.Context, userID uuid.UUID, req *structs.ProductRequest) (*tables.Product, error) {
	startTime := time.Now()

	product, err := buildProduct(userID, req)
	if err != nil {
		return nil, err
	}
	product.ID = uuid.New()

	product, err = database.Query[tables.Product](ps.db).Insert(ctx, product)
	if err != nil {
		ps.logger.Error("Failed to create product",
			gecho.Field("error", err),
			gecho.Field("product_name", req.Name),
			gecho.Field("duration", time.Since(startTime)),
		)
		return nil, lib.MapPgError(err)
	}
	product.Photos = []tables.ProductPhoto{}

	ps.invalidateListCaches("creation", product.ID)

	ps.logger.Info("Product created successfully",
		gecho.Field("id", product.ID),
		gecho.Field("user_id", userID),
		gecho.Field("duration", time.Since(startTime)),
	)
	return product, nil
}

// UpdateProduct overwrites an owned listing with the request fields and
// reconciles its stored photos against KeepPhotoIDs. It returns the updated
// product and the photos whose rows were removed, so the caller can delete
// the stored objects.
func (ps *ProductService) UpdateProduct(ctx context.Context, productID, userID uuid.UUID, req *structs.ProductRequest) (*tables.Product, []tables.ProductPhoto, error) {
	owned, err := ps.GetOwnedProduct(ctx, productID, userID)
	if err != nil {
		return nil, nil, err
	}

	next, err := buildProduct(userID, req)
	if err != nil {
		return nil, nil, err
	}

	updates := map[string]any{
		"name":          next.Name,
		"description":   next.Description,
		"category":      next.Category,
		"sku":           next.SKU,
		"mrp":           next.MRP,
		"discount":      next.Discount,
		"expiry_date":   next.ExpiryDate,
		"manufacturer":  next.Manufacturer,
		"quantity":      next.Quantity,
		"return_policy": next.ReturnPolicy,
	}

	if _, err := database.Query[tables.Product](ps.db).Where("id", productID).Update(ctx, updates); err != nil {
		ps.logger.Error("Failed to update product",
			gecho.Field("id", productID),
			gecho.Field("error", err),
		)
		return nil, nil, lib.MapPgError(err)
	}

	var removed []tables.ProductPhoto
	if req.KeepPhotoIDs != nil {
		existing, err := ps.GetProductPhotos(ctx, productID)
		if err != nil {
			return nil, nil, err
		}

		keepIDs := make([]uuid.UUID, 0, len(req.KeepPhotoIDs))
		for _, raw := range req.KeepPhotoIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				continue
			}
			keepIDs = append(keepIDs, id)
		}

		_, removed = ReconcilePhotos(existing, keepIDs)
		if len(removed) > 0 {
			removedIDs := make([]any, len(removed))
			for i, photo := range removed {
				removedIDs[i] = photo.ID
			}
			if _, err := database.Query[tables.ProductPhoto](ps.db).WhereIn("id", removedIDs).Delete(ctx); err != nil {
				ps.logger.Error("Failed to delete removed photo rows",
					gecho.Field("product_id", productID),
					gecho.Field("error", err),
				)
				return nil, nil, lib.MapPgError(err)
			}
		}
	}

	ps.invalidateListCaches("update", productID)

	product, err := ps.GetProductByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}

	ps.logger.Info("Product updated successfully",
		gecho.Field("id", productID),
		gecho.Field("user_id", owned.UserID),
		gecho.Field("photos_removed", len(removed)),
	)
	return product, removed, nil
}

// DeleteProduct removes a listing and returns its photo rows so the caller
// can delete the stored objects. Non-admins can only delete their own.
func (ps *ProductService) DeleteProduct(ctx context.Context, productID, userID uuid.UUID, isAdmin bool) ([]tables.ProductPhoto, error) {
	product, err := database.Query[tables.Product](ps.db).Where("id", productID).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}
	if !isAdmin && product.UserID != userID {
		return nil, lib.ErrForbidden
	}

	photos, err := database.Query[tables.ProductPhoto](ps.db).
		Where("product_id", productID).
		DeleteReturning(ctx)
	if err != nil {
		ps.logger.Error("Failed to delete product photos",
			gecho.Field("product_id", productID),
			gecho.Field("error", err),
		)
		return nil, lib.MapPgError(err)
	}

	if _, err := database.Query[tables.Product](ps.db).Where("id", productID).Delete(ctx); err != nil {
		ps.logger.Error("Failed to delete product",
			gecho.Field("id", productID),
			gecho.Field("error", err),
		)
		return nil, lib.MapPgError(err)
	}

	ps.invalidateListCaches("deletion", productID)

	ps.logger.Info("Product deleted",
		gecho.Field("id", productID),
		gecho.Field("by_admin", isAdmin),
		gecho.Field("photo_count", len(photos)),
	)
	return photos, nil
}

// GetOwnedProduct fetches a product and verifies the vendor owns it.
func (ps *ProductService) GetOwnedProduct(ctx context.Context, productID, userID uuid.UUID) (*tables.Product, error) {
	product, err := database.Query[tables.Product](ps.db).Where("id", productID).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}
	if product.UserID != userID {
		return nil, lib.ErrForbidden
	}
	return product, nil
}

// GetProductPhotos returns the photo rows for a product.
func (ps *ProductService) GetProductPhotos(ctx context.Context, productID uuid.UUID) ([]tables.ProductPhoto, error) {
	photos, err := database.Query[tables.ProductPhoto](ps.db).
		Where("product_id", productID).
		All(ctx)
	if err != nil {
		ps.logger.Error("Failed to fetch product photos",
			gecho.Field("product_id", productID),
			gecho.Field("error", err),
		)
		return nil, lib.MapPgError(err)
	}
	if photos == nil {
		photos = []tables.ProductPhoto{}
	}
	return photos, nil
}

// AddProductPhoto records one stored photo. Callers upload the object
// before recording, so an inserted row always references an object that
// exists.
func (ps *ProductService) AddProductPhoto(ctx context.Context, productID uuid.UUID, photo tables.ProductPhoto) (*tables.ProductPhoto, error) {
	if photo.ID == uuid.Nil {
		photo.ID = uuid.New()
	}
	photo.ProductID = productID

	inserted, err := database.Query[tables.ProductPhoto](ps.db).Insert(ctx, &photo)
	if err != nil {
		ps.logger.Error("Failed to insert product photo",
			gecho.Field("product_id", productID),
			gecho.Field("object_key", photo.ObjectKey),
			gecho.Field("error", err),
		)
		return nil, lib.MapPgError(err)
	}

	ps.invalidateListCaches("photo upload", productID)

	return inserted, nil
}

func (ps *ProductService) invalidateListCaches(reason string, productID uuid.UUID) {
	go func() {
		if err := ps.cacheService.InvalidateProductCaches(); err != nil {
			ps.logger.Warn("Failed to invalidate product caches after "+reason,
				gecho.Field("error", err),
				gecho.Field("product_id", productID),
			)
		}
	}()
}
