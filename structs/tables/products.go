package tables

import (
	"time"

	"github.com/google/uuid"
)

// Product is a vendor listing. Name is the only mandatory business field;
// everything else is nullable so that a bare "name only" submission stores
// absent values, not zeroes.
type Product struct {
	tableName    struct{}       `bun:"table:products,alias:p"`
	ID           uuid.UUID      `bun:"id,pk,type:uuid" json:"id"`
	Name         string         `bun:"name,notnull" json:"name"`
	Description  *string        `bun:"description" json:"description,omitempty"`
	Category     *string        `bun:"category" json:"category,omitempty"`
	SKU          *string        `bun:"sku" json:"sku,omitempty"`
	MRP          *uint64        `bun:"mrp" json:"mrp,omitempty"`           // stored in cents
	Discount     *uint64        `bun:"discount" json:"discount,omitempty"` // stored in cents
	ExpiryDate   *time.Time     `bun:"expiry_date" json:"expiry_date,omitempty"`
	Manufacturer *string        `bun:"manufacturer" json:"manufacturer,omitempty"`
	Quantity     *string        `bun:"quantity" json:"quantity,omitempty"` // size descriptor, e.g. "500g"
	ReturnPolicy *string        `bun:"return_policy" json:"return_policy,omitempty"`
	UserID       uuid.UUID      `bun:"user_id,type:uuid,notnull" json:"user_id"`
	CreatedAt    time.Time      `bun:"created_at,notnull,default:now()" json:"created_at"`
	Photos       []ProductPhoto `bun:"rel:has-many,join:id=product_id" json:"photos"`
}

// ProductPhoto is an image reference owned by exactly one product. The object
// key is kept next to the public URL so removal can delete the stored object.
type ProductPhoto struct {
	tableName struct{}  `bun:"table:product_photos,alias:pp"`
	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProductID uuid.UUID `bun:"product_id,type:uuid,notnull" json:"product_id"`
	URL       string    `bun:"url,notnull" json:"url"`
	ObjectKey string    `bun:"object_key,notnull" json:"-"`
}
