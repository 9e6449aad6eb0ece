package structs

// ProductRequest is the create/update payload for a product listing.
// Name is the only mandatory business field; the numeric fields arrive as
// free text and parse to absent when empty or malformed, never to zero.
type ProductRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=200"`
	Description  *string `json:"description,omitempty"`
	Category     *string `json:"category,omitempty"`
	SKU          *string `json:"sku,omitempty"`
	MRP          string  `json:"mrp,omitempty"`
	Discount     string  `json:"discount,omitempty"`
	ExpiryDate   *string `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Quantity     *string `json:"quantity,omitempty"`
	ReturnPolicy *string `json:"return_policy,omitempty"`

	// KeepPhotoIDs only matters on update: any stored photo whose id is not
	// listed here is removed (row and object) by set difference.
	KeepPhotoIDs []string `json:"keep_photo_ids,omitempty" validate:"omitempty,dive,uuid4"`
}
