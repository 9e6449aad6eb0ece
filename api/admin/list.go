package admin

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/mateng0/shopkeeper-station/handling"
)

// ListAllProducts handles GET /admin/products?search=q over every vendor's
// listings. The search matches name, category, and description.
func (arm *AdminRoutesManager) ListAllProducts(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseListOptions(r)
	if err != nil {
		arm.logger.Warn("Invalid query parameters", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid query parameters"), gecho.Send())
		return
	}

	products, err := arm.productService.SearchProducts(r.Context(), opts.Search)
	if err != nil {
		arm.logger.Error("Failed to search products", gecho.Field("error", err), gecho.Field("search", opts.Search))
		gecho.InternalServerError(w,
			gecho.WithMessage("Failed to fetch products"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products": products,
			"meta": map[string]any{
				"count":  len(products),
				"search": opts.Search,
			},
		}),
		gecho.Send(),
	)
}
