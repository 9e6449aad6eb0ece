package admin

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mateng0/shopkeeper-station/api/middleware"
	"github.com/mateng0/shopkeeper-station/handling"
)

// DeleteProduct handles DELETE /admin/products/{id}. Admins can remove any
// vendor's listing.
func (arm *AdminRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil || id == uuid.Nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	photos, err := arm.productService.DeleteProduct(r.Context(), id, claims.Sub, true)
	if err != nil {
		handling.RespondError(err, "failed to delete product", arm.logger, w)
		return
	}

	for _, photo := range photos {
		if err := arm.storageService.DeletePhoto(r.Context(), photo.ObjectKey); err != nil {
			arm.logger.Warn("Failed to delete photo object",
				gecho.Field("error", err),
				gecho.Field("key", photo.ObjectKey),
			)
		}
	}

	arm.logger.Info("Product removed by admin", gecho.Field("id", id), gecho.Field("admin_id", claims.Sub))

	gecho.Success(w,
		gecho.WithMessage("Product deleted"),
		gecho.Send(),
	)
}
