package admin

import (
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/mateng0/shopkeeper-station/api/middleware"
	"github.com/mateng0/shopkeeper-station/services"
)

type AdminRoutesManager struct {
	logger         *gecho.Logger
	productService *services.ProductService
	storageService *services.StorageService
	mw             *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	storageService *services.StorageService,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:         logger,
		productService: productService,
		storageService: storageService,
		mw:             mw,
	}
}

func (arm *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(arm.mw.UserAuthMiddleware)
		r.Use(arm.mw.AdminAuthMiddleware)

		r.Get("/products", arm.ListAllProducts)

		r.Group(func(r chi.Router) {
			r.Use(arm.mw.CSRFMiddleware())
			r.Delete("/products/{id}", arm.DeleteProduct)
		})
	})
}
