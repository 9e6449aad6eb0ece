package api

import (
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/mateng0/shopkeeper-station/api/admin"
	"github.com/mateng0/shopkeeper-station/api/auth"
	"github.com/mateng0/shopkeeper-station/api/health"
	"github.com/mateng0/shopkeeper-station/api/middleware"
	"github.com/mateng0/shopkeeper-station/api/products"
	"github.com/mateng0/shopkeeper-station/api/vendor"
	"github.com/mateng0/shopkeeper-station/services"
	"github.com/mateng0/shopkeeper-station/structs"
)

type routerManager struct {
	productRoutes *products.ProductRoutesManager
	vendorRoutes  *vendor.VendorRoutesManager
	adminRoutes   *admin.AdminRoutesManager
	authRoutes    *auth.AuthRoutesManager
	healthRoutes  *health.HealthRoutesManager
}

func NewRouterManager(
	logger *gecho.Logger,
	sm *services.ServiceManager,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *routerManager {
	return &routerManager{
		productRoutes: products.NewProductRoutesManager(logger, sm.ProductService),
		vendorRoutes:  vendor.NewVendorRoutesManager(logger, sm.ProductService, sm.StorageService, cfg, mw),
		adminRoutes:   admin.NewAdminRoutesManager(logger, sm.ProductService, sm.StorageService, mw),
		authRoutes:    auth.NewAuthRoutesManager(logger, sm.AuthService, sm.EmailService, sm.CacheService, cfg, mw),
		healthRoutes:  health.NewHealthRoutesManager(sm.HealthService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.productRoutes.RegisterRoutes(r)
	rm.vendorRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
}
