package middleware

import (
	"github.com/MonkyMars/gecho"
	"github.com/mateng0/shopkeeper-station/database"
	"github.com/mateng0/shopkeeper-station/services"
	"github.com/mateng0/shopkeeper-station/structs"
)

type Middleware struct {
	cfg          *structs.Config
	logger       *gecho.Logger
	authService  *services.AuthService
	cacheService *services.CacheService
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, db *database.DB) *Middleware {
	return &Middleware{
		cfg:          cfg,
		logger:       logger,
		authService:  services.NewAuthService(cfg, logger, db),
		cacheService: services.NewCacheService(logger, cfg),
	}
}
