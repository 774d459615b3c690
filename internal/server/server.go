package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"togetherbikes/internal/catalog"
	"togetherbikes/internal/checkout"
	"togetherbikes/internal/config"
	"togetherbikes/internal/identity"
	custommiddleware "togetherbikes/internal/middleware"
	"togetherbikes/internal/repository"
	"togetherbikes/internal/store"
	"togetherbikes/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
	bridge *store.SyncBridge
}

// NewServer wires the storefront stack behind a chi router. A nil db selects
// mock mode (in-memory repositories and identity); a nil redis client keeps
// profile state in process memory.
func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) *Server {
	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 300,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit",
	}, logger))

	// Repositories and the identity gateway. Without a database the store
	// still works end to end, it just forgets accounts on restart.
	var (
		cartRepo  repository.CartItemRepository
		favRepo   repository.FavoriteRepository
		orderRepo repository.OrderRepository
		gateway   identity.Gateway
	)
	if db != nil {
		cartRepo = repository.NewCartItemRepository(db)
		favRepo = repository.NewFavoriteRepository(db)
		orderRepo = repository.NewOrderRepository(db)
		gateway = identity.NewLiveGateway(repository.NewUserRepository(db), repository.NewSessionTokenRepository(db),
			cfg.JWT.Secret, cfg.JWT.AccessExpiry, logger)
	} else {
		logger.Warn("No database configured, running with in-memory repositories")
		cartRepo = repository.NewMemoryCartItemRepository()
		favRepo = repository.NewMemoryFavoriteRepository()
		orderRepo = repository.NewMemoryOrderRepository()
		gateway = identity.NewMemoryGateway(logger)
	}

	var local store.LocalStore
	if redisClient != nil {
		local = store.NewRedisLocalStore(redisClient)
	} else {
		logger.Warn("No Redis configured, keeping profile state in process memory")
		local = store.NewMemoryLocalStore()
	}

	cat := catalog.NewStore()
	cartEngine := store.NewCartEngine(local, cartRepo, logger)
	wishlistEngine := store.NewWishlistEngine(local, favRepo, logger)

	bridge := store.NewSyncBridge(cartEngine, wishlistEngine, logger)
	bridge.Start(gateway)

	checkoutSvc := checkout.NewService(cartEngine, orderRepo,
		checkout.NewSandboxPaymentGateway(cfg.Payment.SecretKey), logger)

	router.Use(custommiddleware.AuthMiddleware(gateway, logger))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	transport.NewCatalogHandler(cat, logger).RegisterRoutes(router)

	router.Group(func(r chi.Router) {
		r.Use(custommiddleware.RequireProfile())
		transport.NewAuthHandler(gateway, logger).RegisterRoutes(r)
		transport.NewCartHandler(cartEngine, cat, logger).RegisterRoutes(r)
		transport.NewWishlistHandler(wishlistEngine, cat, logger).RegisterRoutes(r)
		transport.NewCheckoutHandler(checkoutSvc, logger).RegisterRoutes(r)
	})

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
		bridge: bridge,
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	s.bridge.Stop()

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close Redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
