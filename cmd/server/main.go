package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"canvas_shop_backend/internal/cache"
	"canvas_shop_backend/internal/clients"
	"canvas_shop_backend/internal/config"
	"canvas_shop_backend/internal/database"
	"canvas_shop_backend/internal/handlers"
	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/internal/repositories"
	"canvas_shop_backend/internal/router"
	"canvas_shop_backend/internal/services"
	"canvas_shop_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load(utils.Getenv("CONFIG_PATH", ""))
	if err != nil {
		utils.InitLogger("info", "console")
		utils.LogError(err, "Failed to load configuration")
		os.Exit(1)
	}
	utils.InitLogger(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(ctx, cfg.Database.DSN(), cfg.Database.SchemaPath)
	if err != nil {
		utils.LogError(err, "Failed to initialize database")
		os.Exit(1)
	}
	defer db.Close()

	store := newCache(ctx, cfg)
	defer store.Close()

	audit := newAuditRepository(ctx, cfg)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := audit.Close(closeCtx); err != nil {
			utils.LogError(err, "Failed to close audit store")
		}
	}()

	authRepo := repositories.NewAuthRepository(db)
	state := services.NewAppState(services.Repositories{
		Sizes:         repositories.NewCollectionRepository[models.CanvasSize](db, repositories.TableSizes),
		FrameTypes:    repositories.NewCollectionRepository[models.FrameType](db, repositories.TableFrameTypes),
		Paintings:     repositories.NewCollectionRepository[models.Painting](db, repositories.TablePaintings),
		Clients:       repositories.NewCollectionRepository[models.Client](db, repositories.TableClients),
		BlogPosts:     repositories.NewCollectionRepository[models.BlogPost](db, repositories.TableBlogPosts),
		HeroSlides:    repositories.NewCollectionRepository[models.HeroSlide](db, repositories.TableHeroSlides),
		Categories:    repositories.NewCollectionRepository[models.Category](db, repositories.TableCategories),
		Subcategories: repositories.NewCollectionRepository[models.Subcategory](db, repositories.TableSubcategories),
		Orders:        repositories.NewOrderRepository(db),
		Users:         authRepo,
	}, store, cfg.Cache.TTL)

	tokens, err := utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		utils.LogError(err, "Invalid auth configuration")
		os.Exit(1)
	}

	deliveryCosts, err := services.ParseDeliveryCosts(cfg.Checkout.DeliveryCosts)
	if err != nil {
		utils.LogError(err, "Invalid delivery cost configuration")
		os.Exit(1)
	}

	var photos services.PhotoProvider
	if cfg.Photos.AccessKey != "" {
		photos = clients.NewPhotoClient(&cfg.Photos)
	}

	authService := services.NewAuthService(authRepo, state, tokens)
	orderService := services.NewOrderService(state, clients.NewEmailClient(&cfg.Email), audit, services.OrderServiceConfig{
		CheckoutTimeout: cfg.Checkout.Timeout,
		NotifyTimeout:   cfg.Email.Timeout,
		DeliveryCosts:   deliveryCosts,
	})
	shippingService := services.NewShippingService(state, clients.NewCourierClient(&cfg.Courier), audit)
	catalogService := services.NewCatalogService(state, photos)

	if err := authService.EnsureBootstrapAdmin(ctx, cfg.Auth.BootstrapUsername, cfg.Auth.BootstrapPassword); err != nil {
		utils.LogError(err, "Failed to create bootstrap admin")
		os.Exit(1)
	}
	if err := state.Init(ctx); err != nil {
		utils.LogError(err, "Failed to load application state")
		os.Exit(1)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	router.Setup(engine, router.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Orders:     handlers.NewOrderHandler(orderService),
		Shipping:   handlers.NewShippingHandler(shippingService),
		Storefront: handlers.NewStorefrontHandler(state, catalogService, orderService),
		Catalog:    handlers.NewCatalogHandlers(state),
		Clients:    handlers.NewClientHandler(state.Clients),
		Reports:    handlers.NewReportHandler(services.NewReportService(state)),
	}, tokens)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Server.Port, "cache": cfg.Cache.Backend})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError(err, "Server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	utils.LogInfo("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Graceful shutdown failed")
	}
	state.Teardown()
}

func newCache(ctx context.Context, cfg *config.Config) cache.Cache {
	if cfg.Cache.Backend != "redis" {
		return cache.NewMemoryCache()
	}
	rc := cache.NewRedisCache(&cfg.Redis)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		utils.LogWarn("Redis unreachable, falling back to in-process cache", map[string]interface{}{"addr": cfg.Redis.Addr, "error": err.Error()})
		rc.Close()
		return cache.NewMemoryCache()
	}
	return rc
}

// newAuditRepository connects the order audit trail when MongoDB is configured.
func newAuditRepository(ctx context.Context, cfg *config.Config) repositories.AuditRepository {
	if cfg.MongoDB.URI == "" {
		return repositories.NoopAuditRepository{}
	}
	audit, err := repositories.NewMongoAuditRepository(ctx, &cfg.MongoDB)
	if err != nil {
		utils.LogWarn("Audit trail disabled", map[string]interface{}{"error": err.Error()})
		return repositories.NoopAuditRepository{}
	}
	return audit
}
