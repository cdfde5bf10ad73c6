// Command storefront serves the Khattak MART catalog, checkout and admin back
// office over HTTP, plus a gRPC health endpoint.
//
// @title Khattak MART storefront API
// @version 1.0
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/MikeMC777/khattak-mart/docs"
	"github.com/MikeMC777/khattak-mart/internal/admin"
	"github.com/MikeMC777/khattak-mart/internal/auth"
	"github.com/MikeMC777/khattak-mart/internal/catalog"
	"github.com/MikeMC777/khattak-mart/internal/config"
	"github.com/MikeMC777/khattak-mart/internal/httpx"
	"github.com/MikeMC777/khattak-mart/internal/media"
	"github.com/MikeMC777/khattak-mart/internal/notify"
	"github.com/MikeMC777/khattak-mart/internal/order"
	"github.com/MikeMC777/khattak-mart/internal/pgdb"
	"github.com/MikeMC777/khattak-mart/internal/health"
)

type app struct {
	cats      *catalog.Categories
	view      *catalog.Cached
	orders    order.Repository
	placement *order.Placement
	dashboard *order.Dashboard
	images    *media.Local
	products  *admin.Products
	adminOrd  *admin.Orders
	settings  *admin.Settings
	creds     *auth.CredentialStore
	sessions  *auth.Sessions
	check     health.Checker
	close     func()

	cfg    config.Config
	logger *zap.Logger
}

// newApp wires the stores and workflows for the configured storage driver.
func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	cats, err := catalog.DefaultCategories()
	if err != nil {
		return nil, err
	}
	images, err := media.NewLocal(cfg.UploadsDir)
	if err != nil {
		return nil, err
	}

	a := &app{cats: cats, images: images, cfg: cfg, logger: logger, close: func() {}}
	var products catalog.Repository
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		pool, err := pgdb.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		products = catalog.NewPGRepo(pool, cats)
		a.orders = order.NewPGRepo(pool)
		a.check = pool.Ping
		a.close = pool.Close
	default:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		products = catalog.NewJSONRepo(filepath.Join(cfg.DataDir, "products.json"), cats, logger)
		a.orders = order.NewJSONRepo(filepath.Join(cfg.DataDir, "orders.json"), logger)
		a.check = func(context.Context) error {
			_, err := os.Stat(cfg.DataDir)
			return err
		}
	}

	a.view = catalog.NewCached(products)
	a.placement = order.NewPlacement(a.orders, notify.WhatsApp{}, cfg.StoreName, cfg.WhatsAppNumber, logger)
	a.dashboard = order.NewDashboard(a.orders)
	a.products = admin.NewProducts(products, images, cats, a.view, logger)
	a.adminOrd = admin.NewOrders(a.orders, logger)
	a.creds = auth.NewCredentialStore(cfg.CredentialsPath, cfg.AdminUsername, cfg.AdminPassword)
	a.settings = admin.NewSettings(a.creds, logger)
	a.sessions = auth.NewSessions(cfg.SessionTTL)
	return a, nil
}

func (a *app) router() *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(a.logger))

	r.GET("/healthz", healthHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.Static("/uploads", a.images.Dir())

	r.GET("/categories", listCategoriesHandler(a.cats))
	r.GET("/products", listProductsHandler(a.view, a.cats, a.logger))
	r.GET("/products/:id", getProductHandler(a.view, a.logger))
	r.POST("/checkout", checkoutHandler(a.placement, a.images, a.logger))
	r.GET("/orders/:id", getOrderHandler(a.orders, a.logger))

	r.POST("/admin/login", loginHandler(a.creds, a.sessions, a.cfg.CookieSecure, a.logger))
	r.POST("/admin/logout", logoutHandler(a.sessions, a.cfg.CookieSecure))

	g := r.Group("/admin", httpx.RequireAdmin(a.sessions))
	g.GET("/dashboard", dashboardHandler(a.dashboard, a.logger))
	g.GET("/products", adminListProductsHandler(a.products, a.logger))
	g.POST("/products", createProductHandler(a.products))
	g.PUT("/products/:id", updateProductHandler(a.products))
	g.DELETE("/products/:id", deleteProductHandler(a.products))
	g.GET("/orders", adminListOrdersHandler(a.adminOrd, a.logger))
	g.PUT("/orders/:id/status", updateOrderStatusHandler(a.adminOrd))
	g.GET("/settings", getSettingsHandler(a.settings))
	g.PUT("/settings", updateSettingsHandler(a.settings))
	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	cfg.Log(logger)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize storefront", zap.Error(err))
	}
	defer a.close()

	var wg sync.WaitGroup
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting HTTP server", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal("Failed to listen for gRPC", zap.String("addr", cfg.GRPCAddr), zap.Error(err))
	}
	hs := health.New(a.check, 30*time.Second, logger)
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting gRPC health server", zap.String("addr", cfg.GRPCAddr))
		if err := hs.Serve(ctx, lis); err != nil {
			logger.Error("gRPC server failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down servers...")
	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	wg.Wait()
	logger.Info("All servers stopped")
}
