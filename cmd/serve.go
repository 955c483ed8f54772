package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"

	"Dealership/checkout"
	"Dealership/config"
	"Dealership/images"
	"Dealership/jwt"
	"Dealership/repository"
	"Dealership/routers"
	"Dealership/service"
	"Dealership/session"
	"Dealership/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "Migrate the database before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer logger.Sync()
	gin.SetMode(cfg.Server.Mode)

	db, err := config.SetupDatabase(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if autoMigrate {
		if err := config.Migrate(db); err != nil {
			return err
		}
	}

	rdb, err := config.SetupRedisConnection(cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	signer, err := jwt.NewSignerFromFiles(cfg.Auth.PrivateKeyPath, cfg.Auth.PublicKeyPath)
	if err != nil {
		return err
	}

	deps, err := buildDependencies(cfg, db, rdb, signer, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      routers.SetupRouters(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func buildDependencies(cfg config.Config, db *gorm.DB, rdb *redis.Client, signer *jwt.Signer, logger *zap.Logger) (routers.Dependencies, error) {
	client, staticDir, err := setupStorage(cfg)
	if err != nil {
		return routers.Dependencies{}, err
	}
	resolver := images.NewResolver(client, allowedImageHosts(cfg))

	cars := repository.NewCarRepository(db)
	orders := repository.NewOrderRepository(db)

	return routers.Dependencies{
		Catalog:  service.NewCatalog(cars, logger),
		Listings: service.NewListings(cars, resolver, logger),
		Orders:   service.NewOrders(cars, orders, checkout.NewQuoteStore(rdb, cfg.Checkout.QuoteTTL), logger),
		TradeIns: service.NewTradeIns(cars, repository.NewTradeInRepository(db), resolver, logger),
		Accounts: service.NewAccounts(
			repository.NewProfileRepository(db),
			cars,
			orders,
			session.NewStore(rdb, cfg.Auth.SessionTTL),
			session.NewBroker(rdb),
			signer,
			logger,
		),
		Storage:        client,
		StaticDir:      staticDir,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		SlowRequest:    cfg.Log.SlowRequest,
		Logger:         logger,
	}, nil
}

// setupStorage returns the object storage client and, for local storage,
// the directory the router serves at /uploads.
func setupStorage(cfg config.Config) (storage.Client, string, error) {
	switch cfg.Storage.Driver {
	case "local":
		client := storage.NewLocalClient(cfg.Storage.LocalDir, cfg.Storage.PublicBaseURL)
		return client, client.Root(), nil
	case "remote":
		return storage.NewRemoteClient(cfg.Backend.URL, cfg.Backend.APIKey), "", nil
	default:
		return nil, "", fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

// allowedImageHosts is the configured allow-list plus the host that serves
// uploaded images, so stored URLs can be submitted again on edit.
func allowedImageHosts(cfg config.Config) []string {
	hosts := append([]string{}, cfg.Images.Domains...)

	publicURL := cfg.Storage.PublicBaseURL
	if cfg.Storage.Driver == "remote" {
		publicURL = cfg.Backend.URL
	}
	if u, err := url.Parse(publicURL); err == nil && u.Host != "" {
		hosts = append(hosts, u.Host)
	}
	return hosts
}
