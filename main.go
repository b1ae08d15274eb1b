package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"example.com/productgrid/internal/app"
	domcategory "example.com/productgrid/internal/domain/category"
	domproduct "example.com/productgrid/internal/domain/product"
	"example.com/productgrid/internal/infra/export"
	"example.com/productgrid/internal/infra/persistence/mysql"
	"example.com/productgrid/internal/infra/persistence/postgres"
	"example.com/productgrid/internal/infra/persistence/static"
	"example.com/productgrid/internal/infra/security"
	httphandler "example.com/productgrid/internal/interface/http"
	authuc "example.com/productgrid/internal/usecase/auth"
	griduc "example.com/productgrid/internal/usecase/grid"
	productuc "example.com/productgrid/internal/usecase/product"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		if err := hashPassword(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	products, cleanup, err := loadProducts(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	logger.Info("catalog loaded", slog.String("source", cfg.DataSource), slog.Int("products", len(products)))

	opts := griduc.Options{
		PageSize: cfg.GridPageSize,
		Excel:    export.NewExcelExporter(),
		Logger:   logger,
	}
	if cfg.GotenbergURL != "" {
		opts.PDF = &export.PDFExporter{
			Endpoint: cfg.GotenbergURL,
			Client:   &http.Client{Timeout: 30 * time.Second},
			Title:    "Products",
		}
	} else {
		logger.Warn("GOTENBERG_URL not set, pdf export disabled")
	}

	grid := griduc.NewController(products, opts)
	unsubscribe := grid.Subscribe(func(v griduc.View) {
		logger.Debug("grid rendered",
			slog.Uint64("version", v.Version),
			slog.Int("total", v.Total),
			slog.Int("rows", len(v.Data)),
		)
	})
	defer unsubscribe()

	deps := httphandler.Dependencies{
		Grid:            grid,
		Logger:          logger,
		StrictErrors:    cfg.GridStrictErrors,
		ExportRateLimit: cfg.ExportRateLimit,
	}
	if cfg.AuthEnabled() {
		deps.AuthService = authuc.NewService(
			static.NewUserRepository(cfg.AuthEditorUsername, cfg.AuthEditorPasswordHash),
			security.NewBcryptService(bcrypt.DefaultCost),
			security.NewJWTService(cfg.AuthJWTSecret, cfg.AuthTokenTTL),
		)
	} else if cfg.IsProduction() {
		logger.Warn("AUTH_JWT_SECRET not set, grid edits are unauthenticated")
	}

	srv := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           httphandler.NewAPI(deps).Router(),
		ReadTimeout:       cfg.AppReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.AppWriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", cfg.AppAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// loadProducts reads the initial collection from the configured source. The
// returned cleanup releases any database handle.
func loadProducts(ctx context.Context, cfg *app.Config) ([]domproduct.Product, func(), error) {
	var (
		repo       domproduct.Repository
		categories domcategory.Repository
		cleanup    = func() {}
	)

	switch cfg.DataSource {
	case app.SourceMySQL:
		db, err := mysql.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { _ = db.Close() }
		repo = mysql.NewProductRepository(db)
		categories = mysql.NewCategoryRepository(db)
	case app.SourcePostgres:
		pool, err := postgres.Open(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, err
		}
		cleanup = pool.Close
		repo = postgres.NewProductRepository(pool)
		categories = postgres.NewCategoryRepository(pool)
	default:
		if cfg.ProductsFile != "" {
			fileRepo, err := static.NewFileProductRepository(cfg.ProductsFile)
			if err != nil {
				return nil, nil, err
			}
			repo = fileRepo
		} else {
			repo = static.NewProductRepository()
		}
	}

	products, err := productuc.NewService(repo, categories).LoadCatalog(ctx)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return products, cleanup, nil
}

func hashPassword(args []string) error {
	if len(args) != 1 || args[0] == "" {
		return errors.New("usage: productgrid hash-password <password>")
	}
	hash, err := security.NewBcryptService(bcrypt.DefaultCost).Hash(args[0])
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}
