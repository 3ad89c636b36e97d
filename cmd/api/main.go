package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/recycling-finder/internal/auth"
	"github.com/octobees/recycling-finder/internal/config"
	"github.com/octobees/recycling-finder/internal/database"
	"github.com/octobees/recycling-finder/internal/handler"
	"github.com/octobees/recycling-finder/internal/materials"
	middlewarepkg "github.com/octobees/recycling-finder/internal/middleware"
	"github.com/octobees/recycling-finder/internal/places"
	"github.com/octobees/recycling-finder/internal/repository"
	"github.com/octobees/recycling-finder/internal/router"
	"github.com/octobees/recycling-finder/internal/scan"
	"github.com/octobees/recycling-finder/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	businessesRepo := repository.NewPGXBusinessesRepository(pool)
	materialsRepo := repository.NewPGXMaterialsRepository(pool)

	authService := service.NewAuthService(usersRepo, jwtManager)
	materialsService := service.NewMaterialsService(materialsRepo)
	businessesService := service.NewBusinessesService(businessesRepo)

	// Seed the stored vocabulary from the built-in one on first run, then
	// always normalize against what the store holds.
	vocab, err := materialsService.Vocabulary(ctx)
	if err != nil {
		log.Fatalf("failed to load material vocabulary: %v", err)
	}
	if len(vocab) == 0 {
		seeded, err := materialsRepo.BulkUpsert(ctx, materials.Vocabulary())
		if err != nil {
			log.Fatalf("failed to seed material vocabulary: %v", err)
		}
		log.Printf("seeded material vocabulary entries=%d", seeded.Total)
		vocab = materials.Vocabulary()
	}

	httpClient := &http.Client{Timeout: 15 * time.Second}
	placesClient := places.NewClient(httpClient, cfg.GoogleAPIKey)

	var scanner scan.SiteScanner
	if cfg.ScanWorkerURL != "" {
		scanner = scan.NewWorkerScanner(nil, cfg.ScanWorkerURL)
	} else {
		scanner = scan.NewHTMLScanner(httpClient)
	}

	normalizer := service.NewNormalizer(vocab, cfg.PhoneRegion)
	exporter := service.NewExporter(cfg.OutputDir)
	searchService := service.NewSearchService(placesClient, scanner, normalizer, businessesRepo, exporter, cfg.SearchRadius, cfg.MaxResults)

	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Users:       handler.NewUserAdminHandler(service.NewUserService(usersRepo)),
		Businesses:  handler.NewBusinessesHandler(businessesService),
		AdminUpload: handler.NewAdminUploadHandler(materialsService),
		Search:      handler.NewSearchHandler(searchService),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
