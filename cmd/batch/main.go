package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/octobees/recycling-finder/internal/config"
	"github.com/octobees/recycling-finder/internal/database"
	"github.com/octobees/recycling-finder/internal/materials"
	"github.com/octobees/recycling-finder/internal/places"
	"github.com/octobees/recycling-finder/internal/repository"
	"github.com/octobees/recycling-finder/internal/scan"
	"github.com/octobees/recycling-finder/internal/service"
)

// The batch command runs one discovery pipeline from the terminal. Without a
// DATABASE_URL it is export-only: the normalized records document and the
// statements script land in the output directory and nothing touches a
// database.
func main() {
	var execute bool
	flag.BoolVar(&execute, "execute", false, "execute the emitted batch against DATABASE_URL")
	flag.Parse()

	location := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if location == "" {
		fmt.Fprintln(os.Stderr, "usage: batch [-execute] <location>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	vocab := materials.Vocabulary()

	var executor service.BatchExecutor
	if execute {
		if cfg.DatabaseURL == "" {
			log.Fatal("-execute requires DATABASE_URL")
		}
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}
		defer pool.Close()

		if err := database.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("failed to ensure schema: %v", err)
		}

		materialsRepo := repository.NewPGXMaterialsRepository(pool)
		stored, err := materialsRepo.LoadVocabulary(ctx)
		if err != nil {
			log.Fatalf("failed to load material vocabulary: %v", err)
		}
		if len(stored) == 0 {
			if _, err := materialsRepo.BulkUpsert(ctx, vocab); err != nil {
				log.Fatalf("failed to seed material vocabulary: %v", err)
			}
		} else {
			vocab = stored
		}
		executor = repository.NewPGXBusinessesRepository(pool)
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
	search := service.NewSearchService(placesClient, scanner, normalizer, executor, exporter, cfg.SearchRadius, cfg.MaxResults)

	report, err := search.Run(ctx, location)
	if err != nil {
		log.Fatalf("pipeline run failed: %v", err)
	}

	log.Printf("location=%q discovered=%d elapsed=%s", report.Location, report.Discovered, report.Elapsed)
	if report.RecordsDoc != "" {
		log.Printf("records document: %s", report.RecordsDoc)
	}
	if report.ScriptDoc != "" {
		log.Printf("statements script: %s", report.ScriptDoc)
	}
	if executor != nil {
		log.Printf("run_id=%s committed=%d failed=%d", report.Result.RunID, report.Result.Succeeded, len(report.Result.Ledger))
		for _, failure := range report.Result.Ledger {
			log.Printf("failed business %q: %s", failure.BusinessName, failure.Message)
		}
	}
}
