package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/octobees/recycling-finder/internal/batch"
	"github.com/octobees/recycling-finder/internal/entity"
	"github.com/octobees/recycling-finder/internal/materials"
	"github.com/octobees/recycling-finder/internal/places"
	"github.com/octobees/recycling-finder/internal/scan"
)

const searchKeyword = "recycling"

// PlacesClient is the slice of the places API the pipeline consumes.
type PlacesClient interface {
	Geocode(ctx context.Context, location string) (entity.Coordinates, error)
	Nearby(ctx context.Context, center entity.Coordinates, radiusMeters int, keyword, pageToken string) (places.Page, error)
	Details(ctx context.Context, placeID string) (places.Details, error)
}

// BatchExecutor runs a built batch against the relational store.
type BatchExecutor interface {
	ExecuteBatch(ctx context.Context, b batch.Batch) (batch.Result, error)
}

// SearchService runs the full pipeline for one location: discovery,
// normalization, emission, export, execution.
type SearchService struct {
	places     PlacesClient
	scanner    scan.SiteScanner
	normalizer *Normalizer
	emitter    *batch.Emitter
	executor   BatchExecutor
	exporter   *Exporter

	radiusMeters int
	maxResults   int

	now func() time.Time
}

// Report summarizes one pipeline run.
type Report struct {
	Location   string        `json:"location"`
	Discovered int           `json:"discovered"`
	Result     batch.Result  `json:"result"`
	RecordsDoc string        `json:"records_doc,omitempty"`
	ScriptDoc  string        `json:"script_doc,omitempty"`
	Elapsed    time.Duration `json:"elapsed"`
}

// NewSearchService wires the pipeline. Executor may be nil for export-only
// runs (no rows are written, documents still land on disk).
func NewSearchService(placesClient PlacesClient, scanner scan.SiteScanner, normalizer *Normalizer, executor BatchExecutor, exporter *Exporter, radiusMeters, maxResults int) *SearchService {
	if radiusMeters <= 0 {
		radiusMeters = 5000
	}
	if maxResults <= 0 {
		maxResults = 100
	}
	return &SearchService{
		places:       placesClient,
		scanner:      scanner,
		normalizer:   normalizer,
		emitter:      batch.NewEmitter(),
		executor:     executor,
		exporter:     exporter,
		radiusMeters: radiusMeters,
		maxResults:   maxResults,
		now:          time.Now,
	}
}

// Run executes the pipeline for a free-form location string.
func (s *SearchService) Run(ctx context.Context, location string) (Report, error) {
	started := s.now()
	report := Report{Location: location}

	center, err := s.places.Geocode(ctx, location)
	if err != nil {
		return report, fmt.Errorf("resolve location: %w", err)
	}

	records, err := s.discover(ctx, center)
	if err != nil {
		return report, err
	}
	report.Discovered = len(records)

	normalized := s.normalizer.NormalizeAll(records)
	built := s.emitter.Build(normalized)

	if s.exporter != nil {
		if path, err := s.exporter.WriteNormalized(location, started, normalized); err != nil {
			log.Printf("search: records export failed: %v", err)
		} else {
			report.RecordsDoc = path
		}
		if path, err := s.exporter.WriteScript(location, started, batch.RenderScript(built)); err != nil {
			log.Printf("search: script export failed: %v", err)
		} else {
			report.ScriptDoc = path
		}
	}

	if s.executor != nil {
		result, err := s.executor.ExecuteBatch(ctx, built)
		if err != nil {
			return report, err
		}
		report.Result = result
	}

	report.Elapsed = s.now().Sub(started)
	return report, nil
}

// discover walks the paged nearby search and assembles raw records. A failed
// details lookup skips that place; an expired cursor ends paging with the
// results collected so far.
func (s *SearchService) discover(ctx context.Context, center entity.Coordinates) ([]entity.Business, error) {
	var (
		records   []entity.Business
		pageToken string
	)

	for {
		page, err := s.places.Nearby(ctx, center, s.radiusMeters, searchKeyword, pageToken)
		if err != nil {
			if errors.Is(err, places.ErrCursorExpired) {
				log.Printf("search: page cursor expired, keeping %d records", len(records))
				return records, nil
			}
			return nil, fmt.Errorf("nearby search: %w", err)
		}

		for _, summary := range page.Results {
			record, err := s.assemble(ctx, summary)
			if err != nil {
				log.Printf("search: skipping place %q: %v", summary.Name, err)
				continue
			}
			records = append(records, record)
			if len(records) >= s.maxResults {
				log.Printf("search: reached max results (%d)", s.maxResults)
				return records, nil
			}
		}

		if page.NextPageToken == "" {
			return records, nil
		}
		pageToken = page.NextPageToken
	}
}

// assemble combines the summary, the details lookup, and the website scan
// into one raw record.
func (s *SearchService) assemble(ctx context.Context, summary places.Summary) (entity.Business, error) {
	details, err := s.places.Details(ctx, summary.PlaceID)
	if err != nil {
		return entity.Business{}, err
	}

	record := entity.Business{
		Name:             summary.Name,
		Address:          details.FormattedAddress,
		Coordinates:      summary.Coordinates,
		PlaceID:          summary.PlaceID,
		Phone:            details.Phone,
		Website:          details.Website,
		Rating:           summary.Rating,
		OpeningHours:     details.WeekdayHours,
		AddressParts:     details.AddressParts,
		WebsiteMaterials: map[string][]string{},
	}
	if record.Rating == nil {
		record.Rating = details.Rating
	}

	// Profile-derived mentions are keyword hits on the business name; the
	// website scan adds the pre-categorized set.
	record.Materials = profileMentions(record.Name)
	if record.Website != nil {
		record.WebsiteMaterials = s.scanner.ScanSite(ctx, *record.Website)
	}
	return record, nil
}

// profileMentions extracts material keywords from the business name, sorted
// so repeated runs produce identical records.
func profileMentions(name string) []string {
	hits := scan.MatchKeywords(name, materials.ScanKeywords())
	var mentions []string
	for _, keywords := range hits {
		mentions = append(mentions, keywords...)
	}
	sort.Strings(mentions)
	return mentions
}
