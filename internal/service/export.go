package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/octobees/recycling-finder/internal/entity"
)

// Exporter writes the offline artifacts of a pipeline run: the normalized
// records document and the generated statements document. The output
// directory is created on first use.
type Exporter struct {
	Dir string
}

// NewExporter returns an exporter rooted at dir.
func NewExporter(dir string) *Exporter {
	if dir == "" {
		dir = "output"
	}
	return &Exporter{Dir: dir}
}

// BaseName derives the deterministic file stem for a run: the lowercased
// location with spaces and commas collapsed to underscores, suffixed with
// the run timestamp.
func BaseName(location string, ts time.Time) string {
	stem := strings.ToLower(strings.TrimSpace(location))
	stem = strings.ReplaceAll(stem, ",", " ")
	stem = strings.Join(strings.Fields(stem), "_")
	return fmt.Sprintf("%s_%s", stem, ts.Format("20060102_150405"))
}

// WriteNormalized writes the normalized-records JSON document and returns
// its path.
func (e *Exporter) WriteNormalized(location string, ts time.Time, records []entity.NormalizedBusiness) (string, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal normalized records: %w", err)
	}

	path := filepath.Join(e.Dir, BaseName(location, ts)+".json")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write normalized records: %w", err)
	}
	return path, nil
}

// WriteScript writes the generated-statements SQL document and returns its
// path.
func (e *Exporter) WriteScript(location string, ts time.Time, script string) (string, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(e.Dir, BaseName(location, ts)+".sql")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		return "", fmt.Errorf("write statements document: %w", err)
	}
	return path, nil
}
