package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/octobees/recycling-finder/internal/entity"
	"github.com/octobees/recycling-finder/internal/repository"
)

// MaterialsService exposes read/write operations for the material vocabulary.
type MaterialsService struct {
	repo repository.MaterialsRepository
}

// CSVValidationError indicates that the provided CSV payload is invalid.
type CSVValidationError struct {
	Message string
}

// Error implements the error interface.
func (e CSVValidationError) Error() string {
	return e.Message
}

// UploadSummary reports how many rows were inserted or updated during import.
type UploadSummary struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Total    int `json:"total"`
}

// NewMaterialsService creates a new instance of MaterialsService.
func NewMaterialsService(repo repository.MaterialsRepository) *MaterialsService {
	return &MaterialsService{repo: repo}
}

// Vocabulary returns the stored vocabulary for normalization runs.
func (s *MaterialsService) Vocabulary(ctx context.Context) ([]entity.Material, error) {
	return s.repo.LoadVocabulary(ctx)
}

// ImportMaterialsCSV ingests vocabulary entries from a CSV reader. Rows
// missing a category or description are skipped; a malformed CO2 value
// rejects the whole upload.
func (s *MaterialsService) ImportMaterialsCSV(ctx context.Context, r io.Reader) (UploadSummary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return UploadSummary{}, CSVValidationError{Message: "csv file is empty"}
		}
		return UploadSummary{}, fmt.Errorf("read csv header: %w", err)
	}

	indexMap, valErr := buildHeaderIndex(header)
	if valErr != nil {
		return UploadSummary{}, valErr
	}

	var (
		records []entity.Material
		rowNum  = 1
	)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return UploadSummary{}, fmt.Errorf("read csv row: %w", err)
		}

		rowNum++

		category := strings.TrimSpace(row[indexMap["category_name"]])
		description := strings.TrimSpace(row[indexMap["description"]])
		if category == "" || description == "" {
			continue
		}

		co2, parseErr := parseOptionalFloat(row[indexMap["co2_savings"]])
		if parseErr != nil {
			return UploadSummary{}, CSVValidationError{Message: fmt.Sprintf("invalid co2_savings value on row %d", rowNum)}
		}

		material := entity.Material{Category: category, Description: description}
		if co2 != nil {
			material.CO2Savings = *co2
		}
		records = append(records, material)
	}

	result, err := s.repo.BulkUpsert(ctx, records)
	if err != nil {
		return UploadSummary{}, err
	}

	return UploadSummary{
		Inserted: result.Inserted,
		Updated:  result.Updated,
		Total:    result.Total,
	}, nil
}

var requiredCSVHeaders = []string{"category_name", "description", "co2_savings"}

func buildHeaderIndex(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	missing := make([]string, 0)
	for _, required := range requiredCSVHeaders {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, CSVValidationError{Message: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}
	return index, nil
}

func parseOptionalFloat(value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
