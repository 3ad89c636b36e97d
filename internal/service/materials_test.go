package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/octobees/recycling-finder/internal/entity"
	"github.com/octobees/recycling-finder/internal/repository"
)

type mockMaterialsRepository struct {
	load func(ctx context.Context) ([]entity.Material, error)
	bulk func(ctx context.Context, materials []entity.Material) (repository.BulkUpsertResult, error)
}

func (m *mockMaterialsRepository) LoadVocabulary(ctx context.Context) ([]entity.Material, error) {
	if m.load != nil {
		return m.load(ctx)
	}
	return nil, errors.New("load not implemented")
}

func (m *mockMaterialsRepository) BulkUpsert(ctx context.Context, materials []entity.Material) (repository.BulkUpsertResult, error) {
	if m.bulk != nil {
		return m.bulk(ctx, materials)
	}
	return repository.BulkUpsertResult{}, errors.New("bulk not implemented")
}

func TestImportMaterialsCSV(t *testing.T) {
	csv := "category_name,description,co2_savings\n" +
		"Metals,Aluminum Cans,9.13\n" +
		",Skipped Row,1.0\n" +
		"Glass,Clear Glass,\n"

	var captured []entity.Material
	svc := NewMaterialsService(&mockMaterialsRepository{
		bulk: func(ctx context.Context, materials []entity.Material) (repository.BulkUpsertResult, error) {
			captured = materials
			return repository.BulkUpsertResult{Inserted: 2, Total: 2}, nil
		},
	})

	summary, err := svc.ImportMaterialsCSV(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Inserted != 2 || summary.Total != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(captured) != 2 {
		t.Fatalf("expected 2 records (blank category skipped), got %d", len(captured))
	}
	if captured[0].CO2Savings != 9.13 {
		t.Fatalf("co2 not parsed: %+v", captured[0])
	}
	if captured[1].CO2Savings != 0 {
		t.Fatalf("empty co2 should default to zero: %+v", captured[1])
	}
}

func TestImportMaterialsCSV_Validation(t *testing.T) {
	tests := map[string]string{
		"empty file":     "",
		"missing column": "category_name,description\nMetals,Copper\n",
		"bad co2":        "category_name,description,co2_savings\nMetals,Copper,lots\n",
	}

	svc := NewMaterialsService(&mockMaterialsRepository{})
	for name, csv := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ImportMaterialsCSV(context.Background(), strings.NewReader(csv))
			var validationErr CSVValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected CSVValidationError, got %v", err)
			}
		})
	}
}

func TestMaterialsService_Vocabulary(t *testing.T) {
	svc := NewMaterialsService(&mockMaterialsRepository{
		load: func(ctx context.Context) ([]entity.Material, error) {
			return []entity.Material{{Category: "Metals", Description: "Copper"}}, nil
		},
	})

	vocab, err := svc.Vocabulary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vocab) != 1 || vocab[0].Description != "Copper" {
		t.Fatalf("unexpected vocabulary: %+v", vocab)
	}
}
