package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/recycling-finder/internal/entity"
)

// MaterialsRepository describes persistence for the canonical material
// vocabulary.
type MaterialsRepository interface {
	LoadVocabulary(ctx context.Context) ([]entity.Material, error)
	BulkUpsert(ctx context.Context, materials []entity.Material) (BulkUpsertResult, error)
}

// BulkUpsertResult summarises the number of rows inserted or updated.
type BulkUpsertResult struct {
	Inserted int
	Updated  int
	Total    int
}

// PGXMaterialsRepository implements MaterialsRepository using pgx.
type PGXMaterialsRepository struct {
	pool pgxPool
}

// NewPGXMaterialsRepository wires a pgx backed repository.
func NewPGXMaterialsRepository(pool *pgxpool.Pool) *PGXMaterialsRepository {
	return &PGXMaterialsRepository{pool: pool}
}

// LoadVocabulary returns the stored vocabulary ordered by category then
// description, matching the order the reconciler expects.
func (r *PGXMaterialsRepository) LoadVocabulary(ctx context.Context) ([]entity.Material, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT category_name, description, co2_savings_per_ton
        FROM recycling.materials
        ORDER BY category_name, description
    `)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	defer rows.Close()

	var vocab []entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.Category, &m.Description, &m.CO2Savings); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		vocab = append(vocab, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}
	return vocab, nil
}

const materialUpsertSQL = `
        INSERT INTO recycling.materials (category_name, description, co2_savings_per_ton)
        VALUES ($1, $2, $3)
        ON CONFLICT (description) DO UPDATE SET
            category_name = EXCLUDED.category_name,
            co2_savings_per_ton = EXCLUDED.co2_savings_per_ton
        RETURNING xmax = 0;
    `

// BulkUpsert persists a set of vocabulary entries with idempotent semantics.
// Descriptions are unique, so re-running an import updates in place.
func (r *PGXMaterialsRepository) BulkUpsert(ctx context.Context, materials []entity.Material) (BulkUpsertResult, error) {
	var result BulkUpsertResult
	if len(materials) == 0 {
		return result, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return result, fmt.Errorf("start vocabulary upsert tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, material := range materials {
		var inserted bool
		err := tx.QueryRow(ctx, materialUpsertSQL,
			material.Category,
			material.Description,
			material.CO2Savings,
		).Scan(&inserted)
		if err != nil {
			return result, fmt.Errorf("upsert material %q: %w", material.Description, err)
		}

		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
		result.Total++
	}

	if err := tx.Commit(ctx); err != nil {
		return result, fmt.Errorf("commit vocabulary upsert tx: %w", err)
	}
	return result, nil
}
