package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/recycling-finder/internal/batch"
	"github.com/octobees/recycling-finder/internal/dto"
	"github.com/octobees/recycling-finder/internal/entity"
)

// BusinessesRepository describes persistence operations for discovered
// businesses.
type BusinessesRepository interface {
	ExecuteBatch(ctx context.Context, b batch.Batch) (batch.Result, error)
	List(ctx context.Context, filter dto.BusinessFilter) ([]entity.StoredBusiness, error)
}

// PGXBusinessesRepository implements BusinessesRepository using pgx.
type PGXBusinessesRepository struct {
	pool pgxPool
}

// NewPGXBusinessesRepository wires a pgx backed repository.
func NewPGXBusinessesRepository(pool *pgxpool.Pool) *PGXBusinessesRepository {
	return &PGXBusinessesRepository{pool: pool}
}

// ExecuteBatch runs an emitted batch inside a single transaction. Each
// business group executes under its own savepoint: a data-level failure rolls
// back that group alone, lands in the ledger, and execution continues with
// the next business. Infrastructure failures abort the whole transaction and
// surface as *batch.TransactionFatalError.
func (r *PGXBusinessesRepository) ExecuteBatch(ctx context.Context, b batch.Batch) (batch.Result, error) {
	result := batch.Result{RunID: b.RunID, Ledger: []batch.RecordError{}}
	if len(b.Groups) == 0 {
		return result, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return result, &batch.TransactionFatalError{Err: fmt.Errorf("begin batch tx: %w", err)}
	}
	defer tx.Rollback(ctx)

	for i, group := range b.Groups {
		savepoint := fmt.Sprintf("business_%d", i)
		if _, err := tx.Exec(ctx, "SAVEPOINT "+savepoint); err != nil {
			return result, &batch.TransactionFatalError{Err: fmt.Errorf("savepoint %s: %w", savepoint, err)}
		}

		if err := r.executeGroup(ctx, tx, group); err != nil {
			if !isRecordScoped(err) {
				return result, &batch.TransactionFatalError{Err: err}
			}
			if _, rbErr := tx.Exec(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
				return result, &batch.TransactionFatalError{Err: fmt.Errorf("rollback to savepoint %s: %w", savepoint, rbErr)}
			}
			recordErr := &batch.RecordEmissionError{BusinessName: group.Name, Err: err}
			result.Ledger = append(result.Ledger, batch.RecordError{
				BusinessName: group.Name,
				Message:      recordErr.Error(),
			})
			continue
		}

		if _, err := tx.Exec(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
			return result, &batch.TransactionFatalError{Err: fmt.Errorf("release savepoint %s: %w", savepoint, err)}
		}
		result.Succeeded++
	}

	if err := tx.Commit(ctx); err != nil {
		return result, &batch.TransactionFatalError{Err: fmt.Errorf("commit batch tx: %w", err)}
	}
	return result, nil
}

// executeGroup runs one business's statements in order. The parent insert
// returns the generated key, which replaces the ParentKey sentinel in every
// child statement.
func (r *PGXBusinessesRepository) executeGroup(ctx context.Context, tx pgx.Tx, group batch.Group) error {
	if len(group.Statements) == 0 {
		return fmt.Errorf("empty statement group for %q", group.Name)
	}

	parent := group.Statements[0]
	var businessID int64
	if err := tx.QueryRow(ctx, parent.SQL, parent.Args...).Scan(&businessID); err != nil {
		return fmt.Errorf("insert %s: %w", parent.Table, err)
	}

	for _, stmt := range group.Statements[1:] {
		args := make([]any, len(stmt.Args))
		for i, arg := range stmt.Args {
			if _, ok := arg.(batch.ParentKey); ok {
				args[i] = businessID
				continue
			}
			args[i] = arg
		}
		if _, err := tx.Exec(ctx, stmt.SQL, args...); err != nil {
			return fmt.Errorf("insert %s: %w", stmt.Table, err)
		}
	}
	return nil
}

// isRecordScoped reports whether a statement failure is confined to the data
// of one business. Data exceptions (class 22) and integrity violations
// (class 23) qualify; everything else, connection loss included, is fatal to
// the batch.
func isRecordScoped(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	class := ""
	if len(pgErr.Code) >= 2 {
		class = pgErr.Code[:2]
	}
	return class == "22" || class == "23"
}

// List retrieves stored businesses matching the filter, highest rated first.
func (r *PGXBusinessesRepository) List(ctx context.Context, filter dto.BusinessFilter) ([]entity.StoredBusiness, error) {
	query := strings.Builder{}
	query.WriteString(`
        SELECT
            b.business_id,
            b.name,
            b.formatted_address,
            b.latitude,
            b.longitude,
            b.phone_number,
            b.website,
            b.rating,
            b.place_id,
            b.service_keywords
        FROM recycling.businesses b
    `)

	// Soft-deleted rows never surface in listings.
	var (
		clauses = []string{"b.is_active"}
		args    []any
		idx     = 1
	)

	if filter.Q != "" {
		pattern := fmt.Sprintf("%%%s%%", filter.Q)
		clauses = append(clauses, fmt.Sprintf("(b.name ILIKE $%d OR b.formatted_address ILIKE $%d)", idx, idx+1))
		args = append(args, pattern, pattern)
		idx += 2
	}
	if filter.City != "" {
		clauses = append(clauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM recycling.address_components ac WHERE ac.business_id = b.business_id AND LOWER(ac.city) = LOWER($%d))", idx))
		args = append(args, filter.City)
		idx++
	}
	if filter.Material != "" {
		clauses = append(clauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM recycling.business_materials bm WHERE bm.business_id = b.business_id AND LOWER(bm.description) = LOWER($%d))", idx))
		args = append(args, filter.Material)
		idx++
	}
	if filter.MinRating != nil {
		clauses = append(clauses, fmt.Sprintf("b.rating >= $%d", idx))
		args = append(args, *filter.MinRating)
		idx++
	}

	query.WriteString(" WHERE ")
	query.WriteString(strings.Join(clauses, " AND "))
	query.WriteString(" ORDER BY b.rating DESC NULLS LAST, b.name ASC")

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	query.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1))
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()

	return scanBusinesses(rows)
}

func scanBusinesses(rows pgx.Rows) ([]entity.StoredBusiness, error) {
	var businesses []entity.StoredBusiness
	for rows.Next() {
		var (
			b        entity.StoredBusiness
			keywords string
		)
		if err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.Address,
			&b.Latitude,
			&b.Longitude,
			&b.Phone,
			&b.Website,
			&b.Rating,
			&b.PlaceID,
			&keywords,
		); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		if keywords != "" {
			b.ServiceKeywords = strings.Split(keywords, ",")
		}
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate businesses: %w", err)
	}
	return businesses, nil
}
