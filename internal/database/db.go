package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a PostgreSQL connection pool using pgx and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN must not be empty")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}

	// Sane defaults for a service-oriented workload.
	cfg.MaxConnLifetime = 1 * time.Hour
	cfg.MaxConnIdleTime = 15 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// schemaDDL creates the recycling schema and its tables. Statements are
// idempotent so bootstrap can run on every startup.
var schemaDDL = []string{
	`CREATE SCHEMA IF NOT EXISTS recycling`,
	`CREATE TABLE IF NOT EXISTS recycling.businesses (
        business_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
        name TEXT NOT NULL,
        formatted_address TEXT NOT NULL,
        latitude DECIMAL(10, 8),
        longitude DECIMAL(11, 8),
        phone_number TEXT,
        website TEXT,
        rating DECIMAL(3, 2),
        place_id TEXT,
        service_keywords TEXT,
        date_added TIMESTAMPTZ DEFAULT NOW(),
        last_updated TIMESTAMPTZ DEFAULT NOW(),
        is_active BOOLEAN DEFAULT TRUE,
        deleted_at TIMESTAMPTZ,
        deleted_by TEXT
    )`,
	`CREATE TABLE IF NOT EXISTS recycling.address_components (
        address_component_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
        business_id BIGINT REFERENCES recycling.businesses(business_id),
        street_address TEXT,
        city TEXT,
        state TEXT,
        postal_code TEXT,
        country TEXT
    )`,
	`CREATE TABLE IF NOT EXISTS recycling.business_hours (
        hours_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
        business_id BIGINT REFERENCES recycling.businesses(business_id),
        day_of_week SMALLINT, -- 0 = Sunday, 1 = Monday, etc.
        open_time TIME,
        close_time TIME,
        is_closed BOOLEAN DEFAULT FALSE
    )`,
	`CREATE TABLE IF NOT EXISTS recycling.materials (
        material_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
        category_name TEXT,
        description TEXT,
        co2_savings_per_ton DECIMAL(10, 2),
        CONSTRAINT uq_materials_description UNIQUE (description)
    )`,
	`CREATE TABLE IF NOT EXISTS recycling.business_materials (
        business_id BIGINT REFERENCES recycling.businesses(business_id),
        material_id BIGINT REFERENCES recycling.materials(material_id),
        category_name TEXT,
        description TEXT,
        is_verified BOOLEAN DEFAULT FALSE,
        verification_source TEXT,
        date_verified TIMESTAMPTZ,
        PRIMARY KEY (business_id, material_id)
    )`,
	`CREATE TABLE IF NOT EXISTS recycling.business_services (
        service_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
        business_id BIGINT REFERENCES recycling.businesses(business_id),
        service_name TEXT NOT NULL,
        description TEXT,
        created_date TIMESTAMPTZ DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS users (
        id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
        email TEXT NOT NULL,
        password_hash TEXT NOT NULL,
        role TEXT NOT NULL DEFAULT 'user',
        created_at TIMESTAMPTZ DEFAULT NOW(),
        updated_at TIMESTAMPTZ DEFAULT NOW(),
        CONSTRAINT users_email_key UNIQUE (email)
    )`,
}

// EnsureSchema creates the recycling schema objects if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, ddl := range schemaDDL {
		if _, err := pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
