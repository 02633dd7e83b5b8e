package main

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// openDB connects to the catalog's Postgres database using the configured
// connection string.
func openDB() (*sql.DB, error) {
	if cfg.Pipeline.DatabaseURL == "" {
		return nil, fmt.Errorf("pipeline.database_url is not configured")
	}

	db, err := sql.Open("postgres", cfg.Pipeline.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}
