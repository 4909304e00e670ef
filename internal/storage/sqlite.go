package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/concierge/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS interactions (
		id TEXT PRIMARY KEY,
		query TEXT NOT NULL,
		language TEXT,
		intent TEXT NOT NULL,
		strategy TEXT NOT NULL,
		duration_ms INTEGER,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_interactions_created_at ON interactions(created_at);
	CREATE INDEX IF NOT EXISTS idx_interactions_intent ON interactions(intent);
	`
	_, err := db.Exec(schema)
	return err
}

// RecordInteraction inserts an interaction. ID and CreatedAt are filled in
// when unset.
func (s *SQLiteStorage) RecordInteraction(ctx context.Context, interaction *models.Interaction) error {
	if interaction.ID == "" {
		interaction.ID = uuid.NewString()
	}
	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interactions (id, query, language, intent, strategy, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		interaction.ID, interaction.Query, interaction.Language, interaction.Intent,
		interaction.Strategy, interaction.DurationMS, interaction.CreatedAt,
	)
	return err
}

// CountInteractions returns the total number of recorded interactions.
func (s *SQLiteStorage) CountInteractions(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM interactions`).Scan(&count)
	return count, err
}

// RecentInteractions returns up to limit interactions, newest first.
func (s *SQLiteStorage) RecentInteractions(ctx context.Context, limit int) ([]*models.Interaction, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, language, intent, strategy, duration_ms, created_at
		 FROM interactions ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interactions []*models.Interaction
	for rows.Next() {
		var interaction models.Interaction
		if err := rows.Scan(&interaction.ID, &interaction.Query, &interaction.Language,
			&interaction.Intent, &interaction.Strategy, &interaction.DurationMS,
			&interaction.CreatedAt); err != nil {
			return nil, err
		}
		interactions = append(interactions, &interaction)
	}
	return interactions, rows.Err()
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
