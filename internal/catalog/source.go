package catalog

import (
	"context"
	"encoding/json"
	"os"

	"backend-trailmap/internal/db"
)

// Source supplies the authored route metadata joined against ingested
// tracks at build time.
type Source interface {
	Load(ctx context.Context) ([]Metadata, error)
}

// PostgresSource reads metadata from the routes table.
type PostgresSource struct {
	db db.Querier
}

func NewPostgresSource(q db.Querier) *PostgresSource {
	return &PostgresSource{db: q}
}

func (s *PostgresSource) Load(ctx context.Context) ([]Metadata, error) {
	rows, err := s.db.Query(ctx, `
		SELECT slug, description, COALESCE(rating,0), COALESCE(location,''), color
		FROM routes
		ORDER BY slug
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meta []Metadata
	for rows.Next() {
		var m Metadata
		if err := rows.Scan(&m.Slug, &m.Description, &m.Rating, &m.Location, &m.Color); err != nil {
			return nil, err
		}
		meta = append(meta, m)
	}
	return meta, rows.Err()
}

// FileSource reads metadata from a JSON array on disk, for deployments
// without a database.
type FileSource struct {
	Path string
}

func (s FileSource) Load(_ context.Context) ([]Metadata, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	var meta []Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return meta, nil
}
