package photos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ssolovyeva/tripkeeper/internal/common"
	"github.com/ssolovyeva/tripkeeper/internal/dbx"
	"github.com/ssolovyeva/tripkeeper/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, photo *models.Photo) (*models.Photo, error) {

	query :=
		`INSERT INTO trip_photos (trip_id, storage_key, content_type)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		photo.TripID, photo.StorageKey, photo.ContentType).
		Scan(&photo.ID, &photo.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return photo, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string, tripID string) (*models.Photo, error) {
	query :=
		`SELECT id, trip_id, storage_key, content_type, created_at FROM trip_photos
		 WHERE id = $1 AND trip_id = $2
		 `

	photo := &models.Photo{}
	err := r.db.QueryRowContext(ctx, query, id, tripID).
		Scan(&photo.ID, &photo.TripID, &photo.StorageKey, &photo.ContentType, &photo.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return photo, nil
}

func (r *PostgresRepository) ListByTrip(ctx context.Context, tripID string) ([]*models.Photo, error) {
	query :=
		`SELECT id, trip_id, storage_key, content_type, created_at FROM trip_photos
		 WHERE trip_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Photo
	for rows.Next() {
		photo := &models.Photo{}
		if err := rows.Scan(&photo.ID, &photo.TripID, &photo.StorageKey,
			&photo.ContentType, &photo.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
