package trips

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

func (r *PostgresRepository) Create(ctx context.Context, trip *models.Trip) (*models.Trip, error) {

	query :=
		`INSERT INTO trips (user_id, title, destination, start_date, end_date, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		trip.UserID, trip.Title, trip.Destination, trip.StartDate, trip.EndDate, trip.Notes).
		Scan(&trip.ID, &trip.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return trip, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Trip, error) {
	query :=
		`SELECT id, user_id, title, destination, start_date, end_date, notes, created_at FROM trips
		 WHERE user_id = $1
		 ORDER BY start_date
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Trip
	for rows.Next() {
		trip := &models.Trip{}
		if err := rows.Scan(&trip.ID, &trip.UserID, &trip.Title, &trip.Destination,
			&trip.StartDate, &trip.EndDate, &trip.Notes, &trip.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string, userID string) (*models.Trip, error) {
	query :=
		`SELECT id, user_id, title, destination, start_date, end_date, notes, created_at FROM trips
		 WHERE id = $1 AND user_id = $2
		 `

	trip := &models.Trip{}
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&trip.ID, &trip.UserID, &trip.Title, &trip.Destination,
			&trip.StartDate, &trip.EndDate, &trip.Notes, &trip.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return trip, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string, userID string) error {
	query :=
		`DELETE FROM trips
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
