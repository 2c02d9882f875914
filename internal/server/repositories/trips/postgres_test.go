package trips

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ssolovyeva/tripkeeper/internal/common"
	"github.com/ssolovyeva/tripkeeper/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("t1", created)
	mock.ExpectQuery(`INSERT\s+INTO\s+trips\s*\(user_id,\s*title,\s*destination,\s*start_date,\s*end_date,\s*notes\)`).
		WithArgs("u1", "Kyoto", "Japan", sqlmock.AnyArg(), sqlmock.AnyArg(), "").
		WillReturnRows(rows)

	trip := &models.Trip{
		UserID: "u1", Title: "Kyoto", Destination: "Japan",
		StartDate: time.Now(), EndDate: time.Now().AddDate(0, 0, 7),
	}
	got, err := repo.Create(context.Background(), trip)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "t1" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected trip: %+v", got)
	}
}

func TestListByUser_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	cols := []string{"id", "user_id", "title", "destination", "start_date", "end_date", "notes", "created_at"}
	rows := sqlmock.NewRows(cols).
		AddRow("t1", "u1", "Kyoto", "Japan", time.Now(), time.Now(), "", time.Now()).
		AddRow("t2", "u1", "Lisbon", "Portugal", time.Now(), time.Now(), "pasteis", time.Now())
	mock.ExpectQuery(`SELECT\s+id,\s*user_id,\s*title.*FROM\s+trips\s+WHERE\s+user_id\s*=\s*\$1`).
		WithArgs("u1").
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[1].Notes != "pasteis" {
		t.Fatalf("unexpected trips: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*user_id,\s*title.*WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`).
		WithArgs("missing", "u1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing", "u1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+trips\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`).
		WithArgs("t1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "t1", "u1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NotOwned(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+trips`).
		WithArgs("t1", "u2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "t1", "u2")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}
