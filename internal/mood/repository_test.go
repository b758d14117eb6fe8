package mood

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
)

func TestCreateReturnsTimestamp(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	created := time.Now()
	mock.ExpectQuery("INSERT INTO mood_entries").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(created))

	repo := NewRepository(mock)
	e, err := repo.Create(context.Background(), uuid.New(), 4, "slept well")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.MoodScore != 4 || !e.CreatedAt.Equal(created) {
		t.Fatalf("entry %+v", e)
	}
}

func TestUpdateNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("UPDATE mood_entries").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	repo := NewRepository(mock)
	_, err = repo.Update(context.Background(), uuid.New(), uuid.New(), 3, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListSinceOrdersAscending(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	userID := uuid.New()
	since := time.Now().AddDate(0, 0, -7)
	rows := pgxmock.NewRows([]string{"id", "mood_score", "note", "created_at"}).
		AddRow(uuid.New(), 2, "rough day", since.AddDate(0, 0, 1)).
		AddRow(uuid.New(), 4, "better", since.AddDate(0, 0, 3))
	mock.ExpectQuery("FROM mood_entries").
		WithArgs(userID, since).
		WillReturnRows(rows)

	repo := NewRepository(mock)
	entries, err := repo.ListSince(context.Background(), userID, since)
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(entries) != 2 || entries[0].MoodScore != 2 {
		t.Fatalf("entries %+v", entries)
	}
}
