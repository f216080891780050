package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/shoplens/shoplens/pkg/repository"
)

type row struct {
	ID   int
	Name string
}

func scanRow(s repository.Scanner) (row, error) {
	var r row
	err := s.Scan(&r.ID, &r.Name)
	return r, err
}

func TestQueryMany(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, name FROM things").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "first").
			AddRow(2, "second"))

	results, err := repository.QueryMany(context.Background(), db,
		"SELECT id, name FROM things", nil, scanRow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d rows, want 2", len(results))
	}
	if results[1].Name != "second" {
		t.Errorf("got %+v", results[1])
	}
}

func TestQueryManyEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, name FROM things").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	results, err := repository.QueryMany(context.Background(), db,
		"SELECT id, name FROM things", nil, scanRow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("got %v, want empty non-nil slice", results)
	}
}

func TestQueryOne(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name FROM things WHERE id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(7, "seventh"))

	result, err := repository.QueryOne(context.Background(), db,
		"SELECT id, name FROM things WHERE id = $1", []any{7}, scanRow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID != 7 || result.Name != "seventh" {
		t.Errorf("got %+v", result)
	}
}

