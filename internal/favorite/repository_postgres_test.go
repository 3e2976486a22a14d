package favorite

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresRepository_Add(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO favorites").
		WithArgs("dev", "42", "Tasca", "Portuguese", "12 Noon (Mon)", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"restaurant_id"}).AddRow("42"))
	// conflict: ON CONFLICT DO NOTHING returns no row
	mock.ExpectQuery("INSERT INTO favorites").
		WithArgs("dev", "42", "Tasca", "Portuguese", "12 Noon (Mon)", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"restaurant_id"}))

	f := Favorite{ID: "42", Name: "Tasca", Cuisines: "Portuguese", Timings: "12 Noon (Mon)"}
	if err := repo.Add("dev", f); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if err := repo.Add("dev", f); !errors.Is(err, ErrAlreadyFavorite) {
		t.Fatalf("expected ErrAlreadyFavorite, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_Remove(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM favorites").WithArgs("dev", "42").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM favorites").WithArgs("dev", "42").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM favorites").WithArgs("dev", "9").WillReturnError(errors.New("connection reset"))

	if err := repo.Remove("dev", "42"); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if err := repo.Remove("dev", "42"); !errors.Is(err, ErrNotFavorite) {
		t.Fatalf("expected ErrNotFavorite, got %v", err)
	}
	if err := repo.Remove("dev", "9"); err == nil || errors.Is(err, ErrNotFavorite) {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_ListAndContains(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"restaurant_id", "name", "cuisines", "timings"}).
		AddRow("1", "A", "Cafe", "24 Hours").
		AddRow("2", "B", "Bar, Grill", "6 PM to 1 AM (Tue-Sun)")
	mock.ExpectQuery("SELECT restaurant_id, name, cuisines, timings").WithArgs("dev").WillReturnRows(rows)

	mock.ExpectQuery("SELECT restaurant_id").
		WithArgs("dev", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"restaurant_id"}).AddRow("2"))

	favs, err := repo.List("dev")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(favs) != 2 || favs[1].Cuisines != "Bar, Grill" {
		t.Fatalf("unexpected favorites %+v", favs)
	}

	set, err := repo.Contains("dev", []string{"2", "3"})
	if err != nil {
		t.Fatalf("contains: %v", err)
	}
	if !set["2"] || set["3"] {
		t.Fatalf("unexpected set %+v", set)
	}

	// no ids, no query
	empty, err := repo.Contains("dev", nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty set without query, got %v %v", empty, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
