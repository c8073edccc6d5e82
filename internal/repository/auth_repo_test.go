package repository

import (
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	})
	return NewUserRepository(db), mock
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WithArgs("alice", "h123").
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := repo.Create("alice", "h123")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 42 {
		t.Fatalf("id: got %d, want 42", id)
	}
}

func TestUserRepository_CreateExecError(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WithArgs("bob", "h456").
		WillReturnError(errors.New("db exec failed"))

	if _, err := repo.Create("bob", "h456"); err == nil || !strings.Contains(err.Error(), "insert user") {
		t.Fatalf("expected wrapped insert error, got %v", err)
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash"}).
		AddRow(7, "alice", "h123")
	mock.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
		WithArgs("alice").
		WillReturnRows(rows)

	u, err := repo.GetByUsername("alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if u == nil || u.ID != 7 || u.PasswordHash != "h123" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestUserRepository_GetByUsernameNotFound(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	u, err := repo.GetByUsername("missing")
	if err != nil {
		t.Fatalf("ErrNoRows must map to nil, nil; got err %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user, got %+v", u)
	}
}
