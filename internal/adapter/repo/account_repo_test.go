package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Aditya-myst/hookflow/internal/domain"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error {
	return r.scan(dest...)
}

type fakeDB struct {
	row     pgx.Row
	lastSQL string
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL = sql
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL = sql
	return nil, errors.New("query not supported by fake")
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL = sql
	return f.row
}

func TestDebitCreditZeroBalanceNotDebited(t *testing.T) {
	db := &fakeDB{row: fakeRow{scan: func(dest ...any) error {
		return pgx.ErrNoRows
	}}}
	r := NewAccountRepository(db)

	remaining, debited, err := r.DebitCredit(context.Background(), "u1")
	if err != nil {
		t.Fatalf("DebitCredit returned error: %v", err)
	}
	if debited {
		t.Fatal("expected no debit when the guard matched no row")
	}
	if remaining != 0 {
		t.Fatalf("remaining = %d, want 0", remaining)
	}
}

func TestDebitCreditReturnsRemaining(t *testing.T) {
	db := &fakeDB{row: fakeRow{scan: func(dest ...any) error {
		*(dest[0].(*int)) = 2
		return nil
	}}}
	r := NewAccountRepository(db)

	remaining, debited, err := r.DebitCredit(context.Background(), "u1")
	if err != nil {
		t.Fatalf("DebitCredit returned error: %v", err)
	}
	if !debited || remaining != 2 {
		t.Fatalf("debited = %v, remaining = %d, want true/2", debited, remaining)
	}
}

func TestGetByUserIDMapsNoRows(t *testing.T) {
	db := &fakeDB{row: fakeRow{scan: func(dest ...any) error {
		return pgx.ErrNoRows
	}}}
	r := NewAccountRepository(db)

	_, err := r.GetByUserID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestDebitCreditPropagatesStorageError(t *testing.T) {
	boom := errors.New("connection refused")
	db := &fakeDB{row: fakeRow{scan: func(dest ...any) error {
		return boom
	}}}
	r := NewAccountRepository(db)

	_, _, err := r.DebitCredit(context.Background(), "u1")
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped storage error", err)
	}
}
