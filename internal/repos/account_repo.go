package repos

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"snapbook/internal/apperr"
	"snapbook/internal/domain"
)

const accountCols = `username,email,password_hash,role,photographer_id,created_at`

type AccountRepo struct{ DB *sqlx.DB }

func NewAccountRepo(db *sqlx.DB) *AccountRepo { return &AccountRepo{DB: db} }

func (r *AccountRepo) Get(ctx context.Context, username string) (*domain.Account, error) {
	var a domain.Account
	err := r.DB.GetContext(ctx, &a, r.DB.Rebind(`SELECT `+accountCols+` FROM accounts WHERE username=?`), username)
	if err != nil {
		return nil, storeErr("account", err)
	}
	return &a, nil
}

func (r *AccountRepo) Exists(ctx context.Context, username string) (bool, error) {
	var n int
	err := r.DB.GetContext(ctx, &n, r.DB.Rebind(`SELECT COUNT(*) FROM accounts WHERE username=?`), username)
	if err != nil {
		return false, storeErr("account", err)
	}
	return n > 0, nil
}

func (r *AccountRepo) Insert(ctx context.Context, a *domain.Account) error {
	_, err := r.DB.NamedExecContext(ctx, `
		INSERT INTO accounts(`+accountCols+`)
		VALUES(:username,:email,:password_hash,:role,:photographer_id,:created_at)`, a)
	if err == nil {
		return nil
	}
	if constraint, ok := uniqueViolation(err); ok {
		if strings.Contains(constraint, "email") {
			return apperr.Conflict("email_taken", "Email already registered")
		}
		return apperr.Conflict("username_taken", "Username already exists")
	}
	return storeErr("account", err)
}

func (r *AccountRepo) Delete(ctx context.Context, username string) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM accounts WHERE username=?`), username)
	if err != nil {
		return storeErr("account", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("account")
	}
	return nil
}

// Scan loads every account and keeps those match accepts.
func (r *AccountRepo) Scan(ctx context.Context, match func(*domain.Account) bool) ([]domain.Account, error) {
	var all []domain.Account
	if err := r.DB.SelectContext(ctx, &all, `SELECT `+accountCols+` FROM accounts ORDER BY username`); err != nil {
		return nil, storeErr("account", err)
	}
	if match == nil {
		return all, nil
	}
	out := all[:0]
	for i := range all {
		if match(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}
