package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"snapbook/internal/apperr"
	"snapbook/internal/domain"
)

// SessionRepo keeps sessions in the sessions table, keyed by the sid cookie.
type SessionRepo struct{ DB *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{DB: db} }

func (r *SessionRepo) Put(ctx context.Context, s *domain.Session) error {
	_, err := r.DB.NamedExecContext(ctx, `
		INSERT INTO sessions(id,username,role,photographer_id,created_at)
		VALUES(:id,:username,:role,:photographer_id,:created_at)
		ON CONFLICT(id) DO UPDATE SET username=excluded.username, role=excluded.role,
		  photographer_id=excluded.photographer_id`, s)
	return storeErr("session", err)
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	var s domain.Session
	err := r.DB.GetContext(ctx, &s, r.DB.Rebind(`SELECT id,username,role,photographer_id,created_at FROM sessions WHERE id=?`), id)
	if err != nil {
		return nil, storeErr("session", err)
	}
	return &s, nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM sessions WHERE id=?`), id)
	if err != nil {
		return storeErr("session", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("session")
	}
	return nil
}

func (r *SessionRepo) DeleteByUsername(ctx context.Context, username string) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM sessions WHERE username=?`), username)
	return storeErr("session", err)
}
