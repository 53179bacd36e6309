package repos

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"snapbook/internal/apperr"
	"snapbook/internal/domain"
)

// photographerRow is the stored shape; list fields are kept as JSON text.
type photographerRow struct {
	domain.Photographer
	SkillsJSON       string `db:"skills_json"`
	AvailabilityJSON string `db:"availability_json"`
}

const photographerCols = `id,name,specialization,rate,contact,bio,image,experience,location,skills_json,availability_json,created_at`

func (row *photographerRow) decode() (domain.Photographer, error) {
	p := row.Photographer
	if err := json.Unmarshal([]byte(row.SkillsJSON), &p.Skills); err != nil {
		return p, err
	}
	if err := json.Unmarshal([]byte(row.AvailabilityJSON), &p.Availability); err != nil {
		return p, err
	}
	return p, nil
}

func encodeList(xs []string) string {
	if xs == nil {
		xs = []string{}
	}
	b, _ := json.Marshal(xs)
	return string(b)
}

type PhotographerRepo struct{ DB *sqlx.DB }

func NewPhotographerRepo(db *sqlx.DB) *PhotographerRepo { return &PhotographerRepo{DB: db} }

func (r *PhotographerRepo) Get(ctx context.Context, id string) (*domain.Photographer, error) {
	var row photographerRow
	err := r.DB.GetContext(ctx, &row, r.DB.Rebind(`SELECT `+photographerCols+` FROM photographers WHERE id=?`), id)
	if err != nil {
		return nil, storeErr("photographer", err)
	}
	p, err := row.decode()
	if err != nil {
		return nil, apperr.Store("photographer", err)
	}
	return &p, nil
}

func (r *PhotographerRepo) Scan(ctx context.Context) ([]domain.Photographer, error) {
	var rows []photographerRow
	if err := r.DB.SelectContext(ctx, &rows, `SELECT `+photographerCols+` FROM photographers ORDER BY name`); err != nil {
		return nil, storeErr("photographer", err)
	}
	out := make([]domain.Photographer, 0, len(rows))
	for i := range rows {
		p, err := rows[i].decode()
		if err != nil {
			return nil, apperr.Store("photographer", err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PhotographerRepo) Insert(ctx context.Context, p *domain.Photographer) error {
	row := photographerRow{
		Photographer:     *p,
		SkillsJSON:       encodeList(p.Skills),
		AvailabilityJSON: encodeList(p.Availability),
	}
	_, err := r.DB.NamedExecContext(ctx, `
		INSERT INTO photographers(`+photographerCols+`)
		VALUES(:id,:name,:specialization,:rate,:contact,:bio,:image,:experience,:location,:skills_json,:availability_json,:created_at)`, row)
	if err == nil {
		return nil
	}
	if _, ok := uniqueViolation(err); ok {
		return apperr.Conflict("photographer_exists", "Photographer already exists")
	}
	return storeErr("photographer", err)
}

func (r *PhotographerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM photographers WHERE id=?`), id)
	if err != nil {
		return storeErr("photographer", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("photographer")
	}
	return nil
}

// Count lets seeding detect an empty catalog without loading it.
func (r *PhotographerRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM photographers`); err != nil {
		return 0, storeErr("photographer", err)
	}
	return n, nil
}
