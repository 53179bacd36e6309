package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"snapbook/internal/apperr"
	"snapbook/internal/domain"
)

const bookingCols = `id,customer_id,photographer_id,booking_date,booking_time,location,notes,status,created_at`

type BookingRepo struct{ DB *sqlx.DB }

func NewBookingRepo(db *sqlx.DB) *BookingRepo { return &BookingRepo{DB: db} }

func (r *BookingRepo) Insert(ctx context.Context, b *domain.Booking) error {
	_, err := r.DB.NamedExecContext(ctx, `
		INSERT INTO bookings(`+bookingCols+`)
		VALUES(:id,:customer_id,:photographer_id,:booking_date,:booking_time,:location,:notes,:status,:created_at)`, b)
	if err == nil {
		return nil
	}
	if _, ok := uniqueViolation(err); ok {
		return apperr.Conflict("slot_taken", "This photographer is already booked at that date and time.")
	}
	return storeErr("booking", err)
}

func (r *BookingRepo) Scan(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	q := `SELECT ` + bookingCols + ` FROM bookings WHERE 1=1`
	var args []any
	if f.CustomerID != "" {
		q += ` AND customer_id=?`
		args = append(args, f.CustomerID)
	}
	if f.PhotographerID != "" {
		q += ` AND photographer_id=?`
		args = append(args, f.PhotographerID)
	}
	q += ` ORDER BY created_at DESC`

	var out []domain.Booking
	if err := r.DB.SelectContext(ctx, &out, r.DB.Rebind(q), args...); err != nil {
		return nil, storeErr("booking", err)
	}
	return out, nil
}
