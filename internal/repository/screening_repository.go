// Package repository contains data access logic for the screening schedule.
// A screening books a room for an exact (date, time, room) triple; the
// uniqueness of that triple is the one hard consistency rule of the system.
// It is enforced twice: by an application-level pre-check here (for a clean
// conflict error) and by the composite unique key on the `screenings` table
// (the real guard against concurrent writers).
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/docfest/festival-management/internal/model"
)

// ScreeningRepo manages persistence for screenings.
type ScreeningRepo struct{ DB *sql.DB }

func NewScreeningRepo(db *sql.DB) *ScreeningRepo { return &ScreeningRepo{DB: db} }

const screeningCols = `id, documentary_id, DATE_FORMAT(date, '%Y-%m-%d'),
       TIME_FORMAT(time, '%H:%i'), room, is_published, created_at, updated_at`

func scanScreening(row interface{ Scan(...any) error }) (model.Screening, error) {
	var s model.Screening
	err := row.Scan(&s.ID, &s.DocumentaryID, &s.Date, &s.Time, &s.Room,
		&s.IsPublished, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Create inserts a new screening after checking that no existing screening
// occupies the same (date, time, room) triple.  The check is an exact match,
// not an interval overlap: screenings have no duration, so two bookings in
// the same room minutes apart do not conflict.  Returns
// ErrScreeningConflict on a collision (from the pre-check or from the
// unique key losing a race) and leaves the store unchanged.
func (r *ScreeningRepo) Create(ctx context.Context, s *model.Screening) error {
	var existing uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM screenings WHERE date=? AND time=? AND room=? LIMIT 1",
		s.Date, s.Time, s.Room).Scan(&existing)
	if err == nil {
		return ErrScreeningConflict
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO screenings (documentary_id, date, time, room, is_published) VALUES (?,?,?,?,?)",
		s.DocumentaryID, s.Date, s.Time, s.Room, s.IsPublished)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrScreeningConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*s = fresh
	return nil
}

// GetByID retrieves a screening by its ID.  Returns ErrScreeningNotFound
// when there is no matching row.
func (r *ScreeningRepo) GetByID(ctx context.Context, id uint64) (model.Screening, error) {
	s, err := scanScreening(r.DB.QueryRowContext(ctx,
		"SELECT "+screeningCols+" FROM screenings WHERE id=?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Screening{}, ErrScreeningNotFound
	}
	return s, err
}

// List returns all screenings ordered by (date, time) ascending.
func (r *ScreeningRepo) List(ctx context.Context) ([]model.Screening, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+screeningCols+" FROM screenings ORDER BY date ASC, time ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Screening
	for rows.Next() {
		s, err := scanScreening(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SetPublished flips the publication flag.  The operation is idempotent:
// setting the current value again succeeds without touching anything else.
// The screening with its previous state is returned so callers can detect a
// false->true transition (publication event).
func (r *ScreeningRepo) SetPublished(ctx context.Context, id uint64, published bool) (prev model.Screening, cur model.Screening, err error) {
	prev, err = r.GetByID(ctx, id)
	if err != nil {
		return model.Screening{}, model.Screening{}, err
	}
	if prev.IsPublished == published {
		return prev, prev, nil
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE screenings SET is_published=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		published, id)
	if err != nil {
		return model.Screening{}, model.Screening{}, err
	}
	cur, err = r.GetByID(ctx, id)
	if err != nil {
		return model.Screening{}, model.Screening{}, err
	}
	return prev, cur, nil
}

// Delete removes a screening.  Its ratings are removed by the cascading
// foreign key on the `ratings` table.
func (r *ScreeningRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM screenings WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScreeningNotFound
	}
	return nil
}

// ListPublished returns the public schedule: screenings with is_published
// set, joined with their documentary and its director/producer, ordered by
// (date, time) ascending.
func (r *ScreeningRepo) ListPublished(ctx context.Context) ([]model.PublishedScreening, error) {
	const q = `SELECT s.id, s.documentary_id, DATE_FORMAT(s.date, '%Y-%m-%d'),
       TIME_FORMAT(s.time, '%H:%i'), s.room, s.is_published, s.created_at, s.updated_at,
       d.id, d.code, d.title, DATE_FORMAT(d.date, '%Y-%m-%d'), d.subject, d.created_at, d.updated_at,
       r.id, r.code, r.first_name, r.last_name, DATE_FORMAT(r.birth_date, '%Y-%m-%d'),
       p.id, p.code, p.first_name, p.last_name, DATE_FORMAT(p.birth_date, '%Y-%m-%d')
  FROM screenings s
  JOIN documentaries d ON d.id = s.documentary_id
  JOIN realisateurs r ON r.id = d.realisateur_id
  JOIN producteurs p ON p.id = d.producteur_id
 WHERE s.is_published = TRUE
 ORDER BY s.date ASC, s.time ASC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.PublishedScreening
	for rows.Next() {
		var ps model.PublishedScreening
		if err := rows.Scan(
			&ps.ID, &ps.DocumentaryID, &ps.Date, &ps.Time, &ps.Room,
			&ps.IsPublished, &ps.CreatedAt, &ps.UpdatedAt,
			&ps.Documentary.ID, &ps.Documentary.Code, &ps.Documentary.Title,
			&ps.Documentary.Date, &ps.Documentary.Subject,
			&ps.Documentary.CreatedAt, &ps.Documentary.UpdatedAt,
			&ps.Documentary.Director.ID, &ps.Documentary.Director.Code,
			&ps.Documentary.Director.FirstName, &ps.Documentary.Director.LastName,
			&ps.Documentary.Director.BirthDate,
			&ps.Documentary.Producer.ID, &ps.Documentary.Producer.Code,
			&ps.Documentary.Producer.FirstName, &ps.Documentary.Producer.LastName,
			&ps.Documentary.Producer.BirthDate,
		); err != nil {
			return nil, err
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}
