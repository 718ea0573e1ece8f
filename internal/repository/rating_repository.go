// Package repository contains data access logic for jury ratings.  At most
// one rating exists per (screening, jury member) pair; the pre-insert
// existence check here produces the friendly duplicate error while the
// composite unique key on the `ratings` table guards against races.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/docfest/festival-management/internal/model"
)

// RatingRepo manages persistence for jury ratings.
type RatingRepo struct{ DB *sql.DB }

func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{DB: db} }

const ratingCols = "id, screening_id, jury_member_id, score, comment, created_at, updated_at"

func scanRating(row interface{ Scan(...any) error }) (model.Rating, error) {
	var rt model.Rating
	err := row.Scan(&rt.ID, &rt.ScreeningID, &rt.JuryMemberID, &rt.Score,
		&rt.Comment, &rt.CreatedAt, &rt.UpdatedAt)
	return rt, err
}

// Create inserts one rating.  If the (screening, jury member) pair already
// has a rating, ErrDuplicateRating is returned and the existing row is left
// untouched.
func (r *RatingRepo) Create(ctx context.Context, rt *model.Rating) error {
	var existing uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM ratings WHERE screening_id=? AND jury_member_id=? LIMIT 1",
		rt.ScreeningID, rt.JuryMemberID).Scan(&existing)
	if err == nil {
		return ErrDuplicateRating
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO ratings (screening_id, jury_member_id, score, comment) VALUES (?,?,?,?)",
		rt.ScreeningID, rt.JuryMemberID, rt.Score, rt.Comment)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateRating
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
	*rt = fresh
	return nil
}

// BulkEntry is one jury member's score within a bulk submission.
type BulkEntry struct {
	JuryMemberID uint64
	Score        float64
	Comment      *string
}

// CreateBulk inserts ratings for several jury members against one screening
// inside a single transaction.  Entries whose (screening, jury member) pair
// already has a rating are skipped silently; only the newly created ratings
// are returned.  Existing ratings are never altered.
func (r *RatingRepo) CreateBulk(ctx context.Context, screeningID uint64, entries []BulkEntry) ([]model.Rating, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	created := make([]model.Rating, 0, len(entries))
	for _, e := range entries {
		var existing uint64
		err = tx.QueryRowContext(ctx,
			"SELECT id FROM ratings WHERE screening_id=? AND jury_member_id=? LIMIT 1",
			screeningID, e.JuryMemberID).Scan(&existing)
		if err == nil {
			continue // already rated, skip silently
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		err = nil

		var res sql.Result
		res, err = tx.ExecContext(ctx,
			"INSERT INTO ratings (screening_id, jury_member_id, score, comment) VALUES (?,?,?,?)",
			screeningID, e.JuryMemberID, e.Score, e.Comment)
		if err != nil {
			return nil, err
		}
		var id int64
		id, err = res.LastInsertId()
		if err != nil {
			return nil, err
		}
		var fresh model.Rating
		fresh, err = scanRating(tx.QueryRowContext(ctx,
			"SELECT "+ratingCols+" FROM ratings WHERE id=?", id))
		if err != nil {
			return nil, err
		}
		created = append(created, fresh)
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a rating, returning ErrRatingNotFound when no row
// matches.
func (r *RatingRepo) GetByID(ctx context.Context, id uint64) (model.Rating, error) {
	rt, err := scanRating(r.DB.QueryRowContext(ctx,
		"SELECT "+ratingCols+" FROM ratings WHERE id=?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Rating{}, ErrRatingNotFound
	}
	return rt, err
}

// List returns all ratings, newest first.
func (r *RatingRepo) List(ctx context.Context) ([]model.Rating, error) {
	return r.queryRatings(ctx, "SELECT "+ratingCols+" FROM ratings ORDER BY created_at DESC")
}

// ListByScreening returns all ratings for one screening.
func (r *RatingRepo) ListByScreening(ctx context.Context, screeningID uint64) ([]model.Rating, error) {
	return r.queryRatings(ctx,
		"SELECT "+ratingCols+" FROM ratings WHERE screening_id=? ORDER BY created_at ASC", screeningID)
}

func (r *RatingRepo) queryRatings(ctx context.Context, q string, args ...any) ([]model.Rating, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Rating
	for rows.Next() {
		rt, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// AverageScore computes the arithmetic mean of all scores for a screening.
// The result is nil when the screening has no ratings.
func (r *RatingRepo) AverageScore(ctx context.Context, screeningID uint64) (*float64, error) {
	var avg sql.NullFloat64
	err := r.DB.QueryRowContext(ctx,
		"SELECT AVG(score) FROM ratings WHERE screening_id=?", screeningID).Scan(&avg)
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

// Delete removes a rating by id.
func (r *RatingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM ratings WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRatingNotFound
	}
	return nil
}
