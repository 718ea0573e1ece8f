// Package repository contains data access logic for documentary records.  A
// documentary owns its director and producer rows: all three are inserted in
// one transaction here, and the schema's cascading foreign keys delete them
// together.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/docfest/festival-management/internal/model"
)

// DocumentaryRepo manages persistence for documentaries and their owned
// director/producer records.
type DocumentaryRepo struct{ DB *sql.DB }

func NewDocumentaryRepo(db *sql.DB) *DocumentaryRepo { return &DocumentaryRepo{DB: db} }

// docSelect joins a documentary with its director and producer rows.
// NOTE: the director and producer tables keep their historical names
// (`realisateurs`, `producteurs`) from the festival's original schema.
const docSelect = `SELECT d.id, d.code, d.title, DATE_FORMAT(d.date, '%Y-%m-%d'), d.subject,
       d.created_at, d.updated_at,
       r.id, r.code, r.first_name, r.last_name, DATE_FORMAT(r.birth_date, '%Y-%m-%d'),
       p.id, p.code, p.first_name, p.last_name, DATE_FORMAT(p.birth_date, '%Y-%m-%d')
  FROM documentaries d
  JOIN realisateurs r ON r.id = d.realisateur_id
  JOIN producteurs p ON p.id = d.producteur_id`

func scanDocumentary(row interface{ Scan(...any) error }) (model.Documentary, error) {
	var d model.Documentary
	err := row.Scan(
		&d.ID, &d.Code, &d.Title, &d.Date, &d.Subject, &d.CreatedAt, &d.UpdatedAt,
		&d.Director.ID, &d.Director.Code, &d.Director.FirstName, &d.Director.LastName, &d.Director.BirthDate,
		&d.Producer.ID, &d.Producer.Code, &d.Producer.FirstName, &d.Producer.LastName, &d.Producer.BirthDate,
	)
	return d, err
}

// Create inserts the director, the producer and the documentary itself
// inside a single transaction so a validation or key failure leaves no
// orphan rows.  Duplicate codes on any of the three tables surface as
// ErrCodeExists.
func (r *DocumentaryRepo) Create(ctx context.Context, d *model.Documentary) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO realisateurs (code, first_name, last_name, birth_date) VALUES (?,?,?,?)",
		d.Director.Code, d.Director.FirstName, d.Director.LastName, d.Director.BirthDate)
	if err != nil {
		if isDuplicateKey(err) {
			err = ErrCodeExists
		}
		return err
	}
	dirID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	res, err = tx.ExecContext(ctx,
		"INSERT INTO producteurs (code, first_name, last_name, birth_date) VALUES (?,?,?,?)",
		d.Producer.Code, d.Producer.FirstName, d.Producer.LastName, d.Producer.BirthDate)
	if err != nil {
		if isDuplicateKey(err) {
			err = ErrCodeExists
		}
		return err
	}
	prodID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	res, err = tx.ExecContext(ctx,
		"INSERT INTO documentaries (code, title, date, subject, realisateur_id, producteur_id) VALUES (?,?,?,?,?,?)",
		d.Code, d.Title, d.Date, d.Subject, dirID, prodID)
	if err != nil {
		if isDuplicateKey(err) {
			err = ErrCodeExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}

	fresh, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*d = fresh
	return nil
}

// GetByID retrieves a documentary with its director and producer.  Returns
// ErrDocumentaryNotFound when no row matches.
func (r *DocumentaryRepo) GetByID(ctx context.Context, id uint64) (model.Documentary, error) {
	d, err := scanDocumentary(r.DB.QueryRowContext(ctx, docSelect+" WHERE d.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Documentary{}, ErrDocumentaryNotFound
	}
	return d, err
}

// List returns all documentaries with their director and producer embedded.
func (r *DocumentaryRepo) List(ctx context.Context) ([]model.Documentary, error) {
	rows, err := r.DB.QueryContext(ctx, docSelect+" ORDER BY d.created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Documentary
	for rows.Next() {
		d, err := scanDocumentary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
