package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/docfest/festival-management/internal/model"
)

// JuryMemberRepo manages persistence for jury members.  Jury members are
// independent of staff accounts; a member need not have a login.
type JuryMemberRepo struct{ DB *sql.DB }

func NewJuryMemberRepo(db *sql.DB) *JuryMemberRepo { return &JuryMemberRepo{DB: db} }

const juryCols = "id, first_name, last_name, expertise, role, email, phone, bio, created_at, updated_at"

func scanJuryMember(row interface{ Scan(...any) error }) (model.JuryMember, error) {
	var m model.JuryMember
	err := row.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Expertise,
		&m.Role, &m.Email, &m.Phone, &m.Bio, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// Create inserts a jury member.  Returns ErrEmailExists when the optional
// email collides with another member's.
func (r *JuryMemberRepo) Create(ctx context.Context, m *model.JuryMember) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO jury_members (first_name, last_name, expertise, role, email, phone, bio) VALUES (?,?,?,?,?,?,?)",
		m.FirstName, m.LastName, m.Expertise, m.Role, m.Email, m.Phone, m.Bio)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrEmailExists
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
	*m = fresh
	return nil
}

// GetByID retrieves a jury member, returning ErrJuryMemberNotFound when no
// row matches.
func (r *JuryMemberRepo) GetByID(ctx context.Context, id uint64) (model.JuryMember, error) {
	m, err := scanJuryMember(r.DB.QueryRowContext(ctx,
		"SELECT "+juryCols+" FROM jury_members WHERE id=?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.JuryMember{}, ErrJuryMemberNotFound
	}
	return m, err
}

// List returns all jury members ordered by first name.
func (r *JuryMemberRepo) List(ctx context.Context) ([]model.JuryMember, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+juryCols+" FROM jury_members ORDER BY first_name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.JuryMember
	for rows.Next() {
		m, err := scanJuryMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update rewrites a jury member's fields.
func (r *JuryMemberRepo) Update(ctx context.Context, m *model.JuryMember) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE jury_members SET first_name=?, last_name=?, expertise=?, role=?, email=?, phone=?, bio=?,
		        updated_at=CURRENT_TIMESTAMP WHERE id=?`,
		m.FirstName, m.LastName, m.Expertise, m.Role, m.Email, m.Phone, m.Bio, m.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrEmailExists
		}
		return err
	}
	fresh, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*m = fresh
	return nil
}

// Delete removes a jury member; their ratings go with them via the cascade.
func (r *JuryMemberRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM jury_members WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrJuryMemberNotFound
	}
	return nil
}
