package requirements

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, title, description, category, control_family, source, created_at, updated_at`

const insertQuery = `
INSERT INTO security_requirements (
    id,
    title,
    description,
    category,
    control_family,
    source,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, req Requirement) error {
	_, err := db.ExecContext(ctx, insertQuery,
		req.ID,
		req.Title,
		req.Description,
		req.Category,
		req.ControlFamily,
		req.Source,
		req.CreatedAt,
		req.UpdatedAt,
	)
	return err
}

// Create inserts a new requirement.
func (r *PGRepo) Create(ctx context.Context, req Requirement) error {
	return insert(ctx, r.DB, req)
}

// GetByID fetches one requirement.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Requirement, error) {
	query := `SELECT ` + selectColumns + ` FROM security_requirements WHERE id = $1`
	req, err := scanRequirement(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Requirement{}, ErrNotFound
	}
	return req, err
}

// Update overwrites the editable fields of an existing requirement.
func (r *PGRepo) Update(ctx context.Context, req Requirement) error {
	const query = `
UPDATE security_requirements
SET title = $2,
    description = $3,
    category = $4,
    control_family = $5,
    source = $6,
    updated_at = $7
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		req.ID,
		req.Title,
		req.Description,
		req.Category,
		req.ControlFamily,
		req.Source,
		req.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes a requirement.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM security_requirements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// List returns requirements matching f, oldest first.
func (r *PGRepo) List(ctx context.Context, f Filter) ([]Requirement, error) {
	query := `SELECT ` + selectColumns + `
FROM security_requirements
WHERE ($1::text = '' OR title ILIKE '%' || $1::text || '%' OR description ILIKE '%' || $1::text || '%')
  AND ($2::text = '' OR lower(category) = lower($2::text))
  AND ($3::text = '' OR upper(control_family) = upper($3::text))
ORDER BY created_at ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query, f.Query, f.Category, f.ControlFamily)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Requirement{}
	for rows.Next() {
		req, err := scanRequirement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// ReplaceAll swaps the whole table contents in one transaction.
func (r *PGRepo) ReplaceAll(ctx context.Context, items []Requirement) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM security_requirements`); err != nil {
		return fmt.Errorf("clear requirements: %w", err)
	}
	for _, req := range items {
		if err := insert(ctx, tx, req); err != nil {
			return fmt.Errorf("insert requirement %s: %w", req.ID, err)
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequirement(row rowScanner) (Requirement, error) {
	var req Requirement
	err := row.Scan(
		&req.ID,
		&req.Title,
		&req.Description,
		&req.Category,
		&req.ControlFamily,
		&req.Source,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	return req, err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
