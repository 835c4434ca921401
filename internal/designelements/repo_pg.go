package designelements

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Requirement links are stored as a
// JSONB array.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, name, description, element_type, technology, requirement_ids, created_at, updated_at`

const insertQuery = `
INSERT INTO design_elements (
    id,
    name,
    description,
    element_type,
    technology,
    requirement_ids,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, el DesignElement) error {
	ids, err := encodeIDs(el.RequirementIDs)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, insertQuery,
		el.ID,
		el.Name,
		el.Description,
		el.Type,
		el.Technology,
		ids,
		el.CreatedAt,
		el.UpdatedAt,
	)
	return err
}

// Create inserts a new design element.
func (r *PGRepo) Create(ctx context.Context, el DesignElement) error {
	return insert(ctx, r.DB, el)
}

// GetByID fetches one design element.
func (r *PGRepo) GetByID(ctx context.Context, id string) (DesignElement, error) {
	query := `SELECT ` + selectColumns + ` FROM design_elements WHERE id = $1`
	el, err := scanElement(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return DesignElement{}, ErrNotFound
	}
	return el, err
}

// Update overwrites the editable fields of an existing design element.
func (r *PGRepo) Update(ctx context.Context, el DesignElement) error {
	const query = `
UPDATE design_elements
SET name = $2,
    description = $3,
    element_type = $4,
    technology = $5,
    requirement_ids = $6,
    updated_at = $7
WHERE id = $1`
	ids, err := encodeIDs(el.RequirementIDs)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query, el.ID, el.Name, el.Description, el.Type, el.Technology, ids, el.UpdatedAt)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes a design element.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM design_elements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// List returns design elements matching f, oldest first.
func (r *PGRepo) List(ctx context.Context, f Filter) ([]DesignElement, error) {
	query := `SELECT ` + selectColumns + `
FROM design_elements
WHERE ($1::text = '' OR name ILIKE '%' || $1::text || '%' OR description ILIKE '%' || $1::text || '%' OR technology ILIKE '%' || $1::text || '%')
  AND ($2::text = '' OR lower(element_type) = lower($2::text))
  AND ($3::text = '' OR requirement_ids @> jsonb_build_array($3::text))
ORDER BY created_at ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query, f.Query, f.Type, f.RequirementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DesignElement{}
	for rows.Next() {
		el, err := scanElement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, rows.Err()
}

// ReplaceAll swaps the whole table contents in one transaction.
func (r *PGRepo) ReplaceAll(ctx context.Context, items []DesignElement) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM design_elements`); err != nil {
		return fmt.Errorf("clear design elements: %w", err)
	}
	for _, el := range items {
		if err := insert(ctx, tx, el); err != nil {
			return fmt.Errorf("insert design element %s: %w", el.ID, err)
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanElement(row rowScanner) (DesignElement, error) {
	var el DesignElement
	var ids []byte
	if err := row.Scan(
		&el.ID,
		&el.Name,
		&el.Description,
		&el.Type,
		&el.Technology,
		&ids,
		&el.CreatedAt,
		&el.UpdatedAt,
	); err != nil {
		return DesignElement{}, err
	}
	el.RequirementIDs = []string{}
	if len(ids) > 0 {
		if err := json.Unmarshal(ids, &el.RequirementIDs); err != nil {
			return DesignElement{}, fmt.Errorf("decode requirement_ids for %s: %w", el.ID, err)
		}
	}
	return el, nil
}

func encodeIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	return string(raw), err
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
