package categorizations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Information types are stored as
// JSONB; the computed impact levels get their own columns so they can be
// filtered on.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, system_name, description, information_types, confidentiality, integrity, availability, overall_impact, created_at, updated_at`

const insertQuery = `
INSERT INTO system_categorizations (
    id,
    system_name,
    description,
    information_types,
    confidentiality,
    integrity,
    availability,
    overall_impact,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, c Categorization) error {
	types, err := encodeTypes(c.InformationTypes)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, insertQuery,
		c.ID,
		c.SystemName,
		c.Description,
		types,
		string(c.OverallImpact.Confidentiality),
		string(c.OverallImpact.Integrity),
		string(c.OverallImpact.Availability),
		string(c.OverallImpact.Overall),
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

// Create inserts a new categorization.
func (r *PGRepo) Create(ctx context.Context, c Categorization) error {
	return insert(ctx, r.DB, c)
}

// GetByID fetches one categorization.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Categorization, error) {
	query := `SELECT ` + selectColumns + ` FROM system_categorizations WHERE id = $1`
	c, err := scanCategorization(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Categorization{}, ErrNotFound
	}
	return c, err
}

// Update overwrites an existing categorization.
func (r *PGRepo) Update(ctx context.Context, c Categorization) error {
	const query = `
UPDATE system_categorizations
SET system_name = $2,
    description = $3,
    information_types = $4,
    confidentiality = $5,
    integrity = $6,
    availability = $7,
    overall_impact = $8,
    updated_at = $9
WHERE id = $1`
	types, err := encodeTypes(c.InformationTypes)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.SystemName,
		c.Description,
		types,
		string(c.OverallImpact.Confidentiality),
		string(c.OverallImpact.Integrity),
		string(c.OverallImpact.Availability),
		string(c.OverallImpact.Overall),
		c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a categorization.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM system_categorizations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns categorizations matching f, oldest first.
func (r *PGRepo) List(ctx context.Context, f Filter) ([]Categorization, error) {
	overall := ""
	if f.Overall != "" {
		overall = string(ParseImpactLevel(f.Overall))
	}
	query := `SELECT ` + selectColumns + `
FROM system_categorizations
WHERE ($1::text = '' OR system_name ILIKE '%' || $1::text || '%')
  AND ($2::text = '' OR overall_impact = $2::text)
ORDER BY created_at ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query, f.Query, overall)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Categorization{}
	for rows.Next() {
		c, err := scanCategorization(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ReplaceAll swaps the whole table contents in one transaction.
func (r *PGRepo) ReplaceAll(ctx context.Context, items []Categorization) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM system_categorizations`); err != nil {
		return fmt.Errorf("clear categorizations: %w", err)
	}
	for _, c := range items {
		if err := insert(ctx, tx, c); err != nil {
			return fmt.Errorf("insert categorization %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategorization(row rowScanner) (Categorization, error) {
	var c Categorization
	var types []byte
	var conf, integ, avail, overall string
	if err := row.Scan(
		&c.ID,
		&c.SystemName,
		&c.Description,
		&types,
		&conf,
		&integ,
		&avail,
		&overall,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return Categorization{}, err
	}
	c.InformationTypes = []InformationType{}
	if len(types) > 0 {
		if err := json.Unmarshal(types, &c.InformationTypes); err != nil {
			return Categorization{}, fmt.Errorf("decode information_types for %s: %w", c.ID, err)
		}
	}
	c.OverallImpact = OverallImpact{
		Confidentiality: ImpactLevel(conf),
		Integrity:       ImpactLevel(integ),
		Availability:    ImpactLevel(avail),
		Overall:         ImpactLevel(overall),
	}
	return c, nil
}

func encodeTypes(types []InformationType) (string, error) {
	if types == nil {
		types = []InformationType{}
	}
	raw, err := json.Marshal(types)
	return string(raw), err
}

var _ Repo = (*PGRepo)(nil)
