package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/uom-service/internal/errs"
	"github.com/deppfellow/uom-service/internal/models"
	"github.com/deppfellow/uom-service/internal/sqlerr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const conversionColumns = `id, from_uom, to_uom, conversion_ratio, category, status, created_at, updated_at`

// expandedConversionQuery resolves both UOM references in a single round
// trip. Reference expansion is a join here, not a secondary lookup.
const expandedConversionQuery = `
	SELECT c.id, c.from_uom, c.to_uom, c.conversion_ratio, c.category, c.status, c.created_at, c.updated_at,
	       f.id, f.unit_name, f.short_code, f.type, f.category, f.status, f.created_at, f.updated_at,
	       t.id, t.unit_name, t.short_code, t.type, t.category, t.status, t.created_at, t.updated_at
	FROM uom_conversions c
	JOIN uoms f ON f.id = c.from_uom
	JOIN uoms t ON t.id = c.to_uom
`

// ConversionRepo is the pgx-backed ConversionStore.
type ConversionRepo struct {
	pool *pgxpool.Pool
}

func NewConversionRepo(pool *pgxpool.Pool) *ConversionRepo {
	return &ConversionRepo{pool: pool}
}

func scanConversion(row pgx.Row) (*models.UOMConversion, error) {
	var c models.UOMConversion
	err := row.Scan(
		&c.ID,
		&c.FromUOMID,
		&c.ToUOMID,
		&c.ConversionRatio,
		&c.Category,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanExpandedConversion(row pgx.Row) (*models.UOMConversion, error) {
	var (
		c    models.UOMConversion
		from models.UOM
		to   models.UOM
	)
	err := row.Scan(
		&c.ID, &c.FromUOMID, &c.ToUOMID, &c.ConversionRatio, &c.Category, &c.Status, &c.CreatedAt, &c.UpdatedAt,
		&from.ID, &from.UnitName, &from.ShortCode, &from.Type, &from.Category, &from.Status, &from.CreatedAt, &from.UpdatedAt,
		&to.ID, &to.UnitName, &to.ShortCode, &to.Type, &to.Category, &to.Status, &to.CreatedAt, &to.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.FromUOM = &from
	c.ToUOM = &to
	return &c, nil
}

func (r *ConversionRepo) Create(ctx context.Context, c *models.UOMConversion) error {
	const q = `
		INSERT INTO uom_conversions (` + conversionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, q,
		c.ID, c.FromUOMID, c.ToUOMID, c.ConversionRatio, c.Category, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	return nil
}

func (r *ConversionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.UOMConversion, error) {
	q := expandedConversionQuery + ` WHERE c.id = $1`

	c, err := scanExpandedConversion(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError("UOM conversion not found", nil)
		}
		return nil, sqlerr.HandleError(err)
	}
	return c, nil
}

func (r *ConversionRepo) FindByPair(ctx context.Context, from, to, exclude uuid.UUID) (*models.UOMConversion, error) {
	const q = `
		SELECT ` + conversionColumns + `
		FROM uom_conversions
		WHERE from_uom = $1 AND to_uom = $2
		  AND ($3::uuid IS NULL OR id <> $3)
		LIMIT 1
	`

	var excludeArg *uuid.UUID
	if exclude != uuid.Nil {
		excludeArg = &exclude
	}

	c, err := scanConversion(r.pool.QueryRow(ctx, q, from, to, excludeArg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, sqlerr.HandleError(err)
	}
	return c, nil
}

func (r *ConversionRepo) FindActiveByPair(ctx context.Context, from, to uuid.UUID) (*models.UOMConversion, error) {
	q := expandedConversionQuery + ` WHERE c.from_uom = $1 AND c.to_uom = $2 AND c.status = $3`

	c, err := scanExpandedConversion(r.pool.QueryRow(ctx, q, from, to, models.StatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, sqlerr.HandleError(err)
	}
	return c, nil
}

func (r *ConversionRepo) CountReferencing(ctx context.Context, uomID uuid.UUID) (int64, error) {
	const q = `SELECT count(*) FROM uom_conversions WHERE from_uom = $1 OR to_uom = $1`

	var count int64
	if err := r.pool.QueryRow(ctx, q, uomID).Scan(&count); err != nil {
		return 0, sqlerr.HandleError(err)
	}
	return count, nil
}

func (r *ConversionRepo) List(ctx context.Context, filter models.ConversionFilter) ([]models.UOMConversion, error) {
	query := expandedConversionQuery

	var (
		conds []string
		args  []any
	)

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("c.status = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("c.category = $%d", len(args)))
	}
	if filter.Search != "" {
		// Search applies to the resolved unit names, so it rides on the
		// same join that expands the references.
		args = append(args, escapeLike(filter.Search))
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(f.unit_name ILIKE '%%' || $%d || '%%' ESCAPE '\' OR t.unit_name ILIKE '%%' || $%d || '%%' ESCAPE '\' OR c.category ILIKE '%%' || $%d || '%%' ESCAPE '\')`,
			n, n, n,
		))
	}

	query += whereClause(conds) + ` ORDER BY c.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	conversions := make([]models.UOMConversion, 0)
	for rows.Next() {
		c, err := scanExpandedConversion(rows)
		if err != nil {
			return nil, sqlerr.HandleError(err)
		}
		conversions = append(conversions, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return conversions, nil
}

func (r *ConversionRepo) Update(ctx context.Context, c *models.UOMConversion) error {
	const q = `
		UPDATE uom_conversions
		SET from_uom = $2, to_uom = $3, conversion_ratio = $4, category = $5, status = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, q,
		c.ID, c.FromUOMID, c.ToUOMID, c.ConversionRatio, c.Category, c.Status, c.UpdatedAt,
	)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("UOM conversion not found", nil)
	}
	return nil
}

func (r *ConversionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM uom_conversions WHERE id = $1`

	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("UOM conversion not found", nil)
	}
	return nil
}
