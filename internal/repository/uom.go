package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/uom-service/internal/errs"
	"github.com/deppfellow/uom-service/internal/models"
	"github.com/deppfellow/uom-service/internal/sqlerr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uomColumns = `id, unit_name, short_code, type, category, status, created_at, updated_at`

// UOMRepo is the pgx-backed UOMStore.
type UOMRepo struct {
	pool *pgxpool.Pool
}

func NewUOMRepo(pool *pgxpool.Pool) *UOMRepo {
	return &UOMRepo{pool: pool}
}

func scanUOM(row pgx.Row) (*models.UOM, error) {
	var u models.UOM
	err := row.Scan(
		&u.ID,
		&u.UnitName,
		&u.ShortCode,
		&u.Type,
		&u.Category,
		&u.Status,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UOMRepo) Create(ctx context.Context, u *models.UOM) error {
	const q = `
		INSERT INTO uoms (` + uomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, q,
		u.ID, u.UnitName, u.ShortCode, u.Type, u.Category, u.Status, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	return nil
}

func (r *UOMRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.UOM, error) {
	const q = `SELECT ` + uomColumns + ` FROM uoms WHERE id = $1`

	u, err := scanUOM(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError("UOM not found", nil)
		}
		return nil, sqlerr.HandleError(err)
	}
	return u, nil
}

func (r *UOMRepo) FindByNameOrCode(ctx context.Context, unitName, shortCode string, exclude uuid.UUID) (*models.UOM, error) {
	const q = `
		SELECT ` + uomColumns + `
		FROM uoms
		WHERE (lower(unit_name) = lower($1) OR short_code = lower($2))
		  AND ($3::uuid IS NULL OR id <> $3)
		LIMIT 1
	`

	var excludeArg *uuid.UUID
	if exclude != uuid.Nil {
		excludeArg = &exclude
	}

	u, err := scanUOM(r.pool.QueryRow(ctx, q, unitName, shortCode, excludeArg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, sqlerr.HandleError(err)
	}
	return u, nil
}

func (r *UOMRepo) List(ctx context.Context, filter models.UOMFilter) ([]models.UOM, error) {
	query := `SELECT ` + uomColumns + ` FROM uoms`

	var (
		conds []string
		args  []any
	)

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, escapeLike(filter.Search))
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(unit_name ILIKE '%%' || $%d || '%%' ESCAPE '\' OR short_code ILIKE '%%' || $%d || '%%' ESCAPE '\' OR category ILIKE '%%' || $%d || '%%' ESCAPE '\')`,
			n, n, n,
		))
	}

	query += whereClause(conds) + ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	uoms := make([]models.UOM, 0)
	for rows.Next() {
		u, err := scanUOM(rows)
		if err != nil {
			return nil, sqlerr.HandleError(err)
		}
		uoms = append(uoms, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return uoms, nil
}

func (r *UOMRepo) Update(ctx context.Context, u *models.UOM) error {
	const q = `
		UPDATE uoms
		SET unit_name = $2, short_code = $3, type = $4, category = $5, status = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, q,
		u.ID, u.UnitName, u.ShortCode, u.Type, u.Category, u.Status, u.UpdatedAt,
	)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("UOM not found", nil)
	}
	return nil
}

func (r *UOMRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM uoms WHERE id = $1`

	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		// A RESTRICT violation lands here when conversions still reference
		// the unit; sqlerr maps it to the same Conflict the pre-check uses.
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("UOM not found", nil)
	}
	return nil
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	clause := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		clause += " AND " + c
	}
	return clause
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE/ILIKE metacharacters in user-supplied search
// terms so "100%" matches literally instead of as a wildcard.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
