// Package repository handles all interactions with the database.
//
// It contains the raw SQL for the uoms and uom_conversions tables and
// methods to fetch, persist, or update records, abstracting SQL away from
// the service layer. Driver errors are translated through sqlerr before
// they leave this package, so callers only ever see errs errors.
package repository

import (
	"context"

	"github.com/deppfellow/uom-service/internal/models"
	"github.com/deppfellow/uom-service/internal/server"
	"github.com/google/uuid"
)

// UOMStore persists units of measure.
type UOMStore interface {
	Create(ctx context.Context, u *models.UOM) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.UOM, error)
	// FindByNameOrCode looks up a unit whose name or short code matches
	// case-insensitively, skipping exclude (uuid.Nil to skip nothing).
	// Returns (nil, nil) when no record matches.
	FindByNameOrCode(ctx context.Context, unitName, shortCode string, exclude uuid.UUID) (*models.UOM, error)
	List(ctx context.Context, filter models.UOMFilter) ([]models.UOM, error)
	Update(ctx context.Context, u *models.UOM) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ConversionStore persists directed unit conversions. GetByID, List, and
// FindActiveByPair resolve both UOM references via joins.
type ConversionStore interface {
	Create(ctx context.Context, c *models.UOMConversion) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.UOMConversion, error)
	// FindByPair looks up the conversion for the exact ordered pair,
	// skipping exclude. Returns (nil, nil) when no record matches.
	FindByPair(ctx context.Context, from, to, exclude uuid.UUID) (*models.UOMConversion, error)
	// FindActiveByPair resolves the active conversion for the ordered pair,
	// expanded. Returns (nil, nil) when no active edge exists.
	FindActiveByPair(ctx context.Context, from, to uuid.UUID) (*models.UOMConversion, error)
	// CountReferencing reports how many conversions reference the unit in
	// either direction. Non-zero blocks unit deletion.
	CountReferencing(ctx context.Context, uomID uuid.UUID) (int64, error)
	List(ctx context.Context, filter models.ConversionFilter) ([]models.UOMConversion, error)
	Update(ctx context.Context, c *models.UOMConversion) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repositories is the container for all repository instances.
type Repositories struct {
	UOMs        UOMStore
	Conversions ConversionStore
}

// NewRepositories constructs the repository container on top of the
// server's database pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		UOMs:        NewUOMRepo(s.DB.Pool),
		Conversions: NewConversionRepo(s.DB.Pool),
	}
}
