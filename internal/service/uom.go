package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deppfellow/uom-service/internal/errs"
	"github.com/deppfellow/uom-service/internal/models"
	"github.com/deppfellow/uom-service/internal/repository"
	"github.com/google/uuid"
)

// UOMService owns the unit-of-measure lifecycle: uniqueness of names and
// short codes (case-insensitive), short-code normalization, and delete
// protection while conversions reference a unit.
type UOMService struct {
	uoms        repository.UOMStore
	conversions repository.ConversionStore
	clock       func() time.Time
	idGen       func() uuid.UUID
}

func NewUOMService(uoms repository.UOMStore, conversions repository.ConversionStore) *UOMService {
	return &UOMService{
		uoms:        uoms,
		conversions: conversions,
		clock:       time.Now,
		idGen:       uuid.New,
	}
}

// CreateUOMInput carries the validated fields for a new unit.
type CreateUOMInput struct {
	UnitName  string
	ShortCode string
	Type      models.UOMType
	Category  models.Category
	Status    models.Status
}

// UpdateUOMInput carries a partial update; nil fields stay untouched.
type UpdateUOMInput struct {
	UnitName  *string
	ShortCode *string
	Type      *models.UOMType
	Category  *models.Category
	Status    *models.Status
}

// Create validates uniqueness and persists a new unit. The short code is
// stored lower-cased; status defaults to Active. The unique indexes on the
// store remain the backstop for concurrent creates.
func (s *UOMService) Create(ctx context.Context, in CreateUOMInput) (*models.UOM, error) {
	unitName := strings.TrimSpace(in.UnitName)
	shortCode := strings.ToLower(strings.TrimSpace(in.ShortCode))

	existing, err := s.uoms.FindByNameOrCode(ctx, unitName, shortCode, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicateUOMError(existing, unitName)
	}

	status := in.Status
	if status == "" {
		status = models.StatusActive
	}

	now := s.clock()
	u := &models.UOM{
		ID:        s.idGen(),
		UnitName:  unitName,
		ShortCode: shortCode,
		Type:      in.Type,
		Category:  in.Category,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.uoms.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// List returns units matching the filter, newest first.
func (s *UOMService) List(ctx context.Context, filter models.UOMFilter) ([]models.UOM, error) {
	return s.uoms.List(ctx, filter)
}

// GetByID returns the unit or NotFound.
func (s *UOMService) GetByID(ctx context.Context, id uuid.UUID) (*models.UOM, error) {
	return s.uoms.GetByID(ctx, id)
}

// Update applies a partial update. When the name or short code changes,
// uniqueness is re-checked excluding the record itself.
func (s *UOMService) Update(ctx context.Context, id uuid.UUID, in UpdateUOMInput) (*models.UOM, error) {
	u, err := s.uoms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.UnitName != nil || in.ShortCode != nil {
		unitName := u.UnitName
		if in.UnitName != nil {
			unitName = strings.TrimSpace(*in.UnitName)
		}
		shortCode := u.ShortCode
		if in.ShortCode != nil {
			shortCode = strings.ToLower(strings.TrimSpace(*in.ShortCode))
		}

		existing, err := s.uoms.FindByNameOrCode(ctx, unitName, shortCode, u.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, duplicateUOMError(existing, unitName)
		}

		u.UnitName = unitName
		u.ShortCode = shortCode
	}

	if in.Type != nil {
		u.Type = *in.Type
	}
	if in.Category != nil {
		u.Category = *in.Category
	}
	if in.Status != nil {
		u.Status = *in.Status
	}

	u.UpdatedAt = s.clock()

	if err := s.uoms.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Delete removes the unit unless any conversion still references it in
// either direction. Deletion is blocked, not cascaded.
func (s *UOMService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.uoms.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.conversions.CountReferencing(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		code := "UOM_IN_USE"
		return errs.NewConflictError(
			fmt.Sprintf("UOM is referenced by %d conversion(s) and cannot be deleted", count),
			&code,
		)
	}

	return s.uoms.Delete(ctx, id)
}

// duplicateUOMError names the colliding field so the client can surface
// which input to fix.
func duplicateUOMError(existing *models.UOM, unitName string) *errs.HTTPError {
	code := "UOM_ALREADY_EXISTS"
	if strings.EqualFold(existing.UnitName, unitName) {
		return errs.NewConflictError("A UOM with this unit name already exists", &code)
	}
	return errs.NewConflictError("A UOM with this short code already exists", &code)
}
