package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/uom-service/internal/errs"
	"github.com/deppfellow/uom-service/internal/models"
	"github.com/deppfellow/uom-service/internal/repository"
	"github.com/google/uuid"
)

// ConversionService owns the directed conversion edges between units and
// the quantity conversion itself. Edges are direct-only: Convert honors
// the exact ordered pair with an active status, with no inverse fallback
// and no path through intermediate units.
type ConversionService struct {
	conversions repository.ConversionStore
	uoms        repository.UOMStore
	cache       *ConversionCache
	clock       func() time.Time
	idGen       func() uuid.UUID
}

func NewConversionService(conversions repository.ConversionStore, uoms repository.UOMStore, cache *ConversionCache) *ConversionService {
	return &ConversionService{
		conversions: conversions,
		uoms:        uoms,
		cache:       cache,
		clock:       time.Now,
		idGen:       uuid.New,
	}
}

// CreateConversionInput carries the validated fields for a new conversion.
// Category is optional and defaults to the from-unit's category.
type CreateConversionInput struct {
	FromUOM         uuid.UUID
	ToUOM           uuid.UUID
	ConversionRatio float64
	Category        *models.Category
	Status          models.Status
}

// UpdateConversionInput carries a partial update; nil fields stay untouched.
type UpdateConversionInput struct {
	FromUOM         *uuid.UUID
	ToUOM           *uuid.UUID
	ConversionRatio *float64
	Category        *models.Category
	Status          *models.Status
}

// Create persists a new conversion edge. It rejects self-pairs, requires
// both referenced units to exist, and enforces one conversion per ordered
// pair. The returned record carries both UOM references expanded.
func (s *ConversionService) Create(ctx context.Context, in CreateConversionInput) (*models.UOMConversion, error) {
	if in.FromUOM == in.ToUOM {
		return nil, errs.NewBadRequestError("fromUOM and toUOM must be different units", nil, nil)
	}
	if in.ConversionRatio < models.MinConversionRatio {
		return nil, invalidRatioError()
	}

	fromUOM, err := s.uoms.GetByID(ctx, in.FromUOM)
	if err != nil {
		return nil, remapNotFound(err, "The fromUOM does not exist")
	}
	toUOM, err := s.uoms.GetByID(ctx, in.ToUOM)
	if err != nil {
		return nil, remapNotFound(err, "The toUOM does not exist")
	}

	dup, err := s.conversions.FindByPair(ctx, in.FromUOM, in.ToUOM, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, duplicatePairError()
	}

	category := fromUOM.Category
	if in.Category != nil {
		category = *in.Category
	}

	status := in.Status
	if status == "" {
		status = models.StatusActive
	}

	now := s.clock()
	conversion := &models.UOMConversion{
		ID:              s.idGen(),
		FromUOMID:       in.FromUOM,
		ToUOMID:         in.ToUOM,
		ConversionRatio: in.ConversionRatio,
		Category:        category,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.conversions.Create(ctx, conversion); err != nil {
		return nil, err
	}

	s.cache.InvalidatePair(ctx, conversion.FromUOMID, conversion.ToUOMID)

	conversion.FromUOM = fromUOM
	conversion.ToUOM = toUOM
	return conversion, nil
}

// List returns conversions matching the filter, newest first, with both
// UOM references expanded.
func (s *ConversionService) List(ctx context.Context, filter models.ConversionFilter) ([]models.UOMConversion, error) {
	return s.conversions.List(ctx, filter)
}

// GetByID returns the expanded conversion or NotFound.
func (s *ConversionService) GetByID(ctx context.Context, id uuid.UUID) (*models.UOMConversion, error) {
	return s.conversions.GetByID(ctx, id)
}

// Update applies a partial update. The resulting pair (supplied values
// merged over stored ones) must stay distinct; when either reference
// changes, the new pair's uniqueness is re-checked excluding this record
// and the referenced units must exist.
func (s *ConversionService) Update(ctx context.Context, id uuid.UUID, in UpdateConversionInput) (*models.UOMConversion, error) {
	conversion, err := s.conversions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fromID := conversion.FromUOMID
	if in.FromUOM != nil {
		fromID = *in.FromUOM
	}
	toID := conversion.ToUOMID
	if in.ToUOM != nil {
		toID = *in.ToUOM
	}

	if fromID == toID {
		return nil, errs.NewBadRequestError("fromUOM and toUOM must be different units", nil, nil)
	}
	if in.ConversionRatio != nil && *in.ConversionRatio < models.MinConversionRatio {
		return nil, invalidRatioError()
	}

	pairChanged := fromID != conversion.FromUOMID || toID != conversion.ToUOMID
	if pairChanged {
		if in.FromUOM != nil && *in.FromUOM != conversion.FromUOMID {
			if _, err := s.uoms.GetByID(ctx, fromID); err != nil {
				return nil, remapNotFound(err, "The fromUOM does not exist")
			}
		}
		if in.ToUOM != nil && *in.ToUOM != conversion.ToUOMID {
			if _, err := s.uoms.GetByID(ctx, toID); err != nil {
				return nil, remapNotFound(err, "The toUOM does not exist")
			}
		}

		dup, err := s.conversions.FindByPair(ctx, fromID, toID, conversion.ID)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, duplicatePairError()
		}
	}

	oldFrom, oldTo := conversion.FromUOMID, conversion.ToUOMID

	conversion.FromUOMID = fromID
	conversion.ToUOMID = toID
	if in.ConversionRatio != nil {
		conversion.ConversionRatio = *in.ConversionRatio
	}
	if in.Category != nil {
		conversion.Category = *in.Category
	}
	if in.Status != nil {
		conversion.Status = *in.Status
	}
	conversion.UpdatedAt = s.clock()

	if err := s.conversions.Update(ctx, conversion); err != nil {
		return nil, err
	}

	s.cache.InvalidatePair(ctx, oldFrom, oldTo)
	if pairChanged {
		s.cache.InvalidatePair(ctx, fromID, toID)
	}

	// Re-read so the response carries the expansion for the updated pair.
	return s.conversions.GetByID(ctx, conversion.ID)
}

// Delete removes the conversion unconditionally once found. Units never
// block conversion deletion; the protection runs the other way.
func (s *ConversionService) Delete(ctx context.Context, id uuid.UUID) error {
	conversion, err := s.conversions.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.conversions.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.InvalidatePair(ctx, conversion.FromUOMID, conversion.ToUOMID)
	return nil
}

// Convert computes quantity * ratio for the exact ordered pair with an
// active conversion. An inactive or missing edge is NotFound; there is no
// inverse-ratio fallback.
func (s *ConversionService) Convert(ctx context.Context, from, to uuid.UUID, quantity float64) (*models.ConversionResult, error) {
	conversion, hit := s.cache.GetPair(ctx, from, to)
	if !hit {
		var err error
		conversion, err = s.conversions.FindActiveByPair(ctx, from, to)
		if err != nil {
			return nil, err
		}
		if conversion == nil {
			code := "NO_ACTIVE_CONVERSION"
			return nil, errs.NewNotFoundError("No active conversion found for this UOM pair", &code)
		}
		s.cache.SetPair(ctx, conversion)
	}

	return &models.ConversionResult{
		OriginalQuantity:  quantity,
		ConvertedQuantity: quantity * conversion.ConversionRatio,
		FromUOM:           conversion.FromUOM,
		ToUOM:             conversion.ToUOM,
	}, nil
}

func duplicatePairError() *errs.HTTPError {
	code := "UOM_CONVERSION_ALREADY_EXISTS"
	return errs.NewConflictError("A conversion for this UOM pair already exists", &code)
}

// invalidRatioError mirrors the database CHECK on conversion_ratio so the
// lower bound is enforced before a write is attempted.
func invalidRatioError() *errs.HTTPError {
	reason := fmt.Sprintf("must be at least %g", models.MinConversionRatio)
	return errs.NewBadRequestError(
		"conversionRatio "+reason,
		nil,
		[]errs.FieldError{{Field: "conversionRatio", Error: reason}},
	)
}

// remapNotFound rewrites a NotFound message while passing every other
// error through untouched.
func remapNotFound(err error, message string) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
		return httpErr.WithMessage(message)
	}
	return err
}
