package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/uom-service/internal/errs"
	"github.com/deppfellow/uom-service/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newTestUOMService(uoms *mockUOMStore, conversions *mockConversionStore) *UOMService {
	s := NewUOMService(uoms, conversions)
	s.clock = func() time.Time { return testTime }
	s.idGen = func() uuid.UUID { return uuid.MustParse("11111111-1111-1111-1111-111111111111") }
	return s
}

func TestUOMServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with normalized short code and default status", func(t *testing.T) {
		uoms := new(mockUOMStore)
		conversions := new(mockConversionStore)
		svc := newTestUOMService(uoms, conversions)

		uoms.On("FindByNameOrCode", ctx, "Kilogram", "kg", uuid.Nil).Return(nil, nil)
		uoms.On("Create", ctx, mock.AnythingOfType("*models.UOM")).Return(nil)

		u, err := svc.Create(ctx, CreateUOMInput{
			UnitName:  "  Kilogram ",
			ShortCode: " KG ",
			Type:      models.UOMTypeBase,
			Category:  models.CategoryWeight,
		})

		require.NoError(t, err)
		assert.Equal(t, "Kilogram", u.UnitName)
		assert.Equal(t, "kg", u.ShortCode)
		assert.Equal(t, models.StatusActive, u.Status)
		assert.Equal(t, testTime, u.CreatedAt)
		assert.Equal(t, testTime, u.UpdatedAt)
		uoms.AssertExpectations(t)
	})

	t.Run("rejects duplicate name case-insensitively", func(t *testing.T) {
		uoms := new(mockUOMStore)
		conversions := new(mockConversionStore)
		svc := newTestUOMService(uoms, conversions)

		existing := &models.UOM{ID: uuid.New(), UnitName: "Kilogram", ShortCode: "kg"}
		uoms.On("FindByNameOrCode", ctx, "KILOGRAM", "kgs", uuid.Nil).Return(existing, nil)

		_, err := svc.Create(ctx, CreateUOMInput{
			UnitName:  "KILOGRAM",
			ShortCode: "kgs",
			Type:      models.UOMTypeBase,
			Category:  models.CategoryWeight,
		})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Equal(t, "UOM_ALREADY_EXISTS", httpErr.Code)
		assert.Contains(t, httpErr.Message, "unit name")
		uoms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate short code", func(t *testing.T) {
		uoms := new(mockUOMStore)
		conversions := new(mockConversionStore)
		svc := newTestUOMService(uoms, conversions)

		existing := &models.UOM{ID: uuid.New(), UnitName: "Kilogram", ShortCode: "kg"}
		uoms.On("FindByNameOrCode", ctx, "Gram", "kg", uuid.Nil).Return(existing, nil)

		_, err := svc.Create(ctx, CreateUOMInput{
			UnitName:  "Gram",
			ShortCode: "KG",
			Type:      models.UOMTypeBase,
			Category:  models.CategoryWeight,
		})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Contains(t, httpErr.Message, "short code")
	})
}

func TestUOMServiceUpdate(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	stored := func() *models.UOM {
		return &models.UOM{
			ID:        id,
			UnitName:  "Kilogram",
			ShortCode: "kg",
			Type:      models.UOMTypeBase,
			Category:  models.CategoryWeight,
			Status:    models.StatusActive,
		}
	}

	t.Run("updates fields and bumps UpdatedAt", func(t *testing.T) {
		uoms := new(mockUOMStore)
		conversions := new(mockConversionStore)
		svc := newTestUOMService(uoms, conversions)

		uoms.On("GetByID", ctx, id).Return(stored(), nil)
		uoms.On("Update", ctx, mock.AnythingOfType("*models.UOM")).Return(nil)

		status := models.StatusInactive
		u, err := svc.Update(ctx, id, UpdateUOMInput{Status: &status})

		require.NoError(t, err)
		assert.Equal(t, models.StatusInactive, u.Status)
		assert.Equal(t, testTime, u.UpdatedAt)
		uoms.AssertNotCalled(t, "FindByNameOrCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("re-checks uniqueness excluding itself on rename", func(t *testing.T) {
		uoms := new(mockUOMStore)
		conversions := new(mockConversionStore)
		svc := newTestUOMService(uoms, conversions)

		uoms.On("GetByID", ctx, id).Return(stored(), nil)
		uoms.On("FindByNameOrCode", ctx, "Gram", "kg", id).Return(nil, nil)
		uoms.On("Update", ctx, mock.AnythingOfType("*models.UOM")).Return(nil)

		name := "Gram"
		u, err := svc.Update(ctx, id, UpdateUOMInput{UnitName: &name})

		require.NoError(t, err)
		assert.Equal(t, "Gram", u.UnitName)
		uoms.AssertExpectations(t)
	})

	t.Run("conflicts when the new name belongs to another unit", func(t *testing.T) {
		uoms := new(mockUOMStore)
		conversions := new(mockConversionStore)
		svc := newTestUOMService(uoms, conversions)

		other := &models.UOM{ID: uuid.New(), UnitName: "Gram", ShortCode: "g"}
		uoms.On("GetByID", ctx, id).Return(stored(), nil)
		uoms.On("FindByNameOrCode", ctx, "Gram", "kg", id).Return(other, nil)

		name := "Gram"
		_, err := svc.Update(ctx, id, UpdateUOMInput{UnitName: &name})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusConflict, httpErr.Status)
		uoms.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("not found bubbles up", func(t *testing.T) {
		uoms := new(mockUOMStore)
		conversions := new(mockConversionStore)
		svc := newTestUOMService(uoms, conversions)

		uoms.On("GetByID", ctx, id).Return(nil, errs.NewNotFoundError("UOM not found", nil))

		_, err := svc.Update(ctx, id, UpdateUOMInput{})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})
}

func TestUOMServiceDelete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("deletes an unreferenced unit", func(t *testing.T) {
		uoms := new(mockUOMStore)
		conversions := new(mockConversionStore)
		svc := newTestUOMService(uoms, conversions)

		uoms.On("GetByID", ctx, id).Return(&models.UOM{ID: id}, nil)
		conversions.On("CountReferencing", ctx, id).Return(int64(0), nil)
		uoms.On("Delete", ctx, id).Return(nil)

		require.NoError(t, svc.Delete(ctx, id))
		uoms.AssertExpectations(t)
	})

	t.Run("blocks deletion while conversions reference the unit", func(t *testing.T) {
		uoms := new(mockUOMStore)
		conversions := new(mockConversionStore)
		svc := newTestUOMService(uoms, conversions)

		uoms.On("GetByID", ctx, id).Return(&models.UOM{ID: id}, nil)
		conversions.On("CountReferencing", ctx, id).Return(int64(3), nil)

		err := svc.Delete(ctx, id)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Equal(t, "UOM_IN_USE", httpErr.Code)
		assert.Contains(t, httpErr.Message, "3 conversion(s)")
		uoms.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
