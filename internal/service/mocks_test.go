package service

import (
	"context"

	"github.com/deppfellow/uom-service/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUOMStore struct {
	mock.Mock
}

func (m *mockUOMStore) Create(ctx context.Context, u *models.UOM) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUOMStore) GetByID(ctx context.Context, id uuid.UUID) (*models.UOM, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.UOM), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUOMStore) FindByNameOrCode(ctx context.Context, unitName, shortCode string, exclude uuid.UUID) (*models.UOM, error) {
	args := m.Called(ctx, unitName, shortCode, exclude)
	if u := args.Get(0); u != nil {
		return u.(*models.UOM), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUOMStore) List(ctx context.Context, filter models.UOMFilter) ([]models.UOM, error) {
	args := m.Called(ctx, filter)
	if u := args.Get(0); u != nil {
		return u.([]models.UOM), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUOMStore) Update(ctx context.Context, u *models.UOM) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUOMStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockConversionStore struct {
	mock.Mock
}

func (m *mockConversionStore) Create(ctx context.Context, c *models.UOMConversion) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockConversionStore) GetByID(ctx context.Context, id uuid.UUID) (*models.UOMConversion, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*models.UOMConversion), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConversionStore) FindByPair(ctx context.Context, from, to, exclude uuid.UUID) (*models.UOMConversion, error) {
	args := m.Called(ctx, from, to, exclude)
	if c := args.Get(0); c != nil {
		return c.(*models.UOMConversion), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConversionStore) FindActiveByPair(ctx context.Context, from, to uuid.UUID) (*models.UOMConversion, error) {
	args := m.Called(ctx, from, to)
	if c := args.Get(0); c != nil {
		return c.(*models.UOMConversion), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConversionStore) CountReferencing(ctx context.Context, uomID uuid.UUID) (int64, error) {
	args := m.Called(ctx, uomID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockConversionStore) List(ctx context.Context, filter models.ConversionFilter) ([]models.UOMConversion, error) {
	args := m.Called(ctx, filter)
	if c := args.Get(0); c != nil {
		return c.([]models.UOMConversion), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConversionStore) Update(ctx context.Context, c *models.UOMConversion) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockConversionStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
