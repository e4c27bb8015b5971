package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/uom-service/internal/errs"
	"github.com/deppfellow/uom-service/internal/middleware"
	"github.com/deppfellow/uom-service/internal/models"
	"github.com/deppfellow/uom-service/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUOMStore implements repository.UOMStore with per-test closures.
// Unset methods fail loudly if a handler reaches them unexpectedly.
type stubUOMStore struct {
	create           func(ctx context.Context, u *models.UOM) error
	getByID          func(ctx context.Context, id uuid.UUID) (*models.UOM, error)
	findByNameOrCode func(ctx context.Context, unitName, shortCode string, exclude uuid.UUID) (*models.UOM, error)
	list             func(ctx context.Context, filter models.UOMFilter) ([]models.UOM, error)
	update           func(ctx context.Context, u *models.UOM) error
	delete           func(ctx context.Context, id uuid.UUID) error
}

func (s *stubUOMStore) Create(ctx context.Context, u *models.UOM) error { return s.create(ctx, u) }
func (s *stubUOMStore) GetByID(ctx context.Context, id uuid.UUID) (*models.UOM, error) {
	return s.getByID(ctx, id)
}
func (s *stubUOMStore) FindByNameOrCode(ctx context.Context, unitName, shortCode string, exclude uuid.UUID) (*models.UOM, error) {
	return s.findByNameOrCode(ctx, unitName, shortCode, exclude)
}
func (s *stubUOMStore) List(ctx context.Context, filter models.UOMFilter) ([]models.UOM, error) {
	return s.list(ctx, filter)
}
func (s *stubUOMStore) Update(ctx context.Context, u *models.UOM) error { return s.update(ctx, u) }
func (s *stubUOMStore) Delete(ctx context.Context, id uuid.UUID) error  { return s.delete(ctx, id) }

type stubConversionStore struct {
	create           func(ctx context.Context, c *models.UOMConversion) error
	getByID          func(ctx context.Context, id uuid.UUID) (*models.UOMConversion, error)
	findByPair       func(ctx context.Context, from, to, exclude uuid.UUID) (*models.UOMConversion, error)
	findActiveByPair func(ctx context.Context, from, to uuid.UUID) (*models.UOMConversion, error)
	countReferencing func(ctx context.Context, uomID uuid.UUID) (int64, error)
	list             func(ctx context.Context, filter models.ConversionFilter) ([]models.UOMConversion, error)
	update           func(ctx context.Context, c *models.UOMConversion) error
	delete           func(ctx context.Context, id uuid.UUID) error
}

func (s *stubConversionStore) Create(ctx context.Context, c *models.UOMConversion) error {
	return s.create(ctx, c)
}
func (s *stubConversionStore) GetByID(ctx context.Context, id uuid.UUID) (*models.UOMConversion, error) {
	return s.getByID(ctx, id)
}
func (s *stubConversionStore) FindByPair(ctx context.Context, from, to, exclude uuid.UUID) (*models.UOMConversion, error) {
	return s.findByPair(ctx, from, to, exclude)
}
func (s *stubConversionStore) FindActiveByPair(ctx context.Context, from, to uuid.UUID) (*models.UOMConversion, error) {
	return s.findActiveByPair(ctx, from, to)
}
func (s *stubConversionStore) CountReferencing(ctx context.Context, uomID uuid.UUID) (int64, error) {
	return s.countReferencing(ctx, uomID)
}
func (s *stubConversionStore) List(ctx context.Context, filter models.ConversionFilter) ([]models.UOMConversion, error) {
	return s.list(ctx, filter)
}
func (s *stubConversionStore) Update(ctx context.Context, c *models.UOMConversion) error {
	return s.update(ctx, c)
}
func (s *stubConversionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.delete(ctx, id)
}

// newTestRouter wires real services over the stub stores into an Echo
// instance with the real error handler, so tests observe the exact wire
// envelopes.
func newTestRouter(uoms *stubUOMStore, conversions *stubConversionStore) *echo.Echo {
	uomSvc := service.NewUOMService(uoms, conversions)
	convSvc := service.NewConversionService(conversions, uoms, service.NewConversionCache(nil, nil))

	uomHandler := &UOMHandler{uoms: uomSvc}
	convHandler := &ConversionHandler{conversions: convSvc}

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(nil).GlobalErrorHandler

	e.POST("/uoms", Handle(uomHandler.Create, http.StatusCreated))
	e.GET("/uoms", Handle(uomHandler.List, http.StatusOK))
	e.GET("/uoms/:id", Handle(uomHandler.Get, http.StatusOK))
	e.PATCH("/uoms/:id", Handle(uomHandler.Update, http.StatusOK))
	e.DELETE("/uoms/:id", Handle(uomHandler.Delete, http.StatusOK))
	e.POST("/uom-conversions", Handle(convHandler.Create, http.StatusCreated))
	e.POST("/convert", Handle(convHandler.Convert, http.StatusOK))

	return e
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateUOMEndpoint(t *testing.T) {
	t.Run("201 with success envelope", func(t *testing.T) {
		uoms := &stubUOMStore{
			findByNameOrCode: func(ctx context.Context, unitName, shortCode string, exclude uuid.UUID) (*models.UOM, error) {
				return nil, nil
			},
			create: func(ctx context.Context, u *models.UOM) error { return nil },
		}
		e := newTestRouter(uoms, &stubConversionStore{})

		rec := doJSON(e, http.MethodPost, "/uoms",
			`{"unitName":"Kilogram","shortCode":"KG","type":"base","category":"Weight"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "UOM created successfully", body["message"])

		data := body["data"].(map[string]any)
		assert.Equal(t, "kg", data["shortCode"])
		assert.Equal(t, "Active", data["status"])
	})

	t.Run("400 with field errors on invalid enum", func(t *testing.T) {
		e := newTestRouter(&stubUOMStore{}, &stubConversionStore{})

		rec := doJSON(e, http.MethodPost, "/uoms",
			`{"unitName":"Kilogram","shortCode":"kg","type":"compound","category":"Weight"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "BAD_REQUEST", body["errorCode"])

		errors := body["errors"].([]any)
		first := errors[0].(map[string]any)
		assert.Equal(t, "type", first["field"])
	})

	t.Run("409 on duplicate name", func(t *testing.T) {
		existing := &models.UOM{ID: uuid.New(), UnitName: "Kilogram", ShortCode: "kg"}
		uoms := &stubUOMStore{
			findByNameOrCode: func(ctx context.Context, unitName, shortCode string, exclude uuid.UUID) (*models.UOM, error) {
				return existing, nil
			},
		}
		e := newTestRouter(uoms, &stubConversionStore{})

		rec := doJSON(e, http.MethodPost, "/uoms",
			`{"unitName":"kilogram","shortCode":"kgs","type":"base","category":"Weight"}`)

		require.Equal(t, http.StatusConflict, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "UOM_ALREADY_EXISTS", body["errorCode"])
	})
}

func TestGetUOMEndpoint(t *testing.T) {
	t.Run("400 on malformed id", func(t *testing.T) {
		e := newTestRouter(&stubUOMStore{}, &stubConversionStore{})

		rec := doJSON(e, http.MethodGet, "/uoms/not-a-uuid", "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		errors := body["errors"].([]any)
		first := errors[0].(map[string]any)
		assert.Equal(t, "id", first["field"])
		assert.Equal(t, "must be a valid UUID", first["error"])
	})

	t.Run("404 when missing", func(t *testing.T) {
		uoms := &stubUOMStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.UOM, error) {
				return nil, errsNotFound()
			},
		}
		e := newTestRouter(uoms, &stubConversionStore{})

		rec := doJSON(e, http.MethodGet, "/uoms/"+uuid.NewString(), "")

		require.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "UOM not found", body["message"])
	})
}

func TestListUOMsEndpoint(t *testing.T) {
	uoms := &stubUOMStore{
		list: func(ctx context.Context, filter models.UOMFilter) ([]models.UOM, error) {
			assert.Equal(t, "kilo", filter.Search)
			assert.Equal(t, models.StatusActive, filter.Status)
			return []models.UOM{{UnitName: "Kilogram"}, {UnitName: "Kilometer"}}, nil
		},
	}
	e := newTestRouter(uoms, &stubConversionStore{})

	rec := doJSON(e, http.MethodGet, "/uoms?search=kilo&status=Active", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["count"])
	assert.Len(t, body["data"].([]any), 2)
}

func TestDeleteUOMEndpoint(t *testing.T) {
	t.Run("409 while referenced", func(t *testing.T) {
		id := uuid.New()
		uoms := &stubUOMStore{
			getByID: func(ctx context.Context, got uuid.UUID) (*models.UOM, error) {
				return &models.UOM{ID: got}, nil
			},
		}
		conversions := &stubConversionStore{
			countReferencing: func(ctx context.Context, uomID uuid.UUID) (int64, error) {
				return 2, nil
			},
		}
		e := newTestRouter(uoms, conversions)

		rec := doJSON(e, http.MethodDelete, "/uoms/"+id.String(), "")

		require.Equal(t, http.StatusConflict, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "UOM_IN_USE", body["errorCode"])
	})
}

func TestConvertEndpoint(t *testing.T) {
	kg := &models.UOM{ID: uuid.New(), UnitName: "Kilogram", ShortCode: "kg"}
	g := &models.UOM{ID: uuid.New(), UnitName: "Gram", ShortCode: "g"}

	t.Run("multiplies by the stored ratio", func(t *testing.T) {
		conversions := &stubConversionStore{
			findActiveByPair: func(ctx context.Context, from, to uuid.UUID) (*models.UOMConversion, error) {
				return &models.UOMConversion{
					FromUOMID:       kg.ID,
					ToUOMID:         g.ID,
					ConversionRatio: 1000,
					FromUOM:         kg,
					ToUOM:           g,
				}, nil
			},
		}
		e := newTestRouter(&stubUOMStore{}, conversions)

		rec := doJSON(e, http.MethodPost, "/convert",
			`{"fromUOM":"`+kg.ID.String()+`","toUOM":"`+g.ID.String()+`","quantity":2}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		data := body["data"].(map[string]any)
		assert.Equal(t, float64(2), data["originalQuantity"])
		assert.Equal(t, float64(2000), data["convertedQuantity"])
	})

	t.Run("404 without an active edge", func(t *testing.T) {
		conversions := &stubConversionStore{
			findActiveByPair: func(ctx context.Context, from, to uuid.UUID) (*models.UOMConversion, error) {
				return nil, nil
			},
		}
		e := newTestRouter(&stubUOMStore{}, conversions)

		rec := doJSON(e, http.MethodPost, "/convert",
			`{"fromUOM":"`+kg.ID.String()+`","toUOM":"`+g.ID.String()+`","quantity":2}`)

		require.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "NO_ACTIVE_CONVERSION", body["errorCode"])
	})

	t.Run("400 when quantity is missing", func(t *testing.T) {
		e := newTestRouter(&stubUOMStore{}, &stubConversionStore{})

		rec := doJSON(e, http.MethodPost, "/convert",
			`{"fromUOM":"`+kg.ID.String()+`","toUOM":"`+g.ID.String()+`"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateConversionEndpoint(t *testing.T) {
	kg := &models.UOM{ID: uuid.New(), UnitName: "Kilogram", Category: models.CategoryWeight}
	g := &models.UOM{ID: uuid.New(), UnitName: "Gram", Category: models.CategoryWeight}

	t.Run("400 on self pair", func(t *testing.T) {
		e := newTestRouter(&stubUOMStore{}, &stubConversionStore{})

		rec := doJSON(e, http.MethodPost, "/uom-conversions",
			`{"fromUOM":"`+kg.ID.String()+`","toUOM":"`+kg.ID.String()+`","conversionRatio":1}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Contains(t, body["message"], "must be different")
	})

	t.Run("400 on ratio below the minimum", func(t *testing.T) {
		e := newTestRouter(&stubUOMStore{}, &stubConversionStore{})

		rec := doJSON(e, http.MethodPost, "/uom-conversions",
			`{"fromUOM":"`+kg.ID.String()+`","toUOM":"`+g.ID.String()+`","conversionRatio":0.0001}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("201 with expanded references", func(t *testing.T) {
		uoms := &stubUOMStore{
			getByID: func(ctx context.Context, id uuid.UUID) (*models.UOM, error) {
				if id == kg.ID {
					return kg, nil
				}
				return g, nil
			},
		}
		conversions := &stubConversionStore{
			findByPair: func(ctx context.Context, from, to, exclude uuid.UUID) (*models.UOMConversion, error) {
				return nil, nil
			},
			create: func(ctx context.Context, c *models.UOMConversion) error { return nil },
		}
		e := newTestRouter(uoms, conversions)

		rec := doJSON(e, http.MethodPost, "/uom-conversions",
			`{"fromUOM":"`+kg.ID.String()+`","toUOM":"`+g.ID.String()+`","conversionRatio":1000}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		data := body["data"].(map[string]any)
		assert.Equal(t, "Weight", data["category"])
		assert.Equal(t, "Kilogram", data["fromUOM"].(map[string]any)["unitName"])
		assert.Equal(t, "Gram", data["toUOM"].(map[string]any)["unitName"])
	})
}

func errsNotFound() error {
	return errs.NewNotFoundError("UOM not found", nil)
}
