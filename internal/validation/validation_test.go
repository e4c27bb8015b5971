package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/uom-service/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validate = validator.New()

type createPayload struct {
	UnitName  string `json:"unitName" validate:"required,min=1,max=100"`
	ShortCode string `json:"shortCode" validate:"required,max=20"`
	Type      string `json:"type" validate:"required,oneof=base derived"`
}

func (p *createPayload) Validate() error { return validate.Struct(p) }

func newContext(t *testing.T, body string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate(t *testing.T) {
	t.Run("valid payload passes", func(t *testing.T) {
		c := newContext(t, `{"unitName":"Kilogram","shortCode":"kg","type":"base"}`)

		payload := new(createPayload)
		require.NoError(t, BindAndValidate(c, payload))
		assert.Equal(t, "Kilogram", payload.UnitName)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		c := newContext(t, `{"unitName":`)

		err := BindAndValidate(c, new(createPayload))

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "Invalid request body", httpErr.Message)
	})

	t.Run("missing fields become field errors with JSON casing", func(t *testing.T) {
		c := newContext(t, `{"type":"base"}`)

		err := BindAndValidate(c, new(createPayload))

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Len(t, httpErr.Errors, 2)
		assert.Equal(t, "unitName", httpErr.Errors[0].Field)
		assert.Equal(t, "is required", httpErr.Errors[0].Error)
		assert.Equal(t, "shortCode", httpErr.Errors[1].Field)
	})

	t.Run("oneof violations list the options", func(t *testing.T) {
		c := newContext(t, `{"unitName":"Kilogram","shortCode":"kg","type":"compound"}`)

		err := BindAndValidate(c, new(createPayload))

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "type", httpErr.Errors[0].Field)
		assert.Equal(t, "must be one of: base, derived", httpErr.Errors[0].Error)
	})

	t.Run("max violations report the limit", func(t *testing.T) {
		c := newContext(t, `{"unitName":"Kilogram","shortCode":"`+strings.Repeat("k", 21)+`","type":"base"}`)

		err := BindAndValidate(c, new(createPayload))

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "must not exceed 20 characters", httpErr.Errors[0].Error)
	})
}

func TestCustomValidationErrors(t *testing.T) {
	_, fieldErrors := extractValidationError(CustomValidationErrors{
		{Field: "conversionRatio", Message: "must be at least 0.001"},
	})

	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "conversionRatio", fieldErrors[0].Field)
	assert.Equal(t, "must be at least 0.001", fieldErrors[0].Error)
}
