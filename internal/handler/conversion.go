package handler

import (
	"github.com/deppfellow/uom-service/internal/models"
	"github.com/deppfellow/uom-service/internal/server"
	"github.com/deppfellow/uom-service/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ConversionHandler exposes the conversion CRUD endpoints plus the
// quantity conversion endpoint.
type ConversionHandler struct {
	Handler
	conversions *service.ConversionService
}

func NewConversionHandler(s *server.Server, conversions *service.ConversionService) *ConversionHandler {
	return &ConversionHandler{Handler: NewHandler(s), conversions: conversions}
}

func (h *ConversionHandler) Create(c echo.Context, req *CreateConversionRequest) (Response, error) {
	conversion, err := h.conversions.Create(c.Request().Context(), service.CreateConversionInput{
		FromUOM:         uuid.MustParse(req.FromUOM),
		ToUOM:           uuid.MustParse(req.ToUOM),
		ConversionRatio: req.ConversionRatio,
		Category:        (*models.Category)(req.Category),
		Status:          models.Status(req.Status),
	})
	if err != nil {
		return Response{}, err
	}
	return MessageResponse("UOM conversion created successfully", conversion), nil
}

func (h *ConversionHandler) List(c echo.Context, req *ListConversionsRequest) (Response, error) {
	conversions, err := h.conversions.List(c.Request().Context(), models.ConversionFilter{
		Search:   req.Search,
		Status:   models.Status(req.Status),
		Category: models.Category(req.Category),
	})
	if err != nil {
		return Response{}, err
	}
	return ListResponse(conversions), nil
}

func (h *ConversionHandler) Get(c echo.Context, req *GetConversionRequest) (Response, error) {
	conversion, err := h.conversions.GetByID(c.Request().Context(), uuid.MustParse(req.ID))
	if err != nil {
		return Response{}, err
	}
	return DataResponse(conversion), nil
}

func (h *ConversionHandler) Update(c echo.Context, req *UpdateConversionRequest) (Response, error) {
	in := service.UpdateConversionInput{
		ConversionRatio: req.ConversionRatio,
		Category:        (*models.Category)(req.Category),
		Status:          (*models.Status)(req.Status),
	}
	if req.FromUOM != nil {
		from := uuid.MustParse(*req.FromUOM)
		in.FromUOM = &from
	}
	if req.ToUOM != nil {
		to := uuid.MustParse(*req.ToUOM)
		in.ToUOM = &to
	}

	conversion, err := h.conversions.Update(c.Request().Context(), uuid.MustParse(req.ID), in)
	if err != nil {
		return Response{}, err
	}
	return MessageResponse("UOM conversion updated successfully", conversion), nil
}

func (h *ConversionHandler) Delete(c echo.Context, req *DeleteConversionRequest) (Response, error) {
	if err := h.conversions.Delete(c.Request().Context(), uuid.MustParse(req.ID)); err != nil {
		return Response{}, err
	}
	return MessageResponse("UOM conversion deleted successfully", nil), nil
}

func (h *ConversionHandler) Convert(c echo.Context, req *ConvertRequest) (Response, error) {
	result, err := h.conversions.Convert(
		c.Request().Context(),
		uuid.MustParse(req.FromUOM),
		uuid.MustParse(req.ToUOM),
		*req.Quantity,
	)
	if err != nil {
		return Response{}, err
	}
	return MessageResponse("Conversion calculated successfully", result), nil
}
