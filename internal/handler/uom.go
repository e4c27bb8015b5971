package handler

import (
	"github.com/deppfellow/uom-service/internal/models"
	"github.com/deppfellow/uom-service/internal/server"
	"github.com/deppfellow/uom-service/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UOMHandler exposes the unit-of-measure CRUD endpoints.
type UOMHandler struct {
	Handler
	uoms *service.UOMService
}

func NewUOMHandler(s *server.Server, uoms *service.UOMService) *UOMHandler {
	return &UOMHandler{Handler: NewHandler(s), uoms: uoms}
}

func (h *UOMHandler) Create(c echo.Context, req *CreateUOMRequest) (Response, error) {
	u, err := h.uoms.Create(c.Request().Context(), service.CreateUOMInput{
		UnitName:  req.UnitName,
		ShortCode: req.ShortCode,
		Type:      models.UOMType(req.Type),
		Category:  models.Category(req.Category),
		Status:    models.Status(req.Status),
	})
	if err != nil {
		return Response{}, err
	}
	return MessageResponse("UOM created successfully", u), nil
}

func (h *UOMHandler) List(c echo.Context, req *ListUOMsRequest) (Response, error) {
	uoms, err := h.uoms.List(c.Request().Context(), models.UOMFilter{
		Search:   req.Search,
		Status:   models.Status(req.Status),
		Type:     models.UOMType(req.Type),
		Category: models.Category(req.Category),
	})
	if err != nil {
		return Response{}, err
	}
	return ListResponse(uoms), nil
}

func (h *UOMHandler) Get(c echo.Context, req *GetUOMRequest) (Response, error) {
	u, err := h.uoms.GetByID(c.Request().Context(), uuid.MustParse(req.ID))
	if err != nil {
		return Response{}, err
	}
	return DataResponse(u), nil
}

func (h *UOMHandler) Update(c echo.Context, req *UpdateUOMRequest) (Response, error) {
	in := service.UpdateUOMInput{
		UnitName:  req.UnitName,
		ShortCode: req.ShortCode,
		Type:      (*models.UOMType)(req.Type),
		Category:  (*models.Category)(req.Category),
		Status:    (*models.Status)(req.Status),
	}

	u, err := h.uoms.Update(c.Request().Context(), uuid.MustParse(req.ID), in)
	if err != nil {
		return Response{}, err
	}
	return MessageResponse("UOM updated successfully", u), nil
}

func (h *UOMHandler) Delete(c echo.Context, req *DeleteUOMRequest) (Response, error) {
	if err := h.uoms.Delete(c.Request().Context(), uuid.MustParse(req.ID)); err != nil {
		return Response{}, err
	}
	return MessageResponse("UOM deleted successfully", nil), nil
}
