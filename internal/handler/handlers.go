package handler

import (
	"github.com/deppfellow/uom-service/internal/server"
	"github.com/deppfellow/uom-service/internal/service"
)

// Handlers aggregates every HTTP handler for route registration.
type Handlers struct {
	UOMs        *UOMHandler
	Conversions *ConversionHandler
	Health      *HealthHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		UOMs:        NewUOMHandler(s, services.UOMs),
		Conversions: NewConversionHandler(s, services.Conversions),
		Health:      NewHealthHandler(s),
	}
}
