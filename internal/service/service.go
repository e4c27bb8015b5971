// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// input from handlers, enforces the domain rules (uniqueness, pair
// distinctness, delete protection, category defaulting), and calls
// repository methods to persist data. All domain failures are raised as
// errs errors with an explicit kind and HTTP-status hint; the global error
// handler maps them onto the response envelope.
package service

import (
	"github.com/deppfellow/uom-service/internal/repository"
	"github.com/deppfellow/uom-service/internal/server"
)

// Services is the container for all service instances.
type Services struct {
	UOMs        *UOMService
	Conversions *ConversionService
	Auth        *AuthService
}

// NewServices constructs the service container on top of the repositories
// and the shared server dependencies.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	cache := NewConversionCache(s.Redis, s.Logger)

	return &Services{
		UOMs:        NewUOMService(repos.UOMs, repos.Conversions),
		Conversions: NewConversionService(repos.Conversions, repos.UOMs, cache),
		Auth:        NewAuthService(s),
	}, nil
}
