package service

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/uom-service/internal/server"
)

// AuthService owns the Clerk SDK setup. The SDK key is process-global, so
// this is the single place it gets configured.
type AuthService struct {
	server *server.Server
}

func NewAuthService(s *server.Server) *AuthService {
	if s.Config.Auth.Enabled {
		clerk.SetKey(s.Config.Auth.SecretKey)
	}
	return &AuthService{
		server: s,
	}
}
