package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/deppfellow/uom-service/internal/errs"
	"github.com/deppfellow/uom-service/internal/server"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware enforces authentication on the business routes when
// auth is enabled in config.
type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{server: s}
}

// RequireAuth validates the Authorization bearer token with Clerk and
// stores the authenticated subject in Echo context. A missing or invalid
// token answers 401 with the standard error envelope.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return echo.WrapMiddleware(
		clerkhttp.WithHeaderAuthorization(
			// Clerk's failure handler runs outside Echo, so the envelope is
			// written by hand here.
			clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)

				response := errs.ErrorResponse{
					Success:   false,
					Message:   "Unauthorized",
					ErrorCode: "UNAUTHORIZED",
				}
				if err := json.NewEncoder(w).Encode(response); err != nil {
					auth.server.Logger.Error().
						Err(err).
						Str("function", "RequireAuth").
						Msg("failed to write JSON response")
				}
			}))))(
		func(c echo.Context) error {
			claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
			if !ok {
				auth.server.Logger.Error().
					Str("function", "RequireAuth").
					Str("request_id", GetRequestID(c)).
					Msg("could not get session claims from context")

				return errs.NewUnauthorizedError("Unauthorized")
			}

			c.Set(UserIDKey, claims.Subject)

			return next(c)
		})
}
