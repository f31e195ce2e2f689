package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/promosynch/promosynch-api/internal/core/domain"
	"github.com/promosynch/promosynch-api/internal/core/ports"
)

const (
	// ContextKeyPromoter holds the gate-resolved *domain.Promoter with the
	// password hash stripped.
	ContextKeyPromoter = "promoter"
	// ContextKeyPromoterID holds the verified promoter id claim.
	ContextKeyPromoterID = "promoter_id"
)

// Auth is the access gate for protected routes: it extracts the bearer
// token, verifies it, resolves the promoter, and attaches the sanitized
// identity to the request context.
//
// Exactly two failure outcomes exist: any token-level failure (missing or
// malformed header, expired, bad signature) is a uniform 401, and a valid
// token whose promoter no longer exists is a 404.
func Auth(verifier ports.TokenVerifier, promoters ports.PromoterRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.ErrInvalidToken
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrInvalidToken
			}

			id, err := verifier.VerifyToken(parts[1])
			if err != nil {
				return domain.ErrInvalidToken
			}

			promoter, err := promoters.FindByID(c.Request().Context(), id)
			if err != nil {
				// ErrPromoterNotFound maps to 404: the token was valid but
				// the account has been deleted since issuance.
				return err
			}

			c.Set(ContextKeyPromoter, promoter.Sanitized())
			c.Set(ContextKeyPromoterID, promoter.ID)
			c.Set("role", promoter.Role)

			return next(c)
		}
	}
}
