package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/promosynch/promosynch-api/internal/api/middleware"
	"github.com/promosynch/promosynch-api/internal/core/domain"
)

// ctxPromoter extracts the identity the access gate attached to the request
// context. Its presence proves the gate ran; a gated handler reached without
// it is a wiring bug, answered with 401 rather than a panic.
func ctxPromoter(c echo.Context) (*domain.Promoter, error) {
	promoter, _ := c.Get(middleware.ContextKeyPromoter).(*domain.Promoter)
	if promoter == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication identity")
	}
	return promoter, nil
}
