package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/promosynch/promosynch-api/internal/api/metrics"
	"github.com/promosynch/promosynch-api/internal/core/domain"
	"github.com/promosynch/promosynch-api/internal/core/ports"
)

const oauthStateCookie = "oauth_state"

// AuthHandler orchestrates the session and registration flows: login,
// password registration, the OAuth redirect pair, and credential rotation.
type AuthHandler struct {
	authService ports.AuthService
	federation  ports.FederationService
	provider    ports.IdentityProvider
	frontendURL string
	log         zerolog.Logger
}

func NewAuthHandler(
	authService ports.AuthService,
	federation ports.FederationService,
	provider ports.IdentityProvider,
	frontendURL string,
	log zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		federation:  federation,
		provider:    provider,
		frontendURL: frontendURL,
		log:         log,
	}
}

// Login authenticates a promoter and returns a bearer token.
//
// @Summary      Login with email and password
// @Tags         promoters
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /promoters/session [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, promoter, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPromoterNotFound):
			metrics.LoginsTotal.WithLabelValues("not_found").Inc()
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("wrong_password").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, loginResponse{PromoterID: promoter.ID, Token: token})
}

// Register creates a password-authenticated promoter from a multipart form,
// optionally storing an avatar image.
//
// @Summary      Register a new promoter
// @Tags         promoters
// @Accept       multipart/form-data
// @Produce      json
// @Param        name      formData  string  true   "Given name"
// @Param        surname   formData  string  true   "Family name"
// @Param        email     formData  string  true   "Email, used as login key"
// @Param        password  formData  string  true   "Password"
// @Param        avatar    formData  file    false  "Avatar image"
// @Success      201   {object}  promoterResponse
// @Failure      400   {object}  errorResponse
// @Router       /promoters/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	avatar, closeAvatar, err := formMediaUpload(c, "avatar")
	if err != nil {
		return err
	}
	defer closeAvatar()

	promoter, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     c.FormValue("name"),
		Surname:  c.FormValue("surname"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		Avatar:   avatar,
	})
	if err != nil {
		return err
	}

	metrics.PromoterRegistrationsTotal.WithLabelValues("password").Inc()
	return c.JSON(http.StatusCreated, promoterResponse{
		ID:      promoter.ID,
		Name:    promoter.Name,
		Surname: promoter.Surname,
		Email:   promoter.Email,
		Avatar:  promoter.Avatar,
		Role:    promoter.Role,
	})
}

// OAuthInitiate redirects to the Google consent screen.
//
// @Summary      Start the Google OAuth flow
// @Tags         promoters
// @Success      302
// @Router       /promoters/oauth-google [get]
func (h *AuthHandler) OAuthInitiate(c echo.Context) error {
	state, err := newOAuthState()
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state))
}

// OAuthCallback completes the Google flow: it exchanges the code, resolves
// (or creates) the promoter, issues a token, and redirects to the frontend
// with token and promoter id as query parameters.
//
// @Summary      Google OAuth callback
// @Tags         promoters
// @Success      302
// @Failure      401   {object}  errorResponse
// @Router       /promoters/oauth-callback [get]
func (h *AuthHandler) OAuthCallback(c echo.Context) error {
	// Consent denied or state mismatch: back to the root, no session.
	code := c.QueryParam("code")
	if code == "" {
		return c.Redirect(http.StatusFound, "/")
	}
	cookie, err := c.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != c.QueryParam("state") {
		return c.Redirect(http.StatusFound, "/")
	}

	profile, err := h.provider.FetchProfile(c.Request().Context(), code)
	if err != nil {
		h.log.Error().Err(err).Msg("oauth code exchange failed")
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication failed")
	}

	promoter, created, err := h.federation.Resolve(c.Request().Context(), profile)
	if err != nil {
		return err
	}

	token, err := h.authService.IssueToken(promoter.ID)
	if err != nil {
		return err
	}

	if created {
		metrics.PromoterRegistrationsTotal.WithLabelValues("google").Inc()
	}
	return c.Redirect(http.StatusFound, fmt.Sprintf("%s?token=%s&promoterId=%s", h.frontendURL, token, promoter.ID))
}

// UpdateCredentials rotates email and/or password after re-verifying the
// current password. The response strips password and role.
//
// @Summary      Update login credentials
// @Tags         promoters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Promoter id"
// @Param        body  body      updateCredentialsRequest  true  "Current password and new credentials"
// @Success      200   {object}  promoterResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /promoters/{id}/credentials [patch]
func (h *AuthHandler) UpdateCredentials(c echo.Context) error {
	var req updateCredentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.authService.UpdateCredentials(
		c.Request().Context(), c.Param("id"), req.Password, req.NewEmail, req.NewPassword)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, promoterResponse{
		ID:      updated.ID,
		Name:    updated.Name,
		Surname: updated.Surname,
		Email:   updated.Email,
		Avatar:  updated.Avatar,
	})
}
