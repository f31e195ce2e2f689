package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/promosynch/promosynch-api/internal/core/ports"
)

// PromoterHandler handles promoter profile routes. All routes sit behind
// the access gate.
type PromoterHandler struct {
	promoterService ports.PromoterService
	media           ports.MediaStore
}

func NewPromoterHandler(promoterService ports.PromoterService, media ports.MediaStore) *PromoterHandler {
	return &PromoterHandler{promoterService: promoterService, media: media}
}

// GetByID returns one promoter, password stripped.
//
// @Summary      Get a promoter
// @Tags         promoters
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Promoter id"
// @Success      200  {object}  promoterResponse
// @Failure      404  {object}  errorResponse
// @Router       /promoters/{id} [get]
func (h *PromoterHandler) GetByID(c echo.Context) error {
	promoter, err := h.promoterService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, promoterResponse{
		ID:      promoter.ID,
		Name:    promoter.Name,
		Surname: promoter.Surname,
		Email:   promoter.Email,
		Avatar:  promoter.Avatar,
		Role:    promoter.Role,
	})
}

// UpdateProfile changes name and/or surname; empty body is a 400.
//
// @Summary      Update promoter profile
// @Tags         promoters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                true  "Promoter id"
// @Param        body  body  updateProfileRequest  true  "Fields to update"
// @Success      200  {object}  promoterResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /promoters/{id}/update [put]
func (h *PromoterHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.promoterService.UpdateProfile(c.Request().Context(), c.Param("id"), ports.ProfileUpdateInput{
		Name:    req.Name,
		Surname: req.Surname,
	})
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

// UpdateAvatar stores an uploaded avatar image and returns its URL.
//
// @Summary      Update promoter avatar
// @Tags         promoters
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Promoter id"
// @Param        avatar  formData  file    true  "Avatar image"
// @Success      200  {object}  avatarResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /promoters/{id}/profpic [patch]
func (h *PromoterHandler) UpdateAvatar(c echo.Context) error {
	avatarURL, err := uploadFormFile(c, h.media, "avatar", "promosynch")
	if err != nil {
		return err
	}
	if avatarURL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "no file uploaded")
	}

	stored, err := h.promoterService.UpdateAvatar(c.Request().Context(), c.Param("id"), avatarURL)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, avatarResponse{Avatar: stored})
}

// Delete removes a promoter account. Owned happenings are not cleaned up.
//
// @Summary      Delete a promoter
// @Tags         promoters
// @Security     BearerAuth
// @Param        id  path  string  true  "Promoter id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /promoters/{id} [delete]
func (h *PromoterHandler) Delete(c echo.Context) error {
	if err := h.promoterService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
