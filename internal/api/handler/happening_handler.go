package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/promosynch/promosynch-api/internal/api/metrics"
	"github.com/promosynch/promosynch-api/internal/core/domain"
	"github.com/promosynch/promosynch-api/internal/core/ports"
)

// HappeningHandler handles event management and public attendee
// registration routes.
type HappeningHandler struct {
	happeningService ports.HappeningService
	media            ports.MediaStore
}

func NewHappeningHandler(happeningService ports.HappeningService, media ports.MediaStore) *HappeningHandler {
	return &HappeningHandler{happeningService: happeningService, media: media}
}

// Create makes a new happening owned by the calling promoter.
//
// @Summary      Create a happening
// @Tags         events
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title        formData  string  true   "Title"
// @Param        start        formData  string  true   "Start, RFC 3339"
// @Param        end          formData  string  true   "End, RFC 3339"
// @Param        location     formData  string  true   "Location"
// @Param        description  formData  string  true   "Description"
// @Param        ticketPrice  formData  string  false  "Ticket price"
// @Param        cover        formData  file    false  "Cover image"
// @Success      201  {object}  happeningResponse
// @Failure      400  {object}  errorResponse
// @Router       /events/create [post]
func (h *HappeningHandler) Create(c echo.Context) error {
	promoter, err := ctxPromoter(c)
	if err != nil {
		return err
	}

	start, err := time.Parse(time.RFC3339, c.FormValue("start"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start must be RFC 3339")
	}
	end, err := time.Parse(time.RFC3339, c.FormValue("end"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "end must be RFC 3339")
	}
	if c.FormValue("title") == "" || c.FormValue("location") == "" || c.FormValue("description") == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title, location and description are required")
	}

	coverURL, err := uploadFormFile(c, h.media, "cover", "promosynch")
	if err != nil {
		return err
	}

	created, err := h.happeningService.Create(c.Request().Context(), ports.CreateHappeningInput{
		Title:       c.FormValue("title"),
		Start:       start,
		End:         end,
		Cover:       coverURL,
		PromoterID:  promoter.ID,
		TicketPrice: c.FormValue("ticketPrice"),
		Location:    c.FormValue("location"),
		Description: c.FormValue("description"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toHappeningResponse(created))
}

// ListAll returns every happening.
//
// @Summary      List all happenings
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  happeningResponse
// @Router       /events [get]
func (h *HappeningHandler) ListAll(c echo.Context) error {
	happenings, err := h.happeningService.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHappeningResponses(happenings))
}

// GetByID returns one happening. Public: the attendee registration form
// reads it without a session.
//
// @Summary      Get a happening
// @Tags         events
// @Produce      json
// @Param        id  path  string  true  "Happening id"
// @Success      200  {object}  happeningResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [get]
func (h *HappeningHandler) GetByID(c echo.Context) error {
	happening, err := h.happeningService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHappeningResponse(happening))
}

// ListByPromoter returns the happenings owned by one promoter.
//
// @Summary      List happenings by promoter
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        promoter  path  string  true  "Promoter id"
// @Success      200  {array}  happeningResponse
// @Router       /events/promoter/{promoter} [get]
func (h *HappeningHandler) ListByPromoter(c echo.Context) error {
	happenings, err := h.happeningService.ListByPromoter(c.Request().Context(), c.Param("promoter"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHappeningResponses(happenings))
}

// Update applies a partial update; a body with no usable field is a 400.
//
// @Summary      Update a happening
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "Happening id"
// @Param        body  body  updateHappeningRequest  true  "Fields to update"
// @Success      200  {object}  happeningResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id}/update [put]
func (h *HappeningHandler) Update(c echo.Context) error {
	var req updateHappeningRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	update := ports.HappeningUpdate{}
	if req.Title != "" {
		update.Title = &req.Title
	}
	if req.Start != "" {
		start, err := time.Parse(time.RFC3339, req.Start)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid start date")
		}
		update.Start = &start
	}
	if req.End != "" {
		end, err := time.Parse(time.RFC3339, req.End)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid end date")
		}
		update.End = &end
	}
	if req.TicketPrice != "" {
		update.TicketPrice = &req.TicketPrice
	}
	if req.Location != "" {
		update.Location = &req.Location
	}
	if req.Description != "" {
		update.Description = &req.Description
	}

	updated, err := h.happeningService.Update(c.Request().Context(), c.Param("id"), update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHappeningResponse(updated))
}

// UpdateCover stores an uploaded cover image and returns its URL.
//
// @Summary      Update a happening cover
// @Tags         events
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true  "Happening id"
// @Param        cover  formData  file    true  "Cover image"
// @Success      200  {object}  coverResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id}/ucover [patch]
func (h *HappeningHandler) UpdateCover(c echo.Context) error {
	coverURL, err := uploadFormFile(c, h.media, "cover", "promosynch")
	if err != nil {
		return err
	}
	if coverURL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "no file uploaded")
	}

	stored, err := h.happeningService.UpdateCover(c.Request().Context(), c.Param("id"), coverURL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, coverResponse{Cover: stored})
}

// Delete removes a happening.
//
// @Summary      Delete a happening
// @Tags         events
// @Security     BearerAuth
// @Param        id  path  string  true  "Happening id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [delete]
func (h *HappeningHandler) Delete(c echo.Context) error {
	if err := h.happeningService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RegisterAttendee registers a client for a happening via the public form
// and sends the confirmation email.
//
// @Summary      Register an attendee
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "Happening id"
// @Param        body  body  registerAttendeeRequest  true  "Attendee details"
// @Success      200  {object}  happeningResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /events/{id} [put]
func (h *HappeningHandler) RegisterAttendee(c echo.Context) error {
	var req registerAttendeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	timer := prometheus.NewTimer(metrics.AttendeeRegistrationDuration)
	defer timer.ObserveDuration()

	updated, err := h.happeningService.RegisterAttendee(c.Request().Context(), c.Param("id"), ports.AttendeeInput{
		Name:        req.Name,
		Surname:     req.Surname,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		if err == domain.ErrAlreadyRegistered {
			metrics.AttendeeRegistrationsTotal.WithLabelValues("duplicate").Inc()
		} else {
			metrics.AttendeeRegistrationsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.AttendeeRegistrationsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, toHappeningResponse(updated))
}

// ListAttendees returns the flat attendee list across every happening
// owned by one promoter.
//
// @Summary      List all attendees registered with a promoter
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        promoterId  path  string  true  "Promoter id"
// @Success      200  {array}  attendeeResponse
// @Router       /events/clients/{promoterId} [get]
func (h *HappeningHandler) ListAttendees(c echo.Context) error {
	attendees, err := h.happeningService.ListAttendees(c.Request().Context(), c.Param("promoterId"))
	if err != nil {
		return err
	}

	out := make([]attendeeResponse, 0, len(attendees))
	for _, a := range attendees {
		out = append(out, toAttendeeResponse(a))
	}
	return c.JSON(http.StatusOK, out)
}

func toHappeningResponses(happenings []domain.Happening) []happeningResponse {
	out := make([]happeningResponse, 0, len(happenings))
	for i := range happenings {
		out = append(out, toHappeningResponse(&happenings[i]))
	}
	return out
}
