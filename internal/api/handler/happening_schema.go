package handler

import (
	"time"

	"github.com/promosynch/promosynch-api/internal/core/domain"
)

// --- Request types ---

type updateHappeningRequest struct {
	Title       string `json:"title"`
	Start       string `json:"start"`
	End         string `json:"end"`
	TicketPrice string `json:"ticketPrice"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type registerAttendeeRequest struct {
	Name        string `json:"name"        validate:"required"`
	Surname     string `json:"surname"     validate:"required"`
	Email       string `json:"email"       validate:"required,email"`
	DateOfBirth string `json:"dateOfBirth"`
}

// --- Response types ---

type attendeeResponse struct {
	ID          string `json:"id"`
	HappeningID string `json:"happeningId,omitempty"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	CheckedIn   bool   `json:"checkedIn"`
	Role        string `json:"role"`
}

type happeningResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Start       time.Time          `json:"start"`
	End         time.Time          `json:"end"`
	Cover       string             `json:"cover,omitempty"`
	PromoterID  string             `json:"promoter"`
	TicketPrice string             `json:"ticketPrice,omitempty"`
	Location    string             `json:"location"`
	Description string             `json:"description"`
	Attendees   []attendeeResponse `json:"clients"`
}

type coverResponse struct {
	Cover string `json:"cover"`
}

func toAttendeeResponse(a domain.Attendee) attendeeResponse {
	return attendeeResponse{
		ID:          a.ID,
		HappeningID: a.HappeningID,
		Name:        a.Name,
		Surname:     a.Surname,
		Email:       a.Email,
		DateOfBirth: a.DateOfBirth,
		CheckedIn:   a.CheckedIn,
		Role:        a.Role,
	}
}

func toHappeningResponse(h *domain.Happening) happeningResponse {
	attendees := make([]attendeeResponse, 0, len(h.Attendees))
	for _, a := range h.Attendees {
		attendees = append(attendees, toAttendeeResponse(a))
	}
	return happeningResponse{
		ID:          h.ID,
		Title:       h.Title,
		Start:       h.Start,
		End:         h.End,
		Cover:       h.Cover,
		PromoterID:  h.PromoterID,
		TicketPrice: h.TicketPrice,
		Location:    h.Location,
		Description: h.Description,
		Attendees:   attendees,
	}
}
