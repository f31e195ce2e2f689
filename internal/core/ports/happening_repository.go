package ports

import (
	"context"
	"time"

	"github.com/promosynch/promosynch-api/internal/core/domain"
)

// HappeningUpdate carries the mutable happening fields for UpdateByID.
// Nil pointers mean "leave unchanged".
type HappeningUpdate struct {
	Title       *string
	Start       *time.Time
	End         *time.Time
	TicketPrice *string
	Location    *string
	Description *string
	Cover       *string
}

// HappeningRepository defines happening persistence. Lookups return
// domain.ErrHappeningNotFound for missing records.
type HappeningRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Happening, error)
	FindAll(ctx context.Context) ([]domain.Happening, error)
	FindByPromoter(ctx context.Context, promoterID string) ([]domain.Happening, error)
	Create(ctx context.Context, happening *domain.Happening) (*domain.Happening, error)
	UpdateByID(ctx context.Context, id string, update HappeningUpdate) (*domain.Happening, error)
	DeleteByID(ctx context.Context, id string) (*domain.Happening, error)

	// AddAttendee pushes an attendee onto the happening's client list,
	// guarding against an identical attendee already being present.
	// Returns domain.ErrAlreadyRegistered when the guard rejects the push.
	AddAttendee(ctx context.Context, happeningID string, attendee domain.Attendee) (*domain.Happening, error)

	// FlattenAttendees returns every attendee across all happenings owned
	// by the given promoter, as a single flat list.
	FlattenAttendees(ctx context.Context, promoterID string) ([]domain.Attendee, error)
}
