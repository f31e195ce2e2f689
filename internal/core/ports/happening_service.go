package ports

import (
	"context"
	"time"

	"github.com/promosynch/promosynch-api/internal/core/domain"
)

// CreateHappeningInput is the payload for creating a happening. Cover is
// the already-uploaded public URL, or empty for the default placeholder.
type CreateHappeningInput struct {
	Title       string
	Start       time.Time
	End         time.Time
	Cover       string
	PromoterID  string
	TicketPrice string
	Location    string
	Description string
}

// AttendeeInput is a public registration for a happening.
type AttendeeInput struct {
	Name        string
	Surname     string
	Email       string
	DateOfBirth string
}

// HappeningService covers happening management and attendee registration.
type HappeningService interface {
	Create(ctx context.Context, in CreateHappeningInput) (*domain.Happening, error)
	GetByID(ctx context.Context, id string) (*domain.Happening, error)
	ListAll(ctx context.Context) ([]domain.Happening, error)
	ListByPromoter(ctx context.Context, promoterID string) ([]domain.Happening, error)
	Update(ctx context.Context, id string, update HappeningUpdate) (*domain.Happening, error)
	UpdateCover(ctx context.Context, id, coverURL string) (string, error)
	Delete(ctx context.Context, id string) error
	RegisterAttendee(ctx context.Context, happeningID string, in AttendeeInput) (*domain.Happening, error)
	ListAttendees(ctx context.Context, promoterID string) ([]domain.Attendee, error)
}
