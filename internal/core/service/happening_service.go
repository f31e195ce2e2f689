package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/promosynch/promosynch-api/internal/core/domain"
	"github.com/promosynch/promosynch-api/internal/core/ports"
)

// DedupChecker abstracts the fast-path registration idempotency store
// (Redis). It sits in front of the document-level attendee check; when it
// errors the registration proceeds on the document check alone.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, happeningID, email, name, surname, dateOfBirth string) (bool, error)
	Mark(ctx context.Context, happeningID, email, name, surname, dateOfBirth string) error
}

// HappeningService implements happening management and public attendee
// registration.
type HappeningService struct {
	repo   ports.HappeningRepository
	dedup  DedupChecker
	mailer ports.Mailer
	log    zerolog.Logger
}

func NewHappeningService(repo ports.HappeningRepository, dedup DedupChecker, mailer ports.Mailer, log zerolog.Logger) *HappeningService {
	return &HappeningService{repo: repo, dedup: dedup, mailer: mailer, log: log}
}

func (s *HappeningService) Create(ctx context.Context, in ports.CreateHappeningInput) (*domain.Happening, error) {
	cover := in.Cover
	if cover == "" {
		cover = domain.DefaultCoverURL
	}

	happening := &domain.Happening{
		Title:       in.Title,
		Start:       in.Start,
		End:         in.End,
		Cover:       cover,
		PromoterID:  in.PromoterID,
		TicketPrice: in.TicketPrice,
		Location:    in.Location,
		Description: in.Description,
		Attendees:   []domain.Attendee{},
	}

	created, err := s.repo.Create(ctx, happening)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("happening_id", created.ID).
		Str("promoter_id", created.PromoterID).
		Str("title", created.Title).
		Msg("happening created")

	return created, nil
}

func (s *HappeningService) GetByID(ctx context.Context, id string) (*domain.Happening, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *HappeningService) ListAll(ctx context.Context) ([]domain.Happening, error) {
	return s.repo.FindAll(ctx)
}

func (s *HappeningService) ListByPromoter(ctx context.Context, promoterID string) ([]domain.Happening, error) {
	if promoterID == "" {
		return []domain.Happening{}, nil
	}
	return s.repo.FindByPromoter(ctx, promoterID)
}

// Update applies a partial update. At least one field must be set.
func (s *HappeningService) Update(ctx context.Context, id string, update ports.HappeningUpdate) (*domain.Happening, error) {
	if update.Title == nil && update.Start == nil && update.End == nil &&
		update.TicketPrice == nil && update.Location == nil && update.Description == nil {
		return nil, domain.ErrNoUpdateFields
	}
	return s.repo.UpdateByID(ctx, id, update)
}

// UpdateCover stores the new cover URL and returns it.
func (s *HappeningService) UpdateCover(ctx context.Context, id, coverURL string) (string, error) {
	updated, err := s.repo.UpdateByID(ctx, id, ports.HappeningUpdate{Cover: &coverURL})
	if err != nil {
		return "", err
	}
	return updated.Cover, nil
}

func (s *HappeningService) Delete(ctx context.Context, id string) error {
	_, err := s.repo.DeleteByID(ctx, id)
	return err
}

// RegisterAttendee registers a client for a happening and sends the
// confirmation email. Duplicate registrations (same name, surname, email
// and date of birth) are rejected; the Redis fast path short-circuits the
// common repeat, the document-level check catches the rest.
func (s *HappeningService) RegisterAttendee(ctx context.Context, happeningID string, in ports.AttendeeInput) (*domain.Happening, error) {
	isDup, err := s.dedup.IsDuplicate(ctx, happeningID, in.Email, in.Name, in.Surname, in.DateOfBirth)
	if err != nil {
		s.log.Warn().Err(err).Str("happening_id", happeningID).Msg("dedup check failed, falling back to document check")
	} else if isDup {
		return nil, domain.ErrAlreadyRegistered
	}

	happening, err := s.repo.FindByID(ctx, happeningID)
	if err != nil {
		return nil, err
	}
	if happening.FindAttendee(in.Name, in.Surname, in.Email, in.DateOfBirth) != nil {
		return nil, domain.ErrAlreadyRegistered
	}

	attendee := domain.Attendee{
		ID:          uuid.NewString(),
		HappeningID: happeningID,
		Name:        in.Name,
		Surname:     in.Surname,
		Email:       in.Email,
		DateOfBirth: in.DateOfBirth,
		CheckedIn:   false,
		Role:        domain.RoleClient,
	}

	updated, err := s.repo.AddAttendee(ctx, happeningID, attendee)
	if err != nil {
		return nil, err
	}

	if markErr := s.dedup.Mark(ctx, happeningID, in.Email, in.Name, in.Surname, in.DateOfBirth); markErr != nil {
		s.log.Warn().Err(markErr).Str("happening_id", happeningID).Msg("failed to set dedup key")
	}

	if err := s.mailer.SendRegistrationConfirmation(ctx, in.Email, in.Name, happening.Title); err != nil {
		return nil, fmt.Errorf("send confirmation email: %w", err)
	}

	s.log.Info().
		Str("happening_id", happeningID).
		Str("attendee_email", in.Email).
		Msg("attendee registered")

	return updated, nil
}

// ListAttendees flattens the attendee lists of every happening owned by
// the promoter into one list.
func (s *HappeningService) ListAttendees(ctx context.Context, promoterID string) ([]domain.Attendee, error) {
	if promoterID == "" {
		return []domain.Attendee{}, nil
	}
	return s.repo.FlattenAttendees(ctx, promoterID)
}
