package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/promosynch/promosynch-api/internal/core/domain"
	"github.com/promosynch/promosynch-api/internal/core/ports"
)

type stubHappeningRepo struct {
	happenings map[string]*domain.Happening
	nextID     int
}

func newStubHappeningRepo() *stubHappeningRepo {
	return &stubHappeningRepo{happenings: make(map[string]*domain.Happening)}
}

func cloneHappening(h *domain.Happening) *domain.Happening {
	clone := *h
	clone.Attendees = append([]domain.Attendee{}, h.Attendees...)
	return &clone
}

func (r *stubHappeningRepo) Create(_ context.Context, happening *domain.Happening) (*domain.Happening, error) {
	r.nextID++
	created := cloneHappening(happening)
	created.ID = fmt.Sprintf("hap-%d", r.nextID)
	r.happenings[created.ID] = cloneHappening(created)
	return cloneHappening(created), nil
}

func (r *stubHappeningRepo) FindByID(_ context.Context, id string) (*domain.Happening, error) {
	h, ok := r.happenings[id]
	if !ok {
		return nil, domain.ErrHappeningNotFound
	}
	return cloneHappening(h), nil
}

func (r *stubHappeningRepo) FindAll(_ context.Context) ([]domain.Happening, error) {
	out := []domain.Happening{}
	for _, h := range r.happenings {
		out = append(out, *cloneHappening(h))
	}
	return out, nil
}

func (r *stubHappeningRepo) FindByPromoter(_ context.Context, promoterID string) ([]domain.Happening, error) {
	out := []domain.Happening{}
	for _, h := range r.happenings {
		if h.PromoterID == promoterID {
			out = append(out, *cloneHappening(h))
		}
	}
	return out, nil
}

func (r *stubHappeningRepo) UpdateByID(_ context.Context, id string, update ports.HappeningUpdate) (*domain.Happening, error) {
	h, ok := r.happenings[id]
	if !ok {
		return nil, domain.ErrHappeningNotFound
	}
	if update.Title != nil {
		h.Title = *update.Title
	}
	if update.Location != nil {
		h.Location = *update.Location
	}
	if update.Description != nil {
		h.Description = *update.Description
	}
	if update.Cover != nil {
		h.Cover = *update.Cover
	}
	return cloneHappening(h), nil
}

func (r *stubHappeningRepo) DeleteByID(_ context.Context, id string) (*domain.Happening, error) {
	h, ok := r.happenings[id]
	if !ok {
		return nil, domain.ErrHappeningNotFound
	}
	delete(r.happenings, id)
	return h, nil
}

func (r *stubHappeningRepo) AddAttendee(_ context.Context, happeningID string, attendee domain.Attendee) (*domain.Happening, error) {
	h, ok := r.happenings[happeningID]
	if !ok {
		return nil, domain.ErrHappeningNotFound
	}
	if h.FindAttendee(attendee.Name, attendee.Surname, attendee.Email, attendee.DateOfBirth) != nil {
		return nil, domain.ErrAlreadyRegistered
	}
	h.Attendees = append(h.Attendees, attendee)
	return cloneHappening(h), nil
}

func (r *stubHappeningRepo) FlattenAttendees(_ context.Context, promoterID string) ([]domain.Attendee, error) {
	out := []domain.Attendee{}
	for _, h := range r.happenings {
		if h.PromoterID == promoterID {
			out = append(out, h.Attendees...)
		}
	}
	return out, nil
}

type stubDedup struct {
	seen     map[string]bool
	failWith error
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) dedupKey(happeningID, email, name, surname, dateOfBirth string) string {
	return happeningID + "|" + email + "|" + name + "|" + surname + "|" + dateOfBirth
}

func (d *stubDedup) IsDuplicate(_ context.Context, happeningID, email, name, surname, dateOfBirth string) (bool, error) {
	if d.failWith != nil {
		return false, d.failWith
	}
	return d.seen[d.dedupKey(happeningID, email, name, surname, dateOfBirth)], nil
}

func (d *stubDedup) Mark(_ context.Context, happeningID, email, name, surname, dateOfBirth string) error {
	if d.failWith != nil {
		return d.failWith
	}
	d.seen[d.dedupKey(happeningID, email, name, surname, dateOfBirth)] = true
	return nil
}

type stubMailer struct {
	sent     int
	failWith error
}

func (m *stubMailer) SendRegistrationConfirmation(_ context.Context, _, _, _ string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.sent++
	return nil
}

func newHappeningFixture(t *testing.T, svc *HappeningService) *domain.Happening {
	t.Helper()
	created, err := svc.Create(context.Background(), ports.CreateHappeningInput{
		Title:       "Warehouse Rave",
		Start:       time.Date(2026, 10, 1, 22, 0, 0, 0, time.UTC),
		End:         time.Date(2026, 10, 2, 6, 0, 0, 0, time.UTC),
		PromoterID:  "promoter-1",
		Location:    "Milano",
		Description: "All night",
	})
	if err != nil {
		t.Fatalf("create happening: %v", err)
	}
	return created
}

func attendeeInput() ports.AttendeeInput {
	return ports.AttendeeInput{Name: "Ada", Surname: "Lovelace", Email: "ada@x.com"}
}

func TestHappeningService_Create_DefaultCover(t *testing.T) {
	svc := NewHappeningService(newStubHappeningRepo(), newStubDedup(), &stubMailer{}, zerolog.Nop())

	created := newHappeningFixture(t, svc)
	if created.Cover != domain.DefaultCoverURL {
		t.Fatalf("expected default cover, got %q", created.Cover)
	}
	if len(created.Attendees) != 0 {
		t.Fatalf("new happening must start with no attendees")
	}
}

func TestHappeningService_Update_NoFields(t *testing.T) {
	svc := NewHappeningService(newStubHappeningRepo(), newStubDedup(), &stubMailer{}, zerolog.Nop())
	created := newHappeningFixture(t, svc)

	if _, err := svc.Update(context.Background(), created.ID, ports.HappeningUpdate{}); err != domain.ErrNoUpdateFields {
		t.Fatalf("expected ErrNoUpdateFields, got %v", err)
	}
}

func TestHappeningService_RegisterAttendee_Success(t *testing.T) {
	repo := newStubHappeningRepo()
	mailer := &stubMailer{}
	svc := NewHappeningService(repo, newStubDedup(), mailer, zerolog.Nop())
	created := newHappeningFixture(t, svc)

	updated, err := svc.RegisterAttendee(context.Background(), created.ID, attendeeInput())
	if err != nil {
		t.Fatalf("register attendee failed: %v", err)
	}
	if len(updated.Attendees) != 1 {
		t.Fatalf("expected 1 attendee, got %d", len(updated.Attendees))
	}
	a := updated.Attendees[0]
	if a.Role != domain.RoleClient || a.CheckedIn {
		t.Fatalf("unexpected attendee defaults: %+v", a)
	}
	if mailer.sent != 1 {
		t.Fatalf("expected 1 confirmation email, got %d", mailer.sent)
	}
}

func TestHappeningService_RegisterAttendee_Duplicate(t *testing.T) {
	repo := newStubHappeningRepo()
	svc := NewHappeningService(repo, newStubDedup(), &stubMailer{}, zerolog.Nop())
	created := newHappeningFixture(t, svc)

	if _, err := svc.RegisterAttendee(context.Background(), created.ID, attendeeInput()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := svc.RegisterAttendee(context.Background(), created.ID, attendeeInput()); err != domain.ErrAlreadyRegistered {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), created.ID)
	if len(stored.Attendees) != 1 {
		t.Fatalf("attendee count must stay 1, got %d", len(stored.Attendees))
	}
}

func TestHappeningService_RegisterAttendee_DistinctDateOfBirth(t *testing.T) {
	repo := newStubHappeningRepo()
	svc := NewHappeningService(repo, newStubDedup(), &stubMailer{}, zerolog.Nop())
	created := newHappeningFixture(t, svc)

	first := attendeeInput()
	first.DateOfBirth = "1990-01-01"
	if _, err := svc.RegisterAttendee(context.Background(), created.ID, first); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	// Same name, surname and email but a different birth date is a
	// different person; the dedup mark must not reject them.
	second := attendeeInput()
	second.DateOfBirth = "2001-06-15"
	updated, err := svc.RegisterAttendee(context.Background(), created.ID, second)
	if err != nil {
		t.Fatalf("distinct attendee rejected: %v", err)
	}
	if len(updated.Attendees) != 2 {
		t.Fatalf("expected 2 attendees, got %d", len(updated.Attendees))
	}
}

func TestHappeningService_RegisterAttendee_DedupOutageFallsBack(t *testing.T) {
	repo := newStubHappeningRepo()
	dedup := newStubDedup()
	svc := NewHappeningService(repo, dedup, &stubMailer{}, zerolog.Nop())
	created := newHappeningFixture(t, svc)

	if _, err := svc.RegisterAttendee(context.Background(), created.ID, attendeeInput()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	// Dedup store down: the document-level check still rejects the repeat.
	dedup.failWith = errors.New("connection refused")
	if _, err := svc.RegisterAttendee(context.Background(), created.ID, attendeeInput()); err != domain.ErrAlreadyRegistered {
		t.Fatalf("expected ErrAlreadyRegistered via document check, got %v", err)
	}
}

func TestHappeningService_RegisterAttendee_MailFailure(t *testing.T) {
	repo := newStubHappeningRepo()
	mailer := &stubMailer{failWith: errors.New("provider unavailable")}
	svc := NewHappeningService(repo, newStubDedup(), mailer, zerolog.Nop())
	created := newHappeningFixture(t, svc)

	if _, err := svc.RegisterAttendee(context.Background(), created.ID, attendeeInput()); err == nil {
		t.Fatalf("expected error when confirmation email fails")
	}
}

func TestHappeningService_RegisterAttendee_UnknownHappening(t *testing.T) {
	svc := NewHappeningService(newStubHappeningRepo(), newStubDedup(), &stubMailer{}, zerolog.Nop())

	if _, err := svc.RegisterAttendee(context.Background(), "missing", attendeeInput()); err != domain.ErrHappeningNotFound {
		t.Fatalf("expected ErrHappeningNotFound, got %v", err)
	}
}

func TestHappeningService_ListAttendees(t *testing.T) {
	repo := newStubHappeningRepo()
	svc := NewHappeningService(repo, newStubDedup(), &stubMailer{}, zerolog.Nop())

	first := newHappeningFixture(t, svc)
	second := newHappeningFixture(t, svc)

	if _, err := svc.RegisterAttendee(context.Background(), first.ID, attendeeInput()); err != nil {
		t.Fatalf("register attendee: %v", err)
	}
	other := ports.AttendeeInput{Name: "Grace", Surname: "Hopper", Email: "grace@x.com"}
	if _, err := svc.RegisterAttendee(context.Background(), second.ID, other); err != nil {
		t.Fatalf("register attendee: %v", err)
	}

	attendees, err := svc.ListAttendees(context.Background(), "promoter-1")
	if err != nil {
		t.Fatalf("list attendees: %v", err)
	}
	if len(attendees) != 2 {
		t.Fatalf("expected 2 attendees across happenings, got %d", len(attendees))
	}

	attendees, err = svc.ListAttendees(context.Background(), "")
	if err != nil || len(attendees) != 0 {
		t.Fatalf("empty promoter id must yield empty list, got %v / %v", attendees, err)
	}
}
