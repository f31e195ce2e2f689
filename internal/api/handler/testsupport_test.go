package handler_test

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/promosynch/promosynch-api/internal/api"
	"github.com/promosynch/promosynch-api/internal/api/handler"
	"github.com/promosynch/promosynch-api/internal/api/middleware"
	"github.com/promosynch/promosynch-api/internal/core/domain"
	"github.com/promosynch/promosynch-api/internal/core/ports"
	"github.com/promosynch/promosynch-api/internal/core/service"
)

// ── In-memory repositories ───────────────────────────────────────────────────

type memPromoterRepo struct {
	promoters map[string]*domain.Promoter
	nextID    int
}

func newMemPromoterRepo() *memPromoterRepo {
	return &memPromoterRepo{promoters: make(map[string]*domain.Promoter)}
}

func (r *memPromoterRepo) clone(p *domain.Promoter) *domain.Promoter {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func (r *memPromoterRepo) Create(_ context.Context, p *domain.Promoter) (*domain.Promoter, error) {
	r.nextID++
	created := r.clone(p)
	created.ID = fmt.Sprintf("promoter-%d", r.nextID)
	r.promoters[created.ID] = r.clone(created)
	return created, nil
}

func (r *memPromoterRepo) FindByEmail(_ context.Context, email string) (*domain.Promoter, error) {
	for _, p := range r.promoters {
		if p.Email == email {
			return r.clone(p), nil
		}
	}
	return nil, domain.ErrPromoterNotFound
}

func (r *memPromoterRepo) FindByID(_ context.Context, id string) (*domain.Promoter, error) {
	p, ok := r.promoters[id]
	if !ok {
		return nil, domain.ErrPromoterNotFound
	}
	return r.clone(p), nil
}

func (r *memPromoterRepo) FindByGoogleID(_ context.Context, googleID string) (*domain.Promoter, error) {
	for _, p := range r.promoters {
		if p.GoogleID == googleID {
			return r.clone(p), nil
		}
	}
	return nil, domain.ErrPromoterNotFound
}

func (r *memPromoterRepo) UpdateByID(_ context.Context, id string, update ports.PromoterUpdate) (*domain.Promoter, error) {
	p, ok := r.promoters[id]
	if !ok {
		return nil, domain.ErrPromoterNotFound
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Surname != nil {
		p.Surname = *update.Surname
	}
	if update.Email != nil {
		p.Email = *update.Email
	}
	if update.PasswordHash != nil {
		p.PasswordHash = *update.PasswordHash
	}
	if update.Avatar != nil {
		p.Avatar = *update.Avatar
	}
	return r.clone(p), nil
}

func (r *memPromoterRepo) DeleteByID(_ context.Context, id string) (*domain.Promoter, error) {
	p, ok := r.promoters[id]
	if !ok {
		return nil, domain.ErrPromoterNotFound
	}
	delete(r.promoters, id)
	return p, nil
}

type memHappeningRepo struct {
	happenings map[string]*domain.Happening
	nextID     int
}

func newMemHappeningRepo() *memHappeningRepo {
	return &memHappeningRepo{happenings: make(map[string]*domain.Happening)}
}

func (r *memHappeningRepo) clone(h *domain.Happening) *domain.Happening {
	c := *h
	c.Attendees = append([]domain.Attendee{}, h.Attendees...)
	return &c
}

func (r *memHappeningRepo) Create(_ context.Context, h *domain.Happening) (*domain.Happening, error) {
	r.nextID++
	created := r.clone(h)
	created.ID = fmt.Sprintf("happening-%d", r.nextID)
	r.happenings[created.ID] = r.clone(created)
	return created, nil
}

func (r *memHappeningRepo) FindByID(_ context.Context, id string) (*domain.Happening, error) {
	h, ok := r.happenings[id]
	if !ok {
		return nil, domain.ErrHappeningNotFound
	}
	return r.clone(h), nil
}

func (r *memHappeningRepo) FindAll(_ context.Context) ([]domain.Happening, error) {
	out := []domain.Happening{}
	for _, h := range r.happenings {
		out = append(out, *r.clone(h))
	}
	return out, nil
}

func (r *memHappeningRepo) FindByPromoter(_ context.Context, promoterID string) ([]domain.Happening, error) {
	out := []domain.Happening{}
	for _, h := range r.happenings {
		if h.PromoterID == promoterID {
			out = append(out, *r.clone(h))
		}
	}
	return out, nil
}

func (r *memHappeningRepo) UpdateByID(_ context.Context, id string, update ports.HappeningUpdate) (*domain.Happening, error) {
	h, ok := r.happenings[id]
	if !ok {
		return nil, domain.ErrHappeningNotFound
	}
	if update.Title != nil {
		h.Title = *update.Title
	}
	if update.Start != nil {
		h.Start = *update.Start
	}
	if update.End != nil {
		h.End = *update.End
	}
	if update.TicketPrice != nil {
		h.TicketPrice = *update.TicketPrice
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
	return r.clone(h), nil
}

func (r *memHappeningRepo) DeleteByID(_ context.Context, id string) (*domain.Happening, error) {
	h, ok := r.happenings[id]
	if !ok {
		return nil, domain.ErrHappeningNotFound
	}
	delete(r.happenings, id)
	return h, nil
}

func (r *memHappeningRepo) AddAttendee(_ context.Context, happeningID string, attendee domain.Attendee) (*domain.Happening, error) {
	h, ok := r.happenings[happeningID]
	if !ok {
		return nil, domain.ErrHappeningNotFound
	}
	if h.FindAttendee(attendee.Name, attendee.Surname, attendee.Email, attendee.DateOfBirth) != nil {
		return nil, domain.ErrAlreadyRegistered
	}
	h.Attendees = append(h.Attendees, attendee)
	return r.clone(h), nil
}

func (r *memHappeningRepo) FlattenAttendees(_ context.Context, promoterID string) ([]domain.Attendee, error) {
	out := []domain.Attendee{}
	for _, h := range r.happenings {
		if h.PromoterID == promoterID {
			out = append(out, h.Attendees...)
		}
	}
	return out, nil
}

// ── Collaborator stubs ───────────────────────────────────────────────────────

type memMediaStore struct {
	uploads int
}

func (m *memMediaStore) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	m.uploads++
	return "https://media.test/" + key, nil
}

type memMailer struct {
	sent int
}

func (m *memMailer) SendRegistrationConfirmation(context.Context, string, string, string) error {
	m.sent++
	return nil
}

type memDedup struct{ seen map[string]bool }

func newMemDedup() *memDedup { return &memDedup{seen: make(map[string]bool)} }

func (d *memDedup) IsDuplicate(_ context.Context, happeningID, email, name, surname, dateOfBirth string) (bool, error) {
	return d.seen[happeningID+"|"+email+"|"+name+"|"+surname+"|"+dateOfBirth], nil
}

func (d *memDedup) Mark(_ context.Context, happeningID, email, name, surname, dateOfBirth string) error {
	d.seen[happeningID+"|"+email+"|"+name+"|"+surname+"|"+dateOfBirth] = true
	return nil
}

type stubIdentityProvider struct {
	profile ports.FederatedProfile
	fail    error
}

func (p *stubIdentityProvider) AuthCodeURL(state string) string {
	return "https://accounts.test/consent?state=" + state
}

func (p *stubIdentityProvider) FetchProfile(context.Context, string) (ports.FederatedProfile, error) {
	if p.fail != nil {
		return ports.FederatedProfile{}, p.fail
	}
	return p.profile, nil
}

// ── Test server ──────────────────────────────────────────────────────────────

const (
	testSecret      = "test-secret"
	testFrontendURL = "https://promosynch.test/app"
)

type testServer struct {
	echo          *echo.Echo
	promoterRepo  *memPromoterRepo
	happeningRepo *memHappeningRepo
	media         *memMediaStore
	mailer        *memMailer
	provider      *stubIdentityProvider
	authService   *service.AuthService
}

// newTestServer wires the real services and handlers over in-memory
// repositories, mirroring the production router wiring.
func newTestServer() *testServer {
	ts := &testServer{
		promoterRepo:  newMemPromoterRepo(),
		happeningRepo: newMemHappeningRepo(),
		media:         &memMediaStore{},
		mailer:        &memMailer{},
		provider:      &stubIdentityProvider{},
	}

	log := zerolog.Nop()
	ts.authService = service.NewAuthService(ts.promoterRepo, ts.media, testSecret, time.Hour)
	federation := service.NewFederationService(ts.promoterRepo, log)
	promoterService := service.NewPromoterService(ts.promoterRepo, log)
	happeningService := service.NewHappeningService(ts.happeningRepo, newMemDedup(), ts.mailer, log)

	authHandler := handler.NewAuthHandler(ts.authService, federation, ts.provider, testFrontendURL, log)
	promoterHandler := handler.NewPromoterHandler(promoterService, ts.media)
	happeningHandler := handler.NewHappeningHandler(happeningService, ts.media)

	gate := middleware.Auth(ts.authService, ts.promoterRepo)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(log)

	promoters := e.Group("/promoters")
	promoters.POST("/session", authHandler.Login)
	promoters.POST("/register", authHandler.Register)
	promoters.GET("/oauth-google", authHandler.OAuthInitiate)
	promoters.GET("/oauth-callback", authHandler.OAuthCallback)
	promoters.PATCH("/:id/credentials", authHandler.UpdateCredentials, gate)
	promoters.GET("/:id", promoterHandler.GetByID, gate)
	promoters.PUT("/:id/update", promoterHandler.UpdateProfile, gate)
	promoters.PATCH("/:id/profpic", promoterHandler.UpdateAvatar, gate)
	promoters.DELETE("/:id", promoterHandler.Delete, gate)

	events := e.Group("/events")
	events.POST("/create", happeningHandler.Create, gate)
	events.GET("", happeningHandler.ListAll, gate)
	events.GET("/promoter/:promoter", happeningHandler.ListByPromoter, gate)
	events.GET("/clients/:promoterId", happeningHandler.ListAttendees, gate)
	events.GET("/:id", happeningHandler.GetByID)
	events.PUT("/:id", happeningHandler.RegisterAttendee)
	events.PUT("/:id/update", happeningHandler.Update, gate)
	events.PATCH("/:id/ucover", happeningHandler.UpdateCover, gate)
	events.DELETE("/:id", happeningHandler.Delete, gate)

	ts.echo = e
	return ts
}
