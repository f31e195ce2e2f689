package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/promosynch/promosynch-api/internal/core/domain"
	"github.com/promosynch/promosynch-api/internal/core/ports"
)

// FederationService resolves a third-party identity assertion to a local
// promoter record, lazily creating one on first sight. Resolution is keyed
// strictly on the federated subject id: a password-based account sharing
// the same email stays a separate record.
type FederationService struct {
	repo ports.PromoterRepository
	log  zerolog.Logger
}

func NewFederationService(repo ports.PromoterRepository, log zerolog.Logger) *FederationService {
	return &FederationService{repo: repo, log: log}
}

// Resolve returns the promoter owning the federated subject id, creating a
// new record from the profile when none exists. Idempotent per subject id;
// the bool reports whether this call created the record.
func (s *FederationService) Resolve(ctx context.Context, profile ports.FederatedProfile) (*domain.Promoter, bool, error) {
	if profile.SubjectID == "" {
		return nil, false, domain.ErrInvalidCredentials
	}

	promoter, err := s.repo.FindByGoogleID(ctx, profile.SubjectID)
	if err == nil {
		return promoter, false, nil
	}
	if err != domain.ErrPromoterNotFound {
		return nil, false, err
	}

	avatar := profile.Picture
	if avatar == "" {
		avatar = domain.DefaultAvatarURL
	}

	promoter = &domain.Promoter{
		Name:     profile.GivenName,
		Surname:  profile.FamilyName,
		Email:    profile.Email,
		GoogleID: profile.SubjectID,
		Avatar:   avatar,
		Role:     domain.RolePromoter,
	}
	if err := promoter.ValidateAuthMethod(); err != nil {
		return nil, false, err
	}

	created, err := s.repo.Create(ctx, promoter)
	if err != nil {
		return nil, false, err
	}

	s.log.Info().
		Str("promoter_id", created.ID).
		Str("email", created.Email).
		Msg("promoter created from federated identity")

	return created, true, nil
}
