package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/promosynch/promosynch-api/internal/core/domain"
	"github.com/promosynch/promosynch-api/internal/core/ports"
)

// PromoterService implements promoter profile management.
type PromoterService struct {
	repo ports.PromoterRepository
	log  zerolog.Logger
}

func NewPromoterService(repo ports.PromoterRepository, log zerolog.Logger) *PromoterService {
	return &PromoterService{repo: repo, log: log}
}

func (s *PromoterService) GetByID(ctx context.Context, id string) (*domain.Promoter, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile changes name and/or surname. At least one field must be set.
func (s *PromoterService) UpdateProfile(ctx context.Context, id string, in ports.ProfileUpdateInput) (*domain.Promoter, error) {
	update := ports.PromoterUpdate{}
	if in.Name != "" {
		update.Name = &in.Name
	}
	if in.Surname != "" {
		update.Surname = &in.Surname
	}
	if update.Name == nil && update.Surname == nil {
		return nil, domain.ErrNoUpdateFields
	}
	return s.repo.UpdateByID(ctx, id, update)
}

// UpdateAvatar stores the new avatar URL and returns it.
func (s *PromoterService) UpdateAvatar(ctx context.Context, id, avatarURL string) (string, error) {
	updated, err := s.repo.UpdateByID(ctx, id, ports.PromoterUpdate{Avatar: &avatarURL})
	if err != nil {
		return "", err
	}
	return updated.Avatar, nil
}

// Delete removes the promoter. Happenings owned by the promoter are left
// in place; orphaned references are accepted.
func (s *PromoterService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	s.log.Info().
		Str("promoter_id", deleted.ID).
		Str("name", deleted.Name).
		Str("surname", deleted.Surname).
		Msg("promoter deleted")
	return nil
}
