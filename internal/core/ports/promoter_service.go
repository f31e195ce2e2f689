package ports

import (
	"context"

	"github.com/promosynch/promosynch-api/internal/core/domain"
)

// ProfileUpdateInput carries the profile fields a promoter may change
// outside the credential-rotation flow.
type ProfileUpdateInput struct {
	Name    string
	Surname string
}

// PromoterService covers promoter profile management.
type PromoterService interface {
	GetByID(ctx context.Context, id string) (*domain.Promoter, error)
	UpdateProfile(ctx context.Context, id string, in ProfileUpdateInput) (*domain.Promoter, error)
	UpdateAvatar(ctx context.Context, id, avatarURL string) (string, error)
	Delete(ctx context.Context, id string) error
}
