package ports

import (
	"context"

	"github.com/promosynch/promosynch-api/internal/core/domain"
)

// PromoterUpdate carries the mutable promoter fields for UpdateByID.
// Nil pointers mean "leave unchanged".
type PromoterUpdate struct {
	Name         *string
	Surname      *string
	Email        *string
	PasswordHash *string
	Avatar       *string
}

// PromoterRepository defines promoter persistence. Lookups return
// domain.ErrPromoterNotFound for missing records; any other error is a
// storage failure.
type PromoterRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Promoter, error)
	FindByID(ctx context.Context, id string) (*domain.Promoter, error)
	FindByGoogleID(ctx context.Context, googleID string) (*domain.Promoter, error)
	Create(ctx context.Context, promoter *domain.Promoter) (*domain.Promoter, error)
	UpdateByID(ctx context.Context, id string, update PromoterUpdate) (*domain.Promoter, error)
	DeleteByID(ctx context.Context, id string) (*domain.Promoter, error)
}
