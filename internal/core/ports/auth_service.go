package ports

import (
	"context"

	"github.com/promosynch/promosynch-api/internal/core/domain"
)

// RegisterInput is the password-path registration payload. Avatar is
// stored only after the input passes validation and the duplicate-email
// check; nil means the default placeholder.
type RegisterInput struct {
	Name     string
	Surname  string
	Email    string
	Password string
	Avatar   *MediaUpload
}

// AuthService covers credential issuance and verification for promoters.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Promoter, error)
	Login(ctx context.Context, email, password string) (string, *domain.Promoter, error)
	UpdateCredentials(ctx context.Context, id, currentPassword, newEmail, newPassword string) (*domain.Promoter, error)
	IssueToken(promoterID string) (string, error)
}

// TokenVerifier validates a bearer token and returns the promoter id claim.
// All failure modes (malformed, expired, bad signature) collapse into
// domain.ErrInvalidToken.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// FederatedProfile is the resolved third-party identity assertion the
// federation broker consumes.
type FederatedProfile struct {
	SubjectID  string
	GivenName  string
	FamilyName string
	Email      string
	Picture    string
}

// FederationService resolves a federated profile to a local promoter,
// creating one on first sight. The bool reports whether a new record
// was created by this call.
type FederationService interface {
	Resolve(ctx context.Context, profile FederatedProfile) (*domain.Promoter, bool, error)
}

// IdentityProvider abstracts the OAuth2 authorization-code flow against the
// third-party identity provider.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	FetchProfile(ctx context.Context, code string) (FederatedProfile, error)
}
