package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/promosynch/promosynch-api/internal/core/domain"
	"github.com/promosynch/promosynch-api/internal/core/ports"
)

const (
	defaultTokenTTL = 3 * time.Hour
	bcryptCost      = 10
	avatarFolder    = "promosynch"
)

// AuthService implements registration, login, credential rotation, and the
// token issuer/verifier. HS256 tokens carry a single "id" claim and expire
// after tokenTTL; there is no refresh and no revocation.
type AuthService struct {
	repo      ports.PromoterRepository
	media     ports.MediaStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.PromoterRepository, media ports.MediaStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{repo: repo, media: media, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a password-authenticated promoter. The email is
// lower-cased before the uniqueness check and storage. The avatar is
// uploaded only after both checks pass, so a rejected registration
// leaves nothing behind in the media store.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Promoter, error) {
	if in.Name == "" || in.Surname == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}

	email := strings.ToLower(in.Email)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailInUse
	} else if err != domain.ErrPromoterNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	avatar := domain.DefaultAvatarURL
	if in.Avatar != nil {
		avatar, err = s.storeAvatar(ctx, in.Avatar)
		if err != nil {
			return nil, err
		}
	}

	promoter := &domain.Promoter{
		Name:         in.Name,
		Surname:      in.Surname,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       avatar,
		Role:         domain.RolePromoter,
	}
	if err := promoter.ValidateAuthMethod(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, promoter)
}

func (s *AuthService) storeAvatar(ctx context.Context, upload *ports.MediaUpload) (string, error) {
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := avatarFolder + "/" + uuid.NewString() + path.Ext(upload.Filename)
	url, err := s.media.Upload(ctx, key, upload.Reader, upload.Size, contentType)
	if err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}
	return url, nil
}

// Login verifies the password and issues a token. The email is looked up
// exactly as given; only registration normalizes case.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Promoter, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	promoter, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	// CompareHashAndPassword is constant-time; its result must gate the
	// branch before any token is minted.
	if bcrypt.CompareHashAndPassword([]byte(promoter.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.IssueToken(promoter.ID)
	if err != nil {
		return "", nil, err
	}
	return token, promoter, nil
}

// UpdateCredentials rotates email and/or password after re-verifying the
// current password.
func (s *AuthService) UpdateCredentials(ctx context.Context, id, currentPassword, newEmail, newPassword string) (*domain.Promoter, error) {
	promoter, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(promoter.PasswordHash), []byte(currentPassword)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	update := ports.PromoterUpdate{}
	if newPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		update.PasswordHash = &hashed
	}
	if newEmail != "" {
		email := strings.ToLower(newEmail)
		update.Email = &email
	}
	if update.PasswordHash == nil && update.Email == nil {
		return nil, domain.ErrNoUpdateFields
	}

	return s.repo.UpdateByID(ctx, id, update)
}

// IssueToken signs {id: promoterID} with the process secret.
func (s *AuthService) IssueToken(promoterID string) (string, error) {
	claims := jwt.MapClaims{
		"id":  promoterID,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// VerifyToken parses and validates a token, returning the promoter id
// claim. Every failure mode maps to domain.ErrInvalidToken so that callers
// cannot distinguish expired from forged tokens.
func (s *AuthService) VerifyToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}

	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", domain.ErrInvalidToken
	}
	return id, nil
}
