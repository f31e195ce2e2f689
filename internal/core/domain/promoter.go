package domain

const (
	RolePromoter = "promoter"
	RoleClient   = "client"
)

// DefaultAvatarURL is served for promoters who register without a picture.
const DefaultAvatarURL = "https://media.promosynch.com/promosynch/default-avatar.jpg"

// Promoter is the sole authenticated identity: an event organizer.
// The PasswordHash and GoogleID fields are the two possible authentication
// methods; ValidateAuthMethod enforces that exactly one is set at creation.
type Promoter struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	GoogleID     string `json:"googleId,omitempty"`
	Avatar       string `json:"avatar,omitempty"`
	Role         string `json:"role"`
}

// ValidateAuthMethod checks the password-XOR-googleId invariant.
// A promoter created with both or neither methods is rejected.
func (p *Promoter) ValidateAuthMethod() error {
	hasPassword := p.PasswordHash != ""
	hasGoogle := p.GoogleID != ""
	if hasPassword == hasGoogle {
		return ErrInvalidAuthMethod
	}
	return nil
}

// Sanitized returns a copy safe for API responses: the password hash is
// already json-excluded, but federated flows also hide the role.
func (p *Promoter) Sanitized() *Promoter {
	clone := *p
	clone.PasswordHash = ""
	return &clone
}
