package ports

import (
	"context"
	"io"
)

// MediaStore stores uploaded media and returns a public URL for it.
type MediaStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// MediaUpload is an uploaded file handed to a service for deferred storage,
// so the service can validate the request before anything is written.
type MediaUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}

// Mailer sends transactional email. A failure surfaces to the caller;
// there are no retries.
type Mailer interface {
	SendRegistrationConfirmation(ctx context.Context, toEmail, toName, happeningTitle string) error
}
