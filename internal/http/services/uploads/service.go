// Package uploads firma URLs de subida directa al object store. El archivo
// nunca pasa por el backend: acá solo se valida, se arma el key y se firma.
package uploads

import (
	"context"
	"errors"
	"time"

	dto "github.com/sakhu-org/sakhu-backend/internal/http/dto/uploads"
	"github.com/sakhu-org/sakhu-backend/internal/storage"
)

var (
	ErrMissingFilename = errors.New("uploads: missing filename")
	ErrNotConfigured   = errors.New("uploads: object storage not configured")
)

// Signer es la superficie que necesitamos del cliente de storage.
type Signer interface {
	PresignPut(ctx context.Context, key string) (string, error)
	PublicURL(key string) string
	PresignExpiry() time.Duration
}

type Service struct {
	signer Signer
}

func NewService(signer Signer) *Service {
	return &Service{signer: signer}
}

// Sign valida el upload, genera el key definitivo y devuelve la URL prefirmada
// junto con la URL pública final. Qualifier depende de la sección (breakpoint
// del hero, slug de la noticia, id de usuario, "video" para galería).
func (s *Service) Sign(ctx context.Context, req dto.SignRequest) (*dto.SignResponse, error) {
	if s.signer == nil {
		return nil, ErrNotConfigured
	}
	if req.Filename == "" {
		return nil, ErrMissingFilename
	}
	if err := storage.ValidateUpload(req.Feature, req.ContentType, req.SizeBytes); err != nil {
		return nil, err
	}
	key, err := storage.ObjectKey(req.Feature, req.Qualifier, req.Filename, time.Now())
	if err != nil {
		return nil, err
	}
	uploadURL, err := s.signer.PresignPut(ctx, key)
	if err != nil {
		return nil, err
	}
	return &dto.SignResponse{
		Key:       key,
		UploadURL: uploadURL,
		PublicURL: s.signer.PublicURL(key),
		ExpiresIn: int(s.signer.PresignExpiry() / time.Second),
	}, nil
}
