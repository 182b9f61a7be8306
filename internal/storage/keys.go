package storage

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Errores sentinela para que el handler mapee el status correcto.
var (
	ErrUnknownFeature   = errors.New("storage: superficie desconocida")
	ErrMissingQualifier = errors.New("storage: falta qualifier para la superficie")
	ErrContentType      = errors.New("storage: content-type no admitido")
	ErrTooLarge         = errors.New("storage: archivo supera el máximo permitido")
)

// Superficies de subida conocidas. Cada una define su layout de key.
const (
	FeatureHero         = "hero"
	FeatureTestimonials = "testimonials"
	FeatureNews         = "news"
	FeatureGallery      = "gallery"
	FeatureTeam         = "team"
	FeatureVolunteers   = "volunteers"
	FeatureDonationDocs = "donation-docs"
	FeatureProfile      = "profile"
)

const (
	maxImageBytes = 10 << 20  // 10 MB
	maxVideoBytes = 100 << 20 // 100 MB
)

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
	"image/avif": true,
}

var videoTypes = map[string]bool{
	"video/mp4":  true,
	"video/webm": true,
}

// docTypes solo para los comprobantes de donación.
var docTypes = map[string]bool{
	"application/pdf": true,
}

// ValidateUpload chequea tipo y tamaño según la superficie destino.
func ValidateUpload(feature, contentType string, sizeBytes int64) error {
	if sizeBytes <= 0 {
		return fmt.Errorf("%w: tamaño inválido", ErrTooLarge)
	}
	switch {
	case imageTypes[contentType]:
		if sizeBytes > maxImageBytes {
			return fmt.Errorf("%w: imagen > %d bytes", ErrTooLarge, int64(maxImageBytes))
		}
		return nil
	case videoTypes[contentType]:
		if feature != FeatureHero && feature != FeatureGallery {
			return fmt.Errorf("%w: video no admitido en %q", ErrContentType, feature)
		}
		if sizeBytes > maxVideoBytes {
			return fmt.Errorf("%w: video > %d bytes", ErrTooLarge, int64(maxVideoBytes))
		}
		return nil
	case docTypes[contentType]:
		if feature != FeatureDonationDocs {
			return fmt.Errorf("%w: documento no admitido en %q", ErrContentType, feature)
		}
		if sizeBytes > maxImageBytes {
			return fmt.Errorf("%w: documento > %d bytes", ErrTooLarge, int64(maxImageBytes))
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrContentType, contentType)
	}
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9._-]+`)
var dashRuns = regexp.MustCompile(`-{2,}`)

// SanitizeFilename normaliza un nombre subido por el cliente: minúsculas,
// solo [a-z0-9._-], sin rachas de guiones.
func SanitizeFilename(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	// quedarse con el último segmento por si mandan un path
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	name = unsafeChars.ReplaceAllString(name, "-")
	name = dashRuns.ReplaceAllString(name, "-")
	name = strings.ReplaceAll(name, "-.", ".")
	name = strings.Trim(name, "-.")
	if name == "" {
		name = "file"
	}
	return name
}

// ObjectKey arma el key definitivo para una subida: prefijo por superficie,
// fecha, uuid y nombre sanitizado. qualifier depende de la superficie
// (breakpoint del hero, scope del testimonio, slug de la noticia).
func ObjectKey(feature, qualifier, filename string, now time.Time) (string, error) {
	name := fmt.Sprintf("%s-%s-%s", now.Format("20060102"), uuid.NewString(), SanitizeFilename(filename))

	switch feature {
	case FeatureHero:
		if qualifier == "" {
			qualifier = "desktop"
		}
		return fmt.Sprintf("hero/%s/%s", SanitizeFilename(qualifier), name), nil
	case FeatureTestimonials:
		if qualifier == "" {
			return "", fmt.Errorf("%w: testimonial sin scope", ErrMissingQualifier)
		}
		return fmt.Sprintf("testimonials/%s/image/%s", SanitizeFilename(qualifier), name), nil
	case FeatureNews:
		if qualifier == "" {
			return "", fmt.Errorf("%w: noticia sin slug", ErrMissingQualifier)
		}
		return fmt.Sprintf("news/%s/%s", SanitizeFilename(qualifier), name), nil
	case FeatureGallery:
		sub := "photos"
		if qualifier == "video" || qualifier == "videos" {
			sub = "videos"
		}
		return fmt.Sprintf("gallery/%s/%s/%s", sub, now.Format("2006/01"), name), nil
	case FeatureTeam:
		return fmt.Sprintf("team/%s", name), nil
	case FeatureVolunteers:
		return fmt.Sprintf("volunteers/%s", name), nil
	case FeatureDonationDocs:
		return fmt.Sprintf("forms/donations/%s/%s", now.Format("2006/01"), name), nil
	case FeatureProfile:
		if qualifier == "" {
			return "", fmt.Errorf("%w: perfil sin user id", ErrMissingQualifier)
		}
		return fmt.Sprintf("profile/%s/%s", SanitizeFilename(qualifier), name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFeature, feature)
	}
}

// KeyPrefix devuelve el prefijo bajo el que listan las imágenes de una
// superficie (para MediaRepository.ListMediaByKeyPrefix).
func KeyPrefix(feature, qualifier string) string {
	switch feature {
	case FeatureHero:
		if qualifier != "" {
			return "hero/" + SanitizeFilename(qualifier) + "/"
		}
		return "hero/"
	case FeatureGallery:
		if qualifier == "video" || qualifier == "videos" {
			return "gallery/videos/"
		}
		return "gallery/photos/"
	case FeatureTestimonials:
		return "testimonials/"
	case FeatureNews:
		return "news/"
	case FeatureTeam:
		return "team/"
	case FeatureVolunteers:
		return "volunteers/"
	default:
		return feature + "/"
	}
}
