package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"Foto Final (1).JPG":    "foto-final-1.jpg",
		"../../etc/passwd":      "passwd",
		"imagen__héroe  .png":   "imagen__h-roe.png",
		"":                      "file",
		"---":                   "file",
		"normal-file_v2.webp":   "normal-file_v2.webp",
		`C:\Users\x\foto.jpeg`:  "foto.jpeg",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeFilename(in), "in=%q", in)
	}
}

func TestObjectKey_Layouts(t *testing.T) {
	now := time.Date(2025, 7, 9, 10, 0, 0, 0, time.UTC)

	key, err := ObjectKey(FeatureHero, "Mobile", "banner.jpg", now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "hero/mobile/20250709-"), key)
	assert.True(t, strings.HasSuffix(key, "-banner.jpg"), key)

	key, err = ObjectKey(FeatureTestimonials, "home", "avatar.png", now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "testimonials/home/image/"), key)

	key, err = ObjectKey(FeatureNews, "annual-report-2025", "cover.webp", now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "news/annual-report-2025/"), key)

	key, err = ObjectKey(FeatureGallery, "", "photo.jpg", now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "gallery/photos/2025/07/"), key)

	key, err = ObjectKey(FeatureGallery, "video", "clip.mp4", now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "gallery/videos/2025/07/"), key)

	key, err = ObjectKey(FeatureDonationDocs, "", "pan.pdf", now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "forms/donations/2025/07/"), key)
}

func TestObjectKey_RequiredQualifiers(t *testing.T) {
	now := time.Now()
	_, err := ObjectKey(FeatureTestimonials, "", "a.png", now)
	assert.Error(t, err)
	_, err = ObjectKey(FeatureNews, "", "a.png", now)
	assert.Error(t, err)
	_, err = ObjectKey("desconocida", "", "a.png", now)
	assert.Error(t, err)
}

func TestObjectKey_UniquePerCall(t *testing.T) {
	now := time.Now()
	k1, err := ObjectKey(FeatureGallery, "", "same.jpg", now)
	require.NoError(t, err)
	k2, err := ObjectKey(FeatureGallery, "", "same.jpg", now)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}

func TestValidateUpload(t *testing.T) {
	// Imagen dentro del límite.
	assert.NoError(t, ValidateUpload(FeatureGallery, "image/jpeg", 5<<20))
	// Imagen pasada del límite.
	assert.Error(t, ValidateUpload(FeatureGallery, "image/jpeg", 11<<20))
	// Video solo en hero/gallery.
	assert.NoError(t, ValidateUpload(FeatureHero, "video/mp4", 50<<20))
	assert.Error(t, ValidateUpload(FeatureTeam, "video/mp4", 50<<20))
	assert.Error(t, ValidateUpload(FeatureHero, "video/mp4", 101<<20))
	// PDF solo para comprobantes de donación.
	assert.NoError(t, ValidateUpload(FeatureDonationDocs, "application/pdf", 1<<20))
	assert.Error(t, ValidateUpload(FeatureGallery, "application/pdf", 1<<20))
	// Tipos raros, afuera.
	assert.Error(t, ValidateUpload(FeatureGallery, "application/x-msdownload", 100))
	assert.Error(t, ValidateUpload(FeatureGallery, "image/jpeg", 0))
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "hero/", KeyPrefix(FeatureHero, ""))
	assert.Equal(t, "hero/mobile/", KeyPrefix(FeatureHero, "Mobile"))
	assert.Equal(t, "gallery/photos/", KeyPrefix(FeatureGallery, ""))
	assert.Equal(t, "team/", KeyPrefix(FeatureTeam, ""))
}
