// Package storage envuelve el object store S3-compatible. Los archivos nunca
// pasan por este backend: el cliente sube directo con una URL prefirmada.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Region        string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string // base para URLs de lectura pública; default deriva del endpoint
	PresignExpiry time.Duration
}

type Client struct {
	mc  *minio.Client
	cfg Config
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket requerido")
	}
	if cfg.PresignExpiry <= 0 {
		cfg.PresignExpiry = 15 * time.Minute
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &Client{mc: mc, cfg: cfg}, nil
}

// EnsureBucket crea el bucket si no existe. Se llama una vez al boot.
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.mc.BucketExists(ctx, c.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", c.cfg.Bucket, err)
	}
	if exists {
		return nil
	}
	region := c.cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	if err := c.mc.MakeBucket(ctx, c.cfg.Bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", c.cfg.Bucket, err)
	}
	return nil
}

// PresignPut genera una URL de subida directa para el key dado.
func (c *Client) PresignPut(ctx context.Context, key string) (string, error) {
	u, err := c.mc.PresignedPutObject(ctx, c.cfg.Bucket, key, c.cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("presign put %s: %w", key, err)
	}
	return u.String(), nil
}

// Remove borra un objeto. No falla si el objeto ya no existe.
func (c *Client) Remove(ctx context.Context, key string) error {
	return c.mc.RemoveObject(ctx, c.cfg.Bucket, key, minio.RemoveObjectOptions{})
}

// PublicURL arma la URL de lectura del objeto.
func (c *Client) PublicURL(key string) string {
	base := c.cfg.PublicBaseURL
	if base == "" {
		scheme := "http"
		if c.cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, c.cfg.Endpoint, c.cfg.Bucket)
	}
	segs := strings.Split(key, "/")
	for i := range segs {
		segs[i] = url.PathEscape(segs[i])
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segs, "/")
}

func (c *Client) Healthy(ctx context.Context) error {
	_, err := c.mc.BucketExists(ctx, c.cfg.Bucket)
	return err
}

func (c *Client) PresignExpiry() time.Duration { return c.cfg.PresignExpiry }
