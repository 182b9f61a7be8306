package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`

	Storage struct {
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns    int    `yaml:"max_open_conns"`
			MaxIdleConns    int    `yaml:"max_idle_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		Kind  string `yaml:"kind"` // memory | redis
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	JWT struct {
		Secret     string `yaml:"secret"`
		AccessTTL  string `yaml:"access_ttl"`
		CookieName string `yaml:"cookie_name"`
	} `yaml:"jwt"`

	Rate struct {
		Enabled bool `yaml:"enabled"`

		Login struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"login"`

		PublicForms struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"public_forms"`
	} `yaml:"rate"`

	SMTP struct {
		Host               string `yaml:"host"`
		Port               int    `yaml:"port"`
		Username           string `yaml:"username"`
		Password           string `yaml:"password"`
		From               string `yaml:"from"`
		TLS                string `yaml:"tls"`                  // auto | starttls | ssl | none
		InsecureSkipVerify bool   `yaml:"insecure_skip_verify"` // sólo dev
	} `yaml:"smtp"`

	Alerts struct {
		SlackWebhookURL string   `yaml:"slack_webhook_url"`
		EmailTo         []string `yaml:"email_to"`
		EmailFrom       string   `yaml:"email_from"`
	} `yaml:"alerts"`

	S3 struct {
		Endpoint        string `yaml:"endpoint"`
		Region          string `yaml:"region"`
		Bucket          string `yaml:"bucket"`
		AccessKeyID     string `yaml:"access_key_id"`
		SecretAccessKey string `yaml:"secret_access_key"`
		UseSSL          bool   `yaml:"use_ssl"`
		PublicBaseURL   string `yaml:"public_base_url"`
		UploadExpires   string `yaml:"upload_expires"`
	} `yaml:"s3"`

	Keepalive struct {
		AuthToken               string   `yaml:"auth_token"`
		IPAllowlist             []string `yaml:"ip_allowlist"`
		RateLimitWindowSeconds  int      `yaml:"rate_limit_window_seconds"`
		RateLimitBypass         bool     `yaml:"rate_limit_bypass"`
		ExpectedIntervalSeconds int      `yaml:"expected_interval_seconds"`
		Table                   string   `yaml:"table"`
	} `yaml:"keepalive"`

	Flags struct {
		Migrate bool `yaml:"migrate"`
	} `yaml:"flags"`
}

func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	// sane defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "2m"
	}
	if c.JWT.AccessTTL == "" {
		c.JWT.AccessTTL = "168h" // 7d, igual que el frontend espera
	}
	if c.JWT.CookieName == "" {
		c.JWT.CookieName = "auth_token"
	}
	if c.Rate.Login.Limit == 0 {
		c.Rate.Login.Limit = 10
	}
	if c.Rate.Login.Window == "" {
		c.Rate.Login.Window = "1m"
	}
	if c.Rate.PublicForms.Limit == 0 {
		c.Rate.PublicForms.Limit = 20
	}
	if c.Rate.PublicForms.Window == "" {
		c.Rate.PublicForms.Window = "1m"
	}
	if c.SMTP.TLS == "" {
		c.SMTP.TLS = "auto"
	}
	if c.S3.UploadExpires == "" {
		c.S3.UploadExpires = "15m"
	}
	if c.Keepalive.RateLimitWindowSeconds == 0 {
		c.Keepalive.RateLimitWindowSeconds = 60
	}
	if c.Keepalive.ExpectedIntervalSeconds == 0 {
		c.Keepalive.ExpectedIntervalSeconds = 300
	}
	if c.Keepalive.Table == "" {
		c.Keepalive.Table = "keepalive_meta"
	}

	c.applyEnvOverrides()

	// validate string durations
	for _, d := range []string{
		c.Storage.Postgres.ConnMaxLifetime,
		c.JWT.AccessTTL,
		c.Rate.Login.Window,
		c.Rate.PublicForms.Window,
		c.Cache.Memory.DefaultTTL,
		c.S3.UploadExpires,
	} {
		if d == "" {
			continue
		}
		if _, err := time.ParseDuration(d); err != nil {
			return nil, fmt.Errorf("config: invalid duration %q: %w", d, err)
		}
	}

	return &c, nil
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}
func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}
func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		if strings.TrimSpace(s) == "" {
			return []string{}, true
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvStr("DATABASE_URL"); ok && c.Storage.DSN == "" {
		c.Storage.DSN = v
	}

	// CACHE
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}

	// JWT
	if v, ok := getEnvStr("JWT_SECRET"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvStr("JWT_ACCESS_TTL"); ok {
		c.JWT.AccessTTL = v
	}

	// RATE
	if v, ok := getEnvBool("RATE_ENABLED"); ok {
		c.Rate.Enabled = v
	}

	// SMTP
	if v, ok := getEnvStr("SMTP_HOST"); ok {
		c.SMTP.Host = v
	}
	if v, ok := getEnvInt("SMTP_PORT"); ok {
		c.SMTP.Port = v
	}
	if v, ok := getEnvStr("SMTP_USERNAME"); ok {
		c.SMTP.Username = v
	}
	if v, ok := getEnvStr("SMTP_PASSWORD"); ok {
		c.SMTP.Password = v
	}
	if v, ok := getEnvStr("SMTP_FROM"); ok {
		c.SMTP.From = v
	}

	// ALERTS
	if v, ok := getEnvStr("ALERT_SLACK_WEBHOOK_URL"); ok {
		c.Alerts.SlackWebhookURL = v
	}
	if v, ok := getEnvCSV("ALERT_EMAIL_TO"); ok {
		c.Alerts.EmailTo = v
	}
	if v, ok := getEnvStr("ALERT_EMAIL_FROM"); ok {
		c.Alerts.EmailFrom = v
	}

	// S3
	if v, ok := getEnvStr("S3_ENDPOINT"); ok {
		c.S3.Endpoint = v
	}
	if v, ok := getEnvStr("S3_REGION"); ok {
		c.S3.Region = v
	}
	if v, ok := getEnvStr("S3_BUCKET"); ok {
		c.S3.Bucket = v
	}
	if v, ok := getEnvStr("S3_ACCESS_KEY_ID"); ok {
		c.S3.AccessKeyID = v
	}
	if v, ok := getEnvStr("S3_SECRET_ACCESS_KEY"); ok {
		c.S3.SecretAccessKey = v
	}
	if v, ok := getEnvBool("S3_USE_SSL"); ok {
		c.S3.UseSSL = v
	}
	if v, ok := getEnvStr("S3_PUBLIC_BASE_URL"); ok {
		c.S3.PublicBaseURL = v
	}
	if v, ok := getEnvStr("UPLOAD_EXPIRES_IN"); ok {
		c.S3.UploadExpires = v
	}

	// KEEPALIVE
	if v, ok := getEnvStr("KEEPALIVE_AUTH_TOKEN"); ok {
		c.Keepalive.AuthToken = v
	}
	// SCHEDULER_TOKEN es el fallback histórico del cron externo.
	if c.Keepalive.AuthToken == "" {
		if v, ok := getEnvStr("SCHEDULER_TOKEN"); ok {
			c.Keepalive.AuthToken = v
		}
	}
	if v, ok := getEnvCSV("SCHEDULER_IP_ALLOWLIST"); ok {
		c.Keepalive.IPAllowlist = v
	}
	if v, ok := getEnvInt("KEEPALIVE_RATE_LIMIT_WINDOW_SECONDS"); ok {
		c.Keepalive.RateLimitWindowSeconds = v
	}
	if v, ok := getEnvBool("KEEPALIVE_RATE_LIMIT_BYPASS"); ok {
		c.Keepalive.RateLimitBypass = v
	}
	if v, ok := getEnvInt("KEEPALIVE_EXPECTED_INTERVAL_SECONDS"); ok {
		c.Keepalive.ExpectedIntervalSeconds = v
	}
	if v, ok := getEnvStr("KEEPALIVE_TABLE"); ok {
		c.Keepalive.Table = strings.TrimSpace(v)
	}
}

// Validate chequea lo mínimo para poder levantar el servicio.
func (c *Config) Validate() error {
	if c.Storage.DSN == "" {
		return fmt.Errorf("config: storage.dsn (o DATABASE_URL) es requerido")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: jwt.secret (o JWT_SECRET) es requerido")
	}
	return nil
}
