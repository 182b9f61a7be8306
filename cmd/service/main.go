package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/sakhu-org/sakhu-backend/internal/alerts"
	"github.com/sakhu-org/sakhu-backend/internal/bootstrap"
	"github.com/sakhu-org/sakhu-backend/internal/cache"
	"github.com/sakhu-org/sakhu-backend/internal/config"
	httpserver "github.com/sakhu-org/sakhu-backend/internal/http"
	authctl "github.com/sakhu-org/sakhu-backend/internal/http/controllers/auth"
	contentctl "github.com/sakhu-org/sakhu-backend/internal/http/controllers/content"
	formsctl "github.com/sakhu-org/sakhu-backend/internal/http/controllers/forms"
	opsctl "github.com/sakhu-org/sakhu-backend/internal/http/controllers/ops"
	uploadsctl "github.com/sakhu-org/sakhu-backend/internal/http/controllers/uploads"
	authsvc "github.com/sakhu-org/sakhu-backend/internal/http/services/auth"
	contentsvc "github.com/sakhu-org/sakhu-backend/internal/http/services/content"
	formssvc "github.com/sakhu-org/sakhu-backend/internal/http/services/forms"
	uploadssvc "github.com/sakhu-org/sakhu-backend/internal/http/services/uploads"
	jwtx "github.com/sakhu-org/sakhu-backend/internal/jwt"
	"github.com/sakhu-org/sakhu-backend/internal/keepalive"
	"github.com/sakhu-org/sakhu-backend/internal/observability/logger"
	"github.com/sakhu-org/sakhu-backend/internal/rate"
	"github.com/sakhu-org/sakhu-backend/internal/storage"
	"github.com/sakhu-org/sakhu-backend/internal/store/pg"
	migrations "github.com/sakhu-org/sakhu-backend/migrations/postgres"
)

func main() {
	_ = godotenv.Load()

	var configPath string
	flag.StringVar(&configPath, "config", defaultConfigPath(), "ruta del config.yaml")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       os.Getenv("LOG_LEVEL"),
		ServiceName: "sakhu-backend",
	})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Base de datos ──
	poolCfg := pg.PoolConfig{
		MaxOpenConns: cfg.Storage.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Storage.Postgres.MaxIdleConns,
	}
	if d := cfg.Storage.Postgres.ConnMaxLifetime; d != "" {
		poolCfg.ConnMaxLifetime = d
	}
	store, err := pg.New(ctx, cfg.Storage.DSN, poolCfg)
	if err != nil {
		log.Fatal("postgres", logger.Err(err))
	}
	defer store.Close()

	if cfg.Flags.Migrate {
		if err := applyMigrations(ctx, store.Pool()); err != nil {
			log.Fatal("migrations", logger.Err(err))
		}
	}

	// ── Cache y rate limiting ──
	cacheTTL, _ := time.ParseDuration(cfg.Cache.Memory.DefaultTTL)
	appCache := cache.New(cache.Config{
		Driver: cfg.Cache.Kind,
		Addr:   cfg.Cache.Redis.Addr,
		DB:     cfg.Cache.Redis.DB,
		TTL:    cacheTTL,
	})

	var loginLimiter, formsLimiter rate.Limiter
	if cfg.Rate.Enabled {
		loginWin, _ := time.ParseDuration(cfg.Rate.Login.Window)
		formsWin, _ := time.ParseDuration(cfg.Rate.PublicForms.Window)
		if rc, ok := appCache.(*cache.Redis); ok {
			loginLimiter = rate.NewRedisLimiter(rc.Client(), prefixed(cfg, "rl:login"), cfg.Rate.Login.Limit, loginWin)
			formsLimiter = rate.NewRedisLimiter(rc.Client(), prefixed(cfg, "rl:forms"), cfg.Rate.PublicForms.Limit, formsWin)
		} else {
			loginLimiter = rate.NewMemoryLimiter(cfg.Rate.Login.Limit, loginWin)
			formsLimiter = rate.NewMemoryLimiter(cfg.Rate.PublicForms.Limit, formsWin)
		}
	}

	// ── Object storage ──
	var objects *storage.Client
	if cfg.S3.Endpoint != "" {
		presign, _ := time.ParseDuration(cfg.S3.UploadExpires)
		objects, err = storage.NewClient(storage.Config{
			Endpoint:      cfg.S3.Endpoint,
			AccessKey:     cfg.S3.AccessKeyID,
			SecretKey:     cfg.S3.SecretAccessKey,
			Region:        cfg.S3.Region,
			Bucket:        cfg.S3.Bucket,
			UseSSL:        cfg.S3.UseSSL,
			PublicBaseURL: cfg.S3.PublicBaseURL,
			PresignExpiry: presign,
		})
		if err != nil {
			log.Fatal("object storage", logger.Err(err))
		}
		if err := objects.EnsureBucket(ctx); err != nil {
			log.Warn("bucket check failed", logger.Err(err))
		}
	} else {
		log.Warn("S3_ENDPOINT vacío; uploads y limpieza de media deshabilitados")
	}

	// ── Alertas ──
	var sender alerts.Sender
	if cfg.SMTP.Host != "" {
		smtp := alerts.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Username, cfg.SMTP.Password)
		smtp.TLSMode = cfg.SMTP.TLS
		smtp.InsecureSkipVerify = cfg.SMTP.InsecureSkipVerify
		sender = smtp
	}
	dispatcher := alerts.NewDispatcher(alerts.Config{
		SlackWebhookURL: cfg.Alerts.SlackWebhookURL,
		EmailTo:         strings.Join(cfg.Alerts.EmailTo, ","),
		EmailFrom:       cfg.Alerts.EmailFrom,
	}, sender)

	// ── JWT ──
	accessTTL, _ := time.ParseDuration(cfg.JWT.AccessTTL)
	issuer, err := jwtx.NewIssuer(cfg.JWT.Secret, accessTTL)
	if err != nil {
		log.Fatal("jwt", logger.Err(err))
	}

	// ── Keepalive ──
	ka := keepalive.NewService(keepalive.Config{
		Token:            cfg.Keepalive.AuthToken,
		IPAllowlist:      cfg.Keepalive.IPAllowlist,
		RateWindow:       time.Duration(cfg.Keepalive.RateLimitWindowSeconds) * time.Second,
		RateBypass:       cfg.Keepalive.RateLimitBypass,
		ExpectedInterval: time.Duration(cfg.Keepalive.ExpectedIntervalSeconds) * time.Second,
		Target:           keepalive.ParseTarget(cfg.Keepalive.Table),
	}, &keepalive.StoreProber{Store: store}, store, dispatcher)

	// ── Primer admin ──
	if err := bootstrap.EnsureAdmin(ctx, store, bootstrap.AdminConfig{
		Email:    os.Getenv("ADMIN_EMAIL"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}); err != nil {
		log.Fatal("bootstrap", logger.Err(err))
	}

	// ── Servicios y controllers ──
	publicURL := func(key string) string { return key }
	var remover contentsvc.Remover
	if objects != nil {
		publicURL = objects.PublicURL
		remover = objects
	}

	contentService := contentsvc.NewService(store, appCache, remover)
	formsService := formssvc.NewService(store, dispatcher)

	controllers := httpserver.Controllers{
		Auth: authctl.NewController(
			authsvc.NewLoginService(store, issuer),
			authsvc.NewProfileService(store),
			accessTTL,
			strings.ToLower(cfg.App.Env) == "prod",
		),
		Users:     authctl.NewUsersController(authsvc.NewUsersService(store)),
		Content:   contentctl.NewController(contentService),
		Media:     contentctl.NewMediaController(contentService, publicURL),
		Forms:     formsctl.NewController(formsService),
		Keepalive: opsctl.NewKeepaliveController(ka),
	}

	checks := map[string]opsctl.Pinger{"postgres": store.Ping}
	if objects != nil {
		checks["bucket"] = objects.Healthy
		controllers.Uploads = uploadsctl.NewController(uploadssvc.NewService(objects))
	} else {
		controllers.Uploads = uploadsctl.NewController(uploadssvc.NewService(nil))
	}
	controllers.Health = opsctl.NewHealthController(checks)

	metricsHandler, err := httpserver.RegisterMetrics(httpserver.MetricsConfig{
		Pool: store.Pool,
	})
	if err != nil {
		log.Fatal("metrics", logger.Err(err))
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Issuer:             issuer,
		CookieName:         cfg.JWT.CookieName,
		LoginLimiter:       loginLimiter,
		FormsLimiter:       formsLimiter,
		Metrics:            metricsHandler,
	}, controllers)

	if err := httpserver.Serve(ctx, cfg.Server.Addr, router); err != nil {
		log.Fatal("server", logger.Err(err))
	}
	log.Info("bye")
}

func defaultConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	if _, err := os.Stat("configs/config.yaml"); err == nil {
		return "configs/config.yaml"
	}
	return ""
}

func prefixed(cfg *config.Config, key string) string {
	if cfg.Cache.Redis.Prefix != "" {
		return cfg.Cache.Redis.Prefix + ":" + key
	}
	return key
}

// applyMigrations corre las migraciones embebidas en orden. Para control fino
// (down, steps) está cmd/migrate.
func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	entries, err := fs.Glob(migrations.FS, "*_up.sql")
	if err != nil {
		return err
	}
	sort.Strings(entries)
	for _, name := range entries {
		b, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, string(b)); err != nil {
			return fmt.Errorf("migración %s: %w", name, err)
		}
		logger.L().Info("migración aplicada", logger.String("file", name))
	}
	return nil
}
