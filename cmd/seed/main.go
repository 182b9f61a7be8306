// Seed de contenido demo para entornos de desarrollo: un admin, noticias,
// testimonios y equipo de ejemplo. Idempotente a nivel de email/slug.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/sakhu-org/sakhu-backend/internal/config"
	"github.com/sakhu-org/sakhu-backend/internal/observability/logger"
	"github.com/sakhu-org/sakhu-backend/internal/security/password"
	"github.com/sakhu-org/sakhu-backend/internal/store/core"
	"github.com/sakhu-org/sakhu-backend/internal/store/pg"
)

func main() {
	_ = godotenv.Load()

	var configPath string
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "ruta del config.yaml")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Storage.DSN == "" {
		fmt.Fprintln(os.Stderr, "seed: falta storage.dsn / DATABASE_URL")
		os.Exit(1)
	}

	logger.Init(logger.Config{Env: cfg.App.Env, ServiceName: "sakhu-seed"})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := pg.New(ctx, cfg.Storage.DSN, pg.PoolConfig{})
	if err != nil {
		log.Fatal("postgres", logger.Err(err))
	}
	defer store.Close()

	if err := seedAdmin(ctx, store); err != nil {
		log.Fatal("seed admin", logger.Err(err))
	}
	if err := seedContent(ctx, store); err != nil {
		log.Fatal("seed contenido", logger.Err(err))
	}
	log.Info("seed completo")
}

func seedAdmin(ctx context.Context, store *pg.Store) error {
	email := strings.ToLower(strings.TrimSpace(envOr("ADMIN_EMAIL", "admin@sakhu.local")))

	hash, err := password.Hash(envOr("ADMIN_PASSWORD", "changeme-ya"))
	if err != nil {
		return err
	}
	u := &core.User{Email: email, PasswordHash: hash, Role: core.RoleAdmin}
	if err := store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, core.ErrConflict) {
			logger.L().Info("admin ya existe", logger.Email(email))
			return nil
		}
		return err
	}
	logger.L().Info("admin creado", logger.Email(email))
	return nil
}

func seedContent(ctx context.Context, store *pg.Store) error {
	summary := "Jornada de alfabetización en tres escuelas rurales."
	published := time.Now().AddDate(0, 0, -7)
	news := []*core.News{
		{
			Title:       "Arrancó el programa de alfabetización",
			Slug:        "arranco-el-programa-de-alfabetizacion",
			Summary:     &summary,
			Content:     "Este mes comenzamos a trabajar con tres escuelas rurales...",
			IsPublished: true,
			PublishedAt: &published,
		},
		{
			Title:   "Campaña de útiles 2026",
			Slug:    "campana-de-utiles-2026",
			Content: "Borrador de la campaña de útiles escolares.",
		},
	}
	for _, n := range news {
		if err := store.CreateNews(ctx, n); err != nil {
			if errors.Is(err, core.ErrConflict) {
				continue
			}
			return err
		}
	}

	role := "Madre de alumna"
	testimonials := []*core.Testimonial{
		{Name: "Lucía P.", Role: &role, Quote: "Mi hija volvió a entusiasmarse con la escuela.", Rating: 5, IsActive: true},
		{Name: "Ramiro G.", Quote: "El merendero cambió la tarde del barrio.", Rating: 5, Order: 1, IsActive: true},
	}
	for _, t := range testimonials {
		if err := store.CreateTestimonial(ctx, t); err != nil {
			return err
		}
	}

	designation := "Coordinadora general"
	team := []*core.TeamMember{
		{Name: "María Fernández", Designation: &designation},
		{Name: "Jorge Díaz"},
	}
	for _, m := range team {
		if err := store.CreateTeamMember(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
