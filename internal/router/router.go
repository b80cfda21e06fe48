package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "shelter-catalog/docs"
	"shelter-catalog/internal/adapters/fiche"
	"shelter-catalog/internal/adapters/sheets/google"
	mem "shelter-catalog/internal/adapters/storage/memory"
	pg "shelter-catalog/internal/adapters/storage/postgres"
	"shelter-catalog/internal/domain/catalog"
	"shelter-catalog/internal/domain/sessions"
	"shelter-catalog/internal/middleware"
	"shelter-catalog/internal/platform/config"
	"shelter-catalog/internal/platform/logger"
	"shelter-catalog/internal/ports/sheets"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	Config config.Config
	Logger logger.Logger // puede ser nil

	// Opcional: si viene, usa Postgres para sesiones. Si no, intenta Config.DBDSN
	// y si tampoco, in-memory.
	DB *sql.DB

	// Opcionales (tests): por defecto el cliente de Google Sheets.
	Fetcher sheets.Fetcher
	Photos  catalog.PhotoFetcher
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	cfg := opts.Config

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Sesiones: Postgres si hay DB, si no in-memory
	var sessionRepo sessions.Repository
	db := opts.DB
	if db == nil && cfg.DBDSN != "" {
		opened, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Warn("postgres unavailable, using in-memory sessions", map[string]any{"err": err})
		} else {
			db = opened
		}
	}
	if db != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := pg.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			log.Warn("postgres schema check failed", map[string]any{"err": err})
		}
		sessionRepo = pg.NewSessionsRepo(db)
	} else {
		sessionRepo = mem.NewSessionRepo()
	}

	// Fuente del catálogo
	var (
		fetcher = opts.Fetcher
		photos  = opts.Photos
	)
	if fetcher == nil || photos == nil {
		client := google.NewClient(google.Config{Timeout: cfg.FetchTimeout.Duration})
		if fetcher == nil {
			fetcher = client
		}
		if photos == nil {
			photos = client
		}
	}

	// Services por módulo
	sessionsSvc := sessions.NewService(sessionRepo, cfg.SessionTTL.Duration)
	catalogSvc := catalog.NewService(fetcher, catalog.Options{TTL: cfg.CacheTTL.Duration, Logger: log})

	// Rutas de catálogo; la sesión de visitante solo se usa en /announcements
	catalog.RegisterRoutes(r, catalogSvc, catalog.RouteOptions{
		ShareURL:         cfg.SheetURL,
		AnnouncementKey:  cfg.AnnouncementKey,
		NewestFirst:      cfg.AnnouncementOrder != config.OrderSheet,
		PlaceholderImage: cfg.PlaceholderImage,
		Phone:            cfg.Shelter.Phone,
		Email:            cfg.Shelter.Email,
		Fiches: fiche.NewRenderer(fiche.Options{
			ShelterName: cfg.Shelter.Name,
			Phone:       cfg.Shelter.Phone,
			Email:       cfg.Shelter.Email,
			Footer:      cfg.Shelter.Footer,
		}),
		Photos:  photos,
		Logger:  log,
		Session: sessionsSvc,
	})

	return r
}
