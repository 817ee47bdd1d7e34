package router

import (
	"net/http"
	"strings"

	_ "dog-care-api/docs"
	"dog-care-api/internal/adapters/files/local"
	mem "dog-care-api/internal/adapters/storage/memory"
	pg "dog-care-api/internal/adapters/storage/postgres"
	"dog-care-api/internal/domain/activity"
	"dog-care-api/internal/domain/care"
	"dog-care-api/internal/domain/dogs"
	"dog-care-api/internal/domain/equipment"
	"dog-care-api/internal/domain/health"
	"dog-care-api/internal/domain/identity"
	"dog-care-api/internal/domain/ownership"
	"dog-care-api/internal/domain/reminders"
	"dog-care-api/internal/domain/tags"
	"dog-care-api/internal/domain/training"
	"dog-care-api/internal/domain/walks"
	"dog-care-api/internal/middleware"
	"dog-care-api/internal/platform/config"
	"dog-care-api/internal/platform/httpx"
	"dog-care-api/internal/platform/logger"
	"dog-care-api/internal/ports/auth"
	"dog-care-api/internal/ports/files"
	"dog-care-api/internal/ports/tx"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config
	Logger logger.Logger

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sqlx.DB

	Verifier      auth.AuthVerifier  // nil => modo dev (X-Debug-User-ID)
	Authenticator auth.Authenticator // nil => login/refresh deshabilitados
	Files         files.Storage      // nil => disco local según cfg.Media
}

// repos agrupa una implementación completa de persistencia.
type repos struct {
	tx        tx.Manager
	chain     ownership.Chain
	dogs      dogs.Repository
	health    health.Repository
	care      care.Repository
	training  training.Repository
	walks     walks.Repository
	equipment equipment.Repository
	tags      tags.Repository
}

func memoryRepos() repos {
	s := mem.NewStore()
	return repos{
		tx:        s,
		chain:     mem.NewChain(s),
		dogs:      mem.NewDogRepo(s),
		health:    mem.NewHealthRepo(s),
		care:      mem.NewCareRepo(s),
		training:  mem.NewTrainingRepo(s),
		walks:     mem.NewWalkRepo(s),
		equipment: mem.NewEquipmentRepo(s),
		tags:      mem.NewTagRepo(s),
	}
}

func postgresRepos(db *sqlx.DB) repos {
	return repos{
		tx:        pg.NewTxManager(db),
		chain:     pg.NewChain(db),
		dogs:      pg.NewDogRepo(db),
		health:    pg.NewHealthRepo(db),
		care:      pg.NewCareRepo(db),
		training:  pg.NewTrainingRepo(db),
		walks:     pg.NewWalkRepo(db),
		equipment: pg.NewEquipmentRepo(db),
		tags:      pg.NewTagRepo(db),
	}
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(log))

	r.Use(middleware.AuthContext(opts.Verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if cfg.Media.Dir != "" && cfg.Media.BaseURL != "" && strings.HasPrefix(cfg.Media.BaseURL, "/") {
		prefix := strings.TrimSuffix(cfg.Media.BaseURL, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Media.Dir))))
	}

	var rp repos
	if opts.DB != nil {
		rp = postgresRepos(opts.DB)
	} else {
		rp = memoryRepos()
	}

	owner := ownership.NewResolver(rp.chain)

	fs := opts.Files
	if fs == nil {
		fs = local.New(cfg.Media.Dir, cfg.Media.BaseURL)
	}

	// Services por módulo
	tagsSvc := tags.NewService(rp.tags, rp.tx, owner)
	dogsSvc := dogs.NewService(rp.dogs, rp.tx, owner, fs)
	healthSvc := health.NewService(rp.health, rp.tx, owner, fs)
	careSvc := care.NewService(rp.care, rp.tx, owner)
	trainingSvc := training.NewService(rp.training, rp.tx, owner, tagsSvc)
	walksSvc := walks.NewService(rp.walks, rp.tx, owner, tagsSvc, fs)
	equipmentSvc := equipment.NewService(rp.equipment, rp.tx, owner)
	activitySvc := activity.NewService(activity.Sources{
		Dogs:     rp.dogs,
		Walks:    rp.walks,
		Training: rp.training,
		Health:   rp.health,
		Care:     rp.care,
	}, rp.tx, cfg.Activity.DefaultLimit, cfg.Activity.MaxLimit)
	remindersSvc := reminders.NewService(reminders.Sources{
		Dogs:   rp.dogs,
		Care:   rp.care,
		Health: rp.health,
	}, rp.tx, cfg.Reminders.DefaultHorizonDays)

	env := httpx.Env{
		Log:            log,
		DefaultLimit:   cfg.Pagination.DefaultLimit,
		MaxLimit:       cfg.Pagination.MaxLimit,
		MaxUploadBytes: cfg.Media.MaxUploadBytes,
	}

	// Rutas por módulo
	r.Route("/api/v1", func(api chi.Router) {
		identity.RegisterRoutes(api, opts.Authenticator, env)
		dogs.RegisterRoutes(api, dogsSvc, env)
		health.RegisterRoutes(api, healthSvc, env)
		care.RegisterRoutes(api, careSvc, env)
		training.RegisterRoutes(api, trainingSvc, env)
		walks.RegisterRoutes(api, walksSvc, env)
		equipment.RegisterRoutes(api, equipmentSvc, env)
		tags.RegisterRoutes(api, tagsSvc, env)
		activity.RegisterRoutes(api, activitySvc, env)
		reminders.RegisterRoutes(api, remindersSvc, env)
	})

	return r
}
