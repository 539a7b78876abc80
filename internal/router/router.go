package router

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "hcen-access/docs"
	mem "hcen-access/internal/adapters/storage/memory"
	pg "hcen-access/internal/adapters/storage/postgres"
	"hcen-access/internal/domain/accesspolicies"
	"hcen-access/internal/domain/documents"
	"hcen-access/internal/domain/identity"
	"hcen-access/internal/middleware"
	"hcen-access/internal/platform/logger"
	"hcen-access/internal/ports/auth"
	"hcen-access/internal/ports/dnic"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // nil = modo dev (headers X-Debug-*)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: lookup civil para el registro de pacientes.
	Persons dnic.PersonLookup

	// Vigencia por defecto de un permiso nuevo sin expires_at (0 = sin vencimiento).
	PolicyDefaultTTL time.Duration

	CORSOrigins []string
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Tenant-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	var (
		dirRepo      identity.DirectoryRepository
		docsRepo     documents.Repository
		policiesRepo accesspolicies.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		dirRepo = pg.NewDirectoryRepo(db)
		docsRepo = pg.NewDocumentsRepo(db)
		policiesRepo = pg.NewPoliciesRepo(db)
	} else {
		dirRepo = mem.NewDirectoryRepo()
		docsRepo = mem.NewDocumentsRepo()
		policiesRepo = mem.NewPoliciesRepo()
	}

	// Services por módulo
	var identityOpts []identity.Option
	if opts.Persons != nil {
		identityOpts = append(identityOpts, identity.WithPersonLookup(opts.Persons))
	}
	identitySvc := identity.NewService(dirRepo, identityOpts...)

	docsSvc := documents.NewService(docsRepo)

	var policyOpts []accesspolicies.Option
	if opts.PolicyDefaultTTL > 0 {
		policyOpts = append(policyOpts, accesspolicies.WithDefaultTTL(opts.PolicyDefaultTTL))
	}
	policiesSvc := accesspolicies.NewService(policiesRepo, docsSvc, policyOpts...)

	eval := accesspolicies.NewEvaluator(policiesRepo, docsSvc, logger.Get())

	// Rutas por módulo
	identity.RegisterRoutes(r, identitySvc)
	documents.RegisterRoutes(r, docsSvc, identitySvc, eval)
	accesspolicies.RegisterRoutes(r, policiesSvc, eval, identitySvc)

	return r
}
