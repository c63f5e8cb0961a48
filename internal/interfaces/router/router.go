package router

import (
	"context"
	"net/http"
	"time"

	authsvc "portfolio-backend/internal/application/auth"
	certsvc "portfolio-backend/internal/application/certificates"
	contactsvc "portfolio-backend/internal/application/contact"
	emailsvc "portfolio-backend/internal/application/emails"
	healthsvc "portfolio-backend/internal/application/health"
	journeysvc "portfolio-backend/internal/application/journeys"
	pagesvc "portfolio-backend/internal/application/pages"
	profilesvc "portfolio-backend/internal/application/profile"
	projectsvc "portfolio-backend/internal/application/projects"
	codesvc "portfolio-backend/internal/application/reviewcodes"
	reviewsvc "portfolio-backend/internal/application/reviews"
	skillsvc "portfolio-backend/internal/application/skills"
	statssvc "portfolio-backend/internal/application/stats"
	uploadsvc "portfolio-backend/internal/application/uploads"
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/infrastructure/database"
	authhandler "portfolio-backend/internal/interfaces/handlers/auth"
	certhandler "portfolio-backend/internal/interfaces/handlers/certificates"
	contacthandler "portfolio-backend/internal/interfaces/handlers/contact"
	healthhandler "portfolio-backend/internal/interfaces/handlers/health"
	journeyhandler "portfolio-backend/internal/interfaces/handlers/journeys"
	pagehandler "portfolio-backend/internal/interfaces/handlers/pages"
	profilehandler "portfolio-backend/internal/interfaces/handlers/profile"
	projecthandler "portfolio-backend/internal/interfaces/handlers/projects"
	codehandler "portfolio-backend/internal/interfaces/handlers/reviewcodes"
	reviewhandler "portfolio-backend/internal/interfaces/handlers/reviews"
	skillhandler "portfolio-backend/internal/interfaces/handlers/skills"
	statshandler "portfolio-backend/internal/interfaces/handlers/stats"
	uploadhandler "portfolio-backend/internal/interfaces/handlers/uploads"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/pkg/cache"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Deps are the backends the app is built on. Tests pass in-memory ones.
type Deps struct {
	Config        *config.Config
	DB            *gorm.DB
	Rdb           *redis.Client
	Storage       uploadsvc.Storage
	Mailer        emailsvc.Sender
	Authenticator authsvc.Authenticator
	// HealthProbes maps a dependency name to a URL checked by /health/json.
	HealthProbes map[string]string
	// Clock for the page cache; nil means time.Now.
	Clock func() time.Time
}

const adminPlaceholder = `<!doctype html><html><head><title>Admin</title></head><body><div id="root"></div></body></html>`

// NewApp wires middleware, services and routes.
func NewApp(d Deps) *fiber.App {
	cfg := d.Config
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
		BodyLimit:               20 * 1024 * 1024,
	})

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.IsProduction(),
	}

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.HealthMarker(d.Rdb))
	app.Use(middleware.Session(sessionCfg, d.Rdb))

	// Health
	collector := &healthsvc.Collector{Rdb: d.Rdb, Probes: d.HealthProbes}
	if d.DB != nil {
		if sqlDB, err := d.DB.DB(); err == nil {
			collector.DB = sqlDB
		}
	}
	hh := &healthhandler.Handlers{Collector: collector, HealthAdminKey: cfg.HealthAdminKey}
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)
	app.Get("/reset", hh.Reset)

	// Services
	uploads := &uploadsvc.Service{Client: d.Storage, SupabaseURL: cfg.SupabaseURL, Bucket: cfg.StorageBucket}
	profiles := &profilesvc.Service{DB: d.DB}
	projects := &projectsvc.Service{DB: d.DB}
	certificates := &certsvc.Service{DB: d.DB}
	reviews := &reviewsvc.Service{DB: d.DB, DefaultAvatar: cfg.DefaultAvatarURL}
	skills := &skillsvc.Service{DB: d.DB}
	journeys := &journeysvc.Service{DB: d.DB}
	codes := &codesvc.Service{
		DB:            d.DB,
		DefaultAvatar: cfg.DefaultAvatarURL,
		Mailer:        d.Mailer,
		MailFrom:      cfg.MailFrom,
		SiteName:      cfg.SiteName,
	}

	var store cache.Store = &cache.RedisStore{Rdb: d.Rdb}
	if cfg.CacheStore == "memory" {
		store = cache.NewMemoryStore()
	}
	pages := &pagesvc.Service{
		Cache:    &cache.Cache{Store: store, Now: d.Clock},
		TTL:      cfg.CacheTTL,
		Profile:  profiles,
		Journeys: journeys,
		Skills:   skills,
		Reviews:  reviews,
	}

	api := app.Group("/api")
	auth := middleware.RequireAuth()

	ah := &authhandler.Handlers{Authenticator: d.Authenticator, Rdb: d.Rdb, Config: sessionCfg}
	api.Post("/auth/login", ah.Login)
	api.Get("/auth/me", ah.Me)
	api.Delete("/auth/logout", ah.Logout)

	ph := &pagehandler.Handlers{Service: pages}
	api.Get("/pages/home", ph.Home)
	api.Get("/pages/sidebar", ph.Sidebar)
	api.Get("/pages/about", ph.About)
	api.Get("/pages/contact", ph.Contact)
	api.Get("/pages/reviews", ph.Reviews)

	ch := &contacthandler.Handlers{Service: &contactsvc.Service{Mailer: d.Mailer, MailFrom: cfg.MailFrom, SiteName: cfg.SiteName}}
	api.Post("/contact", ch.Submit)

	profh := &profilehandler.Handlers{Service: profiles, Uploads: uploads}
	api.Get("/profile", profh.Get)
	api.Post("/profile", auth, profh.Upsert)

	projh := &projecthandler.Handlers{Service: projects, Uploads: uploads}
	api.Get("/projects", projh.List)
	api.Get("/projects/:id", projh.Get)
	api.Post("/projects", auth, projh.Create)
	api.Put("/projects/:id", auth, projh.Update)
	api.Delete("/projects/:id", auth, projh.Delete)

	certh := &certhandler.Handlers{Service: certificates, Uploads: uploads}
	api.Get("/certificates", certh.List)
	api.Get("/certificates/:id", certh.Get)
	api.Post("/certificates", auth, certh.Create)
	api.Put("/certificates/:id", auth, certh.Update)
	api.Delete("/certificates/:id", auth, certh.Delete)

	codeh := &codehandler.Handlers{Service: codes, Uploads: uploads}
	api.Post("/reviews/submit", codeh.Submit)
	api.Get("/review-codes/check/:code", codeh.Check)
	api.Get("/review-codes", auth, codeh.List)
	api.Post("/review-codes", auth, codeh.Generate)
	api.Delete("/review-codes/:id", auth, codeh.Delete)

	revh := &reviewhandler.Handlers{Service: reviews, Uploads: uploads}
	api.Get("/reviews", revh.List)
	api.Get("/reviews/:id", revh.Get)
	api.Post("/reviews", auth, revh.Create)
	api.Put("/reviews/:id", auth, revh.Update)
	api.Delete("/reviews/:id", auth, revh.Delete)

	skh := &skillhandler.Handlers{Service: skills}
	api.Get("/skills", skh.List)
	api.Get("/skills/:id", skh.Get)
	api.Post("/skills", auth, skh.Create)
	api.Put("/skills/:id", auth, skh.Update)
	api.Delete("/skills/:id", auth, skh.Delete)

	jh := &journeyhandler.Handlers{Service: journeys}
	api.Get("/journeys", jh.List)
	api.Get("/journeys/:id", jh.Get)
	api.Post("/journeys", auth, jh.Create)
	api.Put("/journeys/:id", auth, jh.Update)
	api.Delete("/journeys/:id", auth, jh.Delete)

	sh := &statshandler.Handlers{Service: &statssvc.Service{DB: d.DB}}
	api.Get("/stats", auth, sh.Get)

	uph := &uploadhandler.Handlers{Service: uploads}
	api.Post("/uploads/sign", auth, uph.Sign)

	// Admin pages
	admin := app.Group(middleware.AdminPath, middleware.SessionGate())
	if cfg.AdminDir != "" {
		admin.Static("/", cfg.AdminDir, fiber.Static{Index: "index.html"})
	} else {
		placeholder := func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
			return c.SendString(adminPlaceholder)
		}
		admin.Get("/", placeholder)
		admin.Get("/*", placeholder)
	}

	return app
}

// CreateApp opens the database and Redis, builds the upstream clients from
// cfg, and returns the wired app.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}
	rdb := redis.NewClient(opts)

	httpClient := &http.Client{Timeout: 30 * time.Second}

	var mailer emailsvc.Sender
	switch cfg.MailProvider {
	case "brevo":
		mailer = &emailsvc.BrevoClient{APIKey: cfg.BrevoAPIKey, Client: httpClient}
	default:
		mailer = &emailsvc.SMTPClient{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		}
	}

	var authenticator authsvc.Authenticator = &authsvc.GormAuthenticator{DB: db}
	if cfg.SupabaseAnonKey != "" {
		authenticator = &authsvc.SupabaseAuthenticator{BaseURL: cfg.SupabaseURL, AnonKey: cfg.SupabaseAnonKey, Client: httpClient}
		log.Info().Msg("auth: using Supabase password login")
	}

	app := NewApp(Deps{
		Config:        cfg,
		DB:            db,
		Rdb:           rdb,
		Storage:       &uploadsvc.HTTPClient{BaseURL: cfg.SupabaseURL, SecretKey: cfg.SupabaseSecretKey, Client: httpClient},
		Mailer:        mailer,
		Authenticator: authenticator,
		HealthProbes:  map[string]string{"storage": cfg.SupabaseURL + "/storage/v1/version"},
	})
	return app, db, rdb, nil
}

// Ping checks both backends, for startup.
func Ping(ctx context.Context, db *gorm.DB, rdb *redis.Client) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}
	return rdb.Ping(ctx).Err()
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
