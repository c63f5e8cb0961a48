package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env      string
	Port     string
	LogLevel string

	DatabaseURL string
	RedisURL    string

	SessionSecret     string
	AllowCrossSiteDev bool

	SupabaseURL       string // e.g. https://<project>.supabase.co, used for auth, storage uploads and public URLs
	SupabaseAnonKey   string // enables Supabase Auth password login when set
	SupabaseSecretKey string // service_role key, required for storage writes
	StorageBucket     string

	MailProvider string // "smtp" (default) or "brevo"
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	BrevoAPIKey  string
	MailFrom     string // sender address and owner inbox for contact messages
	SiteName     string

	FrontendURLEndsWith string
	DevPassword         string
	HealthAdminKey      string

	AdminEmail    string
	AdminPassword string
	AdminDir      string // optional static build of the admin UI

	CacheStore       string // "redis" (default) or "memory"
	CacheTTL         time.Duration
	DefaultAvatarURL string
}

const defaultAvatarURL = "https://supabase1.limapp.my.id/storage/v1/object/public/portfolio//default-profile.jpg"

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORAGE_BUCKET", "portfolio")
	viper.SetDefault("MAIL_PROVIDER", "smtp")
	viper.SetDefault("SMTP_HOST", "in-v3.mailjet.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SITE_NAME", "Portfolio")
	viper.SetDefault("CACHE_STORE", "redis")
	viper.SetDefault("CACHE_TTL", "1h")
	viper.SetDefault("DEFAULT_AVATAR_URL", defaultAvatarURL)

	ttl, err := time.ParseDuration(viper.GetString("CACHE_TTL"))
	if err != nil {
		return nil, fmt.Errorf("config: CACHE_TTL: %w", err)
	}

	return &Config{
		Env:                 viper.GetString("APP_ENV"),
		Port:                viper.GetString("PORT"),
		LogLevel:            viper.GetString("LOG_LEVEL"),
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		RedisURL:            viper.GetString("REDIS_URL"),
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		SupabaseURL:         strings.TrimRight(viper.GetString("SUPABASE_URL"), "/"),
		SupabaseAnonKey:     viper.GetString("SUPABASE_ANON_KEY"),
		SupabaseSecretKey:   viper.GetString("SUPABASE_SECRET_KEY"),
		StorageBucket:       viper.GetString("STORAGE_BUCKET"),
		MailProvider:        strings.ToLower(viper.GetString("MAIL_PROVIDER")),
		SMTPHost:            viper.GetString("SMTP_HOST"),
		SMTPPort:            viper.GetInt("SMTP_PORT"),
		SMTPUsername:        viper.GetString("SMTP_USERNAME"),
		SMTPPassword:        viper.GetString("SMTP_PASSWORD"),
		BrevoAPIKey:         viper.GetString("BREVO_API_KEY"),
		MailFrom:            viper.GetString("MAIL_FROM"),
		SiteName:            viper.GetString("SITE_NAME"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
		AdminEmail:          viper.GetString("ADMIN_EMAIL"),
		AdminPassword:       viper.GetString("ADMIN_PASSWORD"),
		AdminDir:            viper.GetString("ADMIN_DIR"),
		CacheStore:          strings.ToLower(viper.GetString("CACHE_STORE")),
		CacheTTL:            ttl,
		DefaultAvatarURL:    viper.GetString("DEFAULT_AVATAR_URL"),
	}, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks the settings the process cannot run without. A failure here
// is a deployment problem; callers should abort startup.
func (c *Config) Validate() error {
	var missing []string
	require := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	require("DATABASE_URL", c.DatabaseURL)
	require("REDIS_URL", c.RedisURL)
	require("SUPABASE_URL", c.SupabaseURL)
	require("SUPABASE_SECRET_KEY", c.SupabaseSecretKey)
	require("MAIL_FROM", c.MailFrom)

	switch c.MailProvider {
	case "smtp":
		require("SMTP_HOST", c.SMTPHost)
		require("SMTP_USERNAME", c.SMTPUsername)
		require("SMTP_PASSWORD", c.SMTPPassword)
	case "brevo":
		require("BREVO_API_KEY", c.BrevoAPIKey)
	default:
		return fmt.Errorf("config: unknown MAIL_PROVIDER %q", c.MailProvider)
	}

	switch c.CacheStore {
	case "redis", "memory":
	default:
		return fmt.Errorf("config: unknown CACHE_STORE %q", c.CacheStore)
	}

	if len(missing) > 0 {
		return errors.New("config: missing required settings: " + strings.Join(missing, ", "))
	}
	return nil
}
