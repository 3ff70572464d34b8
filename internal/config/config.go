package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"meeting-service/internal/models"
)

type GoogleConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURL  string `toml:"redirect_url"`
}

func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != "" && g.RedirectURL != ""
}

type Config struct {
	Env         string `toml:"env"`
	Port        string `toml:"port"`
	DatabaseURL string `toml:"database_url"`
	LogLevel    string `toml:"log_level"`

	JWTSecret    string   `toml:"jwt_hmac_secret"`
	StaticTokens []string `toml:"static_tokens"`

	Google GoogleConfig `toml:"google"`

	Timezone              string   `toml:"timezone"`
	SlotDurationMinutes   int      `toml:"slot_duration_minutes"`
	AvailabilityDateMode  string   `toml:"availability_date_mode"`
	AllowDisjointWindows  bool     `toml:"availability_allow_disjoint_windows"`
	NotificationsMode     string   `toml:"notifications_mode"`
	ReminderCron          string   `toml:"reminder_cron"`
	ReminderLeadMinutes   int      `toml:"reminder_lead_minutes"`
	ExpiryCron            string   `toml:"expiry_cron"`
	CORSAllowedOrigins    []string `toml:"cors_allowed_origins"`
	RequestTimeoutSeconds int      `toml:"request_timeout_seconds"`
	RunMigrations         bool     `toml:"run_migrations"`
}

const (
	NotificationsQueue = "queue"
	NotificationsLog   = "log"
)

func defaults() Config {
	return Config{
		Env:                   "production",
		Port:                  "8080",
		LogLevel:              "info",
		Timezone:              "UTC",
		SlotDurationMinutes:   30,
		AvailabilityDateMode:  string(models.DateModeUnion),
		NotificationsMode:     NotificationsLog,
		ReminderCron:          "*/5 * * * *",
		ReminderLeadMinutes:   60,
		ExpiryCron:            "*/15 * * * *",
		RequestTimeoutSeconds: 30,
		RunMigrations:         true,
	}
}

// Load reads the optional TOML file named by CONFIG_FILE, then lets
// environment variables override it.
func Load() (Config, error) {
	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "reading config file %s", path)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv() error {
	setString(&cfg.Env, "ENV")
	setString(&cfg.Port, "PORT")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.JWTSecret, "JWT_HMAC_SECRET")
	setList(&cfg.StaticTokens, "STATIC_TOKENS")
	setString(&cfg.Google.ClientID, "GOOGLE_CLIENT_ID")
	setString(&cfg.Google.ClientSecret, "GOOGLE_CLIENT_SECRET")
	setString(&cfg.Google.RedirectURL, "GOOGLE_REDIRECT_URL")
	setString(&cfg.Timezone, "TIMEZONE")
	setString(&cfg.AvailabilityDateMode, "AVAILABILITY_DATE_MODE")
	setString(&cfg.NotificationsMode, "NOTIFICATIONS_MODE")
	setString(&cfg.ReminderCron, "REMINDER_CRON")
	setString(&cfg.ExpiryCron, "EXPIRY_CRON")
	setList(&cfg.CORSAllowedOrigins, "CORS_ALLOWED_ORIGINS")

	for name, target := range map[string]*int{
		"SLOT_DURATION_MINUTES":   &cfg.SlotDurationMinutes,
		"REMINDER_LEAD_MINUTES":   &cfg.ReminderLeadMinutes,
		"REQUEST_TIMEOUT_SECONDS": &cfg.RequestTimeoutSeconds,
	} {
		if err := setInt(target, name); err != nil {
			return err
		}
	}
	for name, target := range map[string]*bool{
		"AVAILABILITY_ALLOW_DISJOINT_WINDOWS": &cfg.AllowDisjointWindows,
		"RUN_MIGRATIONS":                      &cfg.RunMigrations,
	} {
		if err := setBool(target, name); err != nil {
			return err
		}
	}
	return nil
}

func (cfg Config) Validate() error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL required")
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return errors.Wrapf(err, "invalid TIMEZONE %q", cfg.Timezone)
	}
	if cfg.SlotDurationMinutes <= 0 {
		return errors.Newf("SLOT_DURATION_MINUTES must be positive, got %d", cfg.SlotDurationMinutes)
	}
	switch cfg.NotificationsMode {
	case NotificationsQueue, NotificationsLog:
	default:
		return errors.Newf("NOTIFICATIONS_MODE must be %q or %q", NotificationsQueue, NotificationsLog)
	}
	return nil
}

func (cfg Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (cfg Config) SlotDuration() time.Duration {
	return time.Duration(cfg.SlotDurationMinutes) * time.Minute
}

func (cfg Config) ReminderLead() time.Duration {
	return time.Duration(cfg.ReminderLeadMinutes) * time.Minute
}

func (cfg Config) RequestTimeout() time.Duration {
	return time.Duration(cfg.RequestTimeoutSeconds) * time.Second
}

func (cfg Config) AvailabilityPolicy() models.AvailabilityPolicy {
	return models.AvailabilityPolicy{
		DateMode:             models.DateModeFromString(cfg.AvailabilityDateMode),
		AllowDisjointWindows: cfg.AllowDisjointWindows,
	}
}

func setString(target *string, name string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*target = v
	}
}

func setList(target *[]string, name string) {
	v, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(v) == "" {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*target = out
}

func setInt(target *int, name string) error {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return errors.Newf("environment variable %s is not valid: %q is not an integer", name, v)
	}
	*target = n
	return nil
}

func setBool(target *bool, name string) error {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return errors.Newf("environment variable %s is not valid: %q cannot be converted to bool", name, v)
	}
	*target = b
	return nil
}
