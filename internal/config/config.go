package config

import "github.com/kelseyhightower/envconfig"

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	// ----------------------------
	// HTTP API
	// ----------------------------
	AppPort     string `envconfig:"APP_PORT" default:"8080"`
	MetricsPort string `envconfig:"METRICS_PORT" default:"9090"`

	// ----------------------------
	// Database
	// ----------------------------
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// ----------------------------
	// Auth
	// ----------------------------
	JWTSecret        string `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	LoginMaxFailures int    `envconfig:"LOGIN_MAX_FAILURES" default:"5"`
	LoginCooldownSec int    `envconfig:"LOGIN_COOLDOWN_SECONDS" default:"300"`

	// ----------------------------
	// SMTP
	// ----------------------------
	SMTPHost string `envconfig:"SMTP_HOST" default:"localhost"`
	SMTPPort int    `envconfig:"SMTP_PORT" default:"1025"`
	SMTPUser string `envconfig:"SMTP_USER" default:""`
	SMTPPass string `envconfig:"SMTP_PASSWORD" default:""`
	SMTPFrom string `envconfig:"SMTP_FROM" default:"noreply@printshop.local"`

	// ----------------------------
	// SMS gateway
	// ----------------------------
	SMSAPIKey    string `envconfig:"SMS_API_KEY" default:""`
	SMSAPISecret string `envconfig:"SMS_API_SECRET" default:""`
	SMSBaseURL   string `envconfig:"SMS_BASE_URL" default:""`
	SMSSenderID  string `envconfig:"SMS_SENDER_ID" default:"PRINTSHOP"`

	// ----------------------------
	// Notification outbox workers
	// ----------------------------
	OutboxWorkers  int `envconfig:"OUTBOX_WORKERS" default:"3"`
	OutboxRate     int `envconfig:"OUTBOX_RATE_LIMIT" default:"10"`
	RetryAttempts  int `envconfig:"RETRY_ATTEMPTS" default:"3"`
	OutboxPollSec  int `envconfig:"OUTBOX_POLL_SECONDS" default:"5"`
	OutboxBatchMax int `envconfig:"OUTBOX_BATCH_MAX" default:"50"`

	// ----------------------------
	// Offline cache
	// ----------------------------
	OfflineCachePath string `envconfig:"OFFLINE_CACHE_PATH" default:"printshop-cache.db"`
	ReplayPollSec    int    `envconfig:"REPLAY_POLL_SECONDS" default:"15"`

	// ----------------------------
	// Uploads (showcase slide images)
	// ----------------------------
	UploadDir     string `envconfig:"UPLOAD_DIR" default:"uploads"`
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return &cfg, err
}
