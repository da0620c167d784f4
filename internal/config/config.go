package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Hotel   HotelConfig
	MongoDB MongoDBConfig
	Webhook WebhookConfig
	Sheets  SheetsConfig
	Alerts  AlertsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// HotelConfig carries branding used on generated reports.
type HotelConfig struct {
	Name string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// WebhookConfig configures the optional shift/alert notification endpoint.
// Notifications are disabled when URL is empty.
type WebhookConfig struct {
	URL   string
	Token string
}

// SheetsConfig configures the optional Google Sheets accounting export.
// The export is disabled when either field is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// AlertsConfig holds the due-alert sweep schedule.
type AlertsConfig struct {
	SweepSchedule string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from
		// the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Hotel: HotelConfig{
			Name: getenvWithDefault("HOTEL_NAME", "Hotel Cytrico"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "frontdesk"),
		},
		Webhook: WebhookConfig{
			URL:   os.Getenv("WEBHOOK_URL"),
			Token: os.Getenv("WEBHOOK_TOKEN"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_EXPORT_RANGE", "Turnos!A:J"),
		},
		Alerts: AlertsConfig{
			SweepSchedule: getenvWithDefault("ALERT_SWEEP_SCHEDULE", "*/5 * * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty")
	}

	if c.Alerts.SweepSchedule == "" {
		return errors.New("ALERT_SWEEP_SCHEDULE must not be empty")
	}

	// Webhook and Sheets stay optional; each feature is disabled when its
	// settings are absent.
	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_EXPORT_ID is set")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
