package config

import "testing"

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DB_NAME", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("HOTEL_NAME", "")
	t.Setenv("WEBHOOK_URL", "")
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "")
	t.Setenv("GOOGLE_SHEET_EXPORT_ID", "")
	t.Setenv("GOOGLE_SHEET_EXPORT_RANGE", "")
	t.Setenv("ALERT_SWEEP_SCHEDULE", "")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load("testdata/nonexistent.env")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Hotel.Name != "Hotel Cytrico" {
		t.Errorf("Hotel.Name = %q, want Hotel Cytrico", cfg.Hotel.Name)
	}
	if cfg.MongoDB.DBName != "frontdesk" {
		t.Errorf("DBName = %q, want frontdesk", cfg.MongoDB.DBName)
	}
	if cfg.Sheets.Range != "Turnos!A:J" {
		t.Errorf("Sheets.Range = %q, want Turnos!A:J", cfg.Sheets.Range)
	}
	if cfg.Alerts.SweepSchedule != "*/5 * * * *" {
		t.Errorf("SweepSchedule = %q, want */5 * * * *", cfg.Alerts.SweepSchedule)
	}
}

func TestLoadRequiresMongoURI(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MONGODB_URI", "")

	if _, err := Load("testdata/nonexistent.env"); err == nil {
		t.Fatal("Load should fail without MONGODB_URI")
	}
}

func TestValidateSheetsCredentials(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("GOOGLE_SHEET_EXPORT_ID", "sheet-id")

	if _, err := Load("testdata/nonexistent.env"); err == nil {
		t.Fatal("Load should fail when the export id is set without credentials")
	}

	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/etc/creds.json")
	if _, err := Load("testdata/nonexistent.env"); err != nil {
		t.Fatalf("Load with credentials: %v", err)
	}
}
