package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		DataBackend:       "file",
		DataDir:           dir,
		SQLiteDBPath:      filepath.Join(dir, "ledger.db"),
		StorageKey:        "moneyManagerData",
		StorageQuotaBytes: 5 << 20,
		LogLevel:          "info",
		Timezone:          "UTC",
		ReportCacheSize:   16,
		ReportCacheTTL:    5 * time.Minute,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid file backend config",
			mutate: func(*Config) {},
		},
		{
			name:   "valid sqlite backend config",
			mutate: func(c *Config) { c.DataBackend = "sqlite" },
		},
		{
			name:   "valid memory backend with empty paths",
			mutate: func(c *Config) { c.DataBackend = "memory"; c.DataDir = ""; c.SQLiteDBPath = "" },
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "sheets" },
			wantErr:     true,
			errorString: "invalid data backend 'sheets': must be one of [memory file sqlite]",
		},
		{
			name:        "file backend missing directory",
			mutate:      func(c *Config) { c.DataDir = "" },
			wantErr:     true,
			errorString: "data directory cannot be empty when using file backend",
		},
		{
			name:        "sqlite backend missing database path",
			mutate:      func(c *Config) { c.DataBackend = "sqlite"; c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name:        "blank storage key",
			mutate:      func(c *Config) { c.StorageKey = "  " },
			wantErr:     true,
			errorString: "storage key cannot be empty",
		},
		{
			name:        "negative quota",
			mutate:      func(c *Config) { c.StorageQuotaBytes = -1 },
			wantErr:     true,
			errorString: "invalid storage quota -1",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name:        "unknown timezone",
			mutate:      func(c *Config) { c.Timezone = "Mars/Olympus" },
			wantErr:     true,
			errorString: "invalid timezone 'Mars/Olympus'",
		},
		{
			name:        "report cache too small",
			mutate:      func(c *Config) { c.ReportCacheSize = 0 },
			wantErr:     true,
			errorString: "invalid report cache size 0: must be at least 1",
		},
		{
			name:        "report cache too large",
			mutate:      func(c *Config) { c.ReportCacheSize = 2000 },
			wantErr:     true,
			errorString: "invalid report cache size 2000: must be at most 1024",
		},
		{
			name:        "negative report cache ttl",
			mutate:      func(c *Config) { c.ReportCacheTTL = -time.Second },
			wantErr:     true,
			errorString: "invalid report cache ttl -1s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.DataBackend = "nope"
	cfg.LogLevel = "loud"
	cfg.ReportCacheSize = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if n := strings.Count(err.Error(), "\n- "); n != 3 {
		t.Errorf("got %d problems, want 3: %v", n, err)
	}
}

func TestConfig_ValidateCreatesDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := validConfig(t)
	cfg.DataBackend = "sqlite"
	cfg.SQLiteDBPath = filepath.Join(base, "nested", "dir", "ledger.db")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "nested", "dir")); err != nil {
		t.Fatalf("directory not created: %v", err)
	}
}

func TestLoadFrom(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		cfg, err := LoadFrom(map[string]string{})
		if err != nil {
			t.Fatalf("LoadFrom() error = %v", err)
		}
		if cfg.DataBackend != "file" {
			t.Errorf("DataBackend = %v, want file", cfg.DataBackend)
		}
		if cfg.DataDir != "./data" {
			t.Errorf("DataDir = %v, want ./data", cfg.DataDir)
		}
		if cfg.SQLiteDBPath != "./data/moneymanager.db" {
			t.Errorf("SQLiteDBPath = %v, want ./data/moneymanager.db", cfg.SQLiteDBPath)
		}
		if cfg.StorageKey != "moneyManagerData" {
			t.Errorf("StorageKey = %v, want moneyManagerData", cfg.StorageKey)
		}
		if cfg.StorageQuotaBytes != 5242880 {
			t.Errorf("StorageQuotaBytes = %v, want 5242880", cfg.StorageQuotaBytes)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
		}
		if cfg.Timezone != "Local" {
			t.Errorf("Timezone = %v, want Local", cfg.Timezone)
		}
		if cfg.ReportCacheSize != 16 {
			t.Errorf("ReportCacheSize = %v, want 16", cfg.ReportCacheSize)
		}
		if cfg.ReportCacheTTL != 5*time.Minute {
			t.Errorf("ReportCacheTTL = %v, want 5m", cfg.ReportCacheTTL)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		cfg, err := LoadFrom(map[string]string{
			"DATA_BACKEND":        "sqlite",
			"SQLITE_DB_PATH":      "/tmp/test.db",
			"STORAGE_QUOTA_BYTES": "1024",
			"LEDGER_TIMEZONE":     "UTC",
			"REPORT_CACHE_TTL":    "30s",
		})
		if err != nil {
			t.Fatalf("LoadFrom() error = %v", err)
		}
		if cfg.DataBackend != "sqlite" || cfg.SQLiteDBPath != "/tmp/test.db" {
			t.Errorf("backend = %v %v", cfg.DataBackend, cfg.SQLiteDBPath)
		}
		if cfg.StorageQuotaBytes != 1024 {
			t.Errorf("StorageQuotaBytes = %v, want 1024", cfg.StorageQuotaBytes)
		}
		if cfg.ReportCacheTTL != 30*time.Second {
			t.Errorf("ReportCacheTTL = %v, want 30s", cfg.ReportCacheTTL)
		}
		loc, err := cfg.Location()
		if err != nil || loc.String() != "UTC" {
			t.Errorf("Location() = %v, %v", loc, err)
		}
	})

	t.Run("malformed number", func(t *testing.T) {
		if _, err := LoadFrom(map[string]string{"REPORT_CACHE_SIZE": "many"}); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestLocationLocal(t *testing.T) {
	for _, tz := range []string{"", "Local"} {
		cfg := Config{Timezone: tz}
		loc, err := cfg.Location()
		if err != nil || loc != time.Local {
			t.Errorf("Location(%q) = %v, %v", tz, loc, err)
		}
	}
}
