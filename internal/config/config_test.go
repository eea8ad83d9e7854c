package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Audit.Timeout != 30*time.Second {
		t.Errorf("Audit.Timeout = %v, want 30s", cfg.Audit.Timeout)
	}
	if cfg.Audit.Schedule != "" {
		t.Errorf("Audit.Schedule = %q, want empty", cfg.Audit.Schedule)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("AUDIT_TIMEOUT", "10s")
	t.Setenv("AUDIT_SCHEDULE", "*/15 * * * *")
	t.Setenv("AUDIT_TARGETS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Database.Driver = %q", cfg.Database.Driver)
	}
	if cfg.Audit.Timeout != 10*time.Second {
		t.Errorf("Audit.Timeout = %v", cfg.Audit.Timeout)
	}
	if len(cfg.Audit.Targets) != 2 || cfg.Audit.Targets[1] != "https://b.example" {
		t.Errorf("Audit.Targets = %v", cfg.Audit.Targets)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Driver: "sqlite"},
			Audit:    AuditConfig{Timeout: 30 * time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"bad driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"zero timeout", func(c *Config) { c.Audit.Timeout = 0 }, true},
		{"schedule without targets", func(c *Config) { c.Audit.Schedule = "@hourly" }, true},
		{"schedule with targets", func(c *Config) {
			c.Audit.Schedule = "@hourly"
			c.Audit.Targets = []string{"https://example.com"}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
