package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Auth:   AuthConfig{JWTSecret: "0123456789abcdef0123"},
		Campus: CampusConfig{
			Timezone:   "Asia/Kolkata",
			OpenTime:   "8:10",
			CloseTime:  "17:00",
			ClosedDays: []string{"saturday", "SUNDAY"},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"empty secret", func(c *Config) { c.Auth.JWTSecret = "" }, "jwt_secret"},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }, "at least 16"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad timezone", func(c *Config) { c.Campus.Timezone = "Mars/Olympus" }, "campus.timezone"},
		{"bad open time", func(c *Config) { c.Campus.OpenTime = "8am" }, "campus.open_time"},
		{"bad close time", func(c *Config) { c.Campus.CloseTime = "25:00" }, "campus.close_time"},
		{"inverted window", func(c *Config) { c.Campus.OpenTime = "18:00" }, "before"},
		{"unknown day", func(c *Config) { c.Campus.ClosedDays = []string{"Funday"} }, "unknown day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}
