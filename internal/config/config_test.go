package config

import (
	"reflect"
	"testing"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ADMIN_SECRET", "hunter2")
	t.Setenv("DATABASE_URL", "postgres://app:pw@db:5432/awards")
	t.Setenv("CORS_ORIGINS", "https://club.example.com/, http://localhost:5173")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Server.Port)
	}
	if cfg.Admin.Secret != "hunter2" {
		t.Errorf("expected admin secret from env, got %q", cfg.Admin.Secret)
	}
	if cfg.Database.DSN() != "postgres://app:pw@db:5432/awards" {
		t.Errorf("DATABASE_URL must win over the assembled DSN, got %q", cfg.Database.DSN())
	}
	want := []string{"https://club.example.com", "http://localhost:5173"}
	if !reflect.DeepEqual(cfg.CORS.AllowOrigins, want) {
		t.Errorf("expected origins %v, got %v", want, cfg.CORS.AllowOrigins)
	}
}

func TestDSNAssembledFromParts(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     "5433",
		User:     "app",
		Password: "pw",
		DBName:   "awards",
		SSLMode:  "disable",
	}
	want := "host=db port=5433 user=app password=pw dbname=awards sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestSplitOrigins(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"*", []string{"*"}},
		{"https://a.example/,https://b.example", []string{"https://a.example", "https://b.example"}},
		{" https://a.example , ", []string{"https://a.example"}},
		{"", nil},
	}
	for _, tc := range cases {
		if got := splitOrigins(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitOrigins(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
