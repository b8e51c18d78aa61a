package config_test

import (
	"testing"

	"github.com/unclebandit/customer-segmentation/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_HOST", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("MODEL_CLUSTERS", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")

	cfg := config.Load()

	if cfg.Addr() != "127.0.0.1:8080" {
		t.Errorf("expected default addr 127.0.0.1:8080, got %s", cfg.Addr())
	}
	if cfg.Model.Clusters != 0 {
		t.Errorf("expected elbow selection by default, got k=%d", cfg.Model.Clusters)
	}
	if cfg.Model.MaxClusters != 10 {
		t.Errorf("expected max clusters 10, got %d", cfg.Model.MaxClusters)
	}
	if cfg.DB.Enabled() {
		t.Errorf("expected postgres to be disabled without DB_HOST/DB_NAME")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("MONGODB_URL", "mongodb://localhost:27017")
	t.Setenv("MODEL_CLUSTERS", "4")
	t.Setenv("MODEL_SEED", "not-a-number")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "segmentation")

	cfg := config.Load()

	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Port)
	}
	if cfg.MongoURL != "mongodb://localhost:27017" {
		t.Errorf("unexpected mongo url %q", cfg.MongoURL)
	}
	if cfg.Model.Clusters != 4 {
		t.Errorf("expected k=4, got %d", cfg.Model.Clusters)
	}
	if cfg.Model.Seed != 42 {
		t.Errorf("expected invalid seed to fall back to 42, got %d", cfg.Model.Seed)
	}
	if !cfg.DB.Enabled() {
		t.Errorf("expected postgres to be enabled")
	}
}
