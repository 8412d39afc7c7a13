package config

import (
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("CALMATE_APP_ENV", "dev")
	t.Setenv("CALMATE_APP_PORT", "8080")
	t.Setenv("CALMATE_ORDERS_BASE_URL", "https://example.supabase.co")
	t.Setenv("CALMATE_ORDERS_API_KEY", "anon-key")
	t.Setenv("CALMATE_JWT_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Shipping.FreeThreshold != 50000 {
		t.Fatalf("expected default free threshold, got %d", cfg.Shipping.FreeThreshold)
	}
	if cfg.Shipping.BaseCost != 5990 {
		t.Fatalf("expected default base cost, got %d", cfg.Shipping.BaseCost)
	}
	if cfg.Orders.Timeout != 30*time.Second {
		t.Fatalf("expected 30s order timeout, got %s", cfg.Orders.Timeout)
	}
	if cfg.Geocode.Debounce != 500*time.Millisecond {
		t.Fatalf("expected 500ms debounce, got %s", cfg.Geocode.Debounce)
	}
	if cfg.Geocode.Limit != 5 || cfg.Geocode.MinQueryLen != 4 {
		t.Fatalf("unexpected geocode defaults %+v", cfg.Geocode)
	}
	if !cfg.App.IsDev() || cfg.App.IsProd() {
		t.Fatal("env helpers disagree with CALMATE_APP_ENV=dev")
	}
}

func TestLoadRequiresOrdersEndpoint(t *testing.T) {
	t.Setenv("CALMATE_APP_ENV", "dev")
	t.Setenv("CALMATE_APP_PORT", "8080")
	t.Setenv("CALMATE_ORDERS_BASE_URL", "")
	t.Setenv("CALMATE_ORDERS_API_KEY", "")
	t.Setenv("CALMATE_JWT_SECRET", "secret")

	// Present-but-empty variables satisfy envconfig's required tag, so Load
	// itself must refuse them.
	if _, err := Load(); err == nil {
		t.Fatal("expected error when orders base url is empty")
	}

	t.Setenv("CALMATE_ORDERS_BASE_URL", "https://example.supabase.co")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when orders api key is empty")
	}

	t.Setenv("CALMATE_ORDERS_API_KEY", "anon-key")
	if _, err := Load(); err != nil {
		t.Fatalf("unexpected error once orders settings are present: %v", err)
	}
}

func TestLoadRejectsNegativeShipping(t *testing.T) {
	t.Setenv("CALMATE_APP_ENV", "dev")
	t.Setenv("CALMATE_APP_PORT", "8080")
	t.Setenv("CALMATE_ORDERS_BASE_URL", "https://example.supabase.co")
	t.Setenv("CALMATE_ORDERS_API_KEY", "anon-key")
	t.Setenv("CALMATE_JWT_SECRET", "secret")
	t.Setenv("CALMATE_SHIPPING_BASE_COST", "-1")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative shipping cost")
	}
}
