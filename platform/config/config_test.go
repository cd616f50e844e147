package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ContributionCap != 300 {
		t.Fatalf("expected contribution cap 300, got %v", cfg.ContributionCap)
	}
	if cfg.VATRate != 0.20 {
		t.Fatalf("expected VAT rate 0.20, got %v", cfg.VATRate)
	}
	if cfg.KeypadMaxValue != 999.99 {
		t.Fatalf("expected keypad max 999.99, got %v", cfg.KeypadMaxValue)
	}
	if cfg.PhoneRegion != "GB" {
		t.Fatalf("expected phone region GB, got %q", cfg.PhoneRegion)
	}
	if cfg.IntakeSessionTTL != 72*time.Hour {
		t.Fatalf("expected 72h session ttl, got %v", cfg.IntakeSessionTTL)
	}
	if cfg.IsDatabaseEnabled() || cfg.IsEmailEnabled() {
		t.Fatalf("database and email should be disabled by default")
	}
}

func TestFromEnvRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")

	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error without JWT_ACCESS_SECRET")
	}
}

func TestFromEnvRejectsWildcardCORSWithCredentials(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for wildcard origin with credentials")
	}
}

func TestFromEnvRejectsOutOfRangeVAT(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("VAT_RATE", "1.5")

	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for VAT rate 1.5")
	}
}
