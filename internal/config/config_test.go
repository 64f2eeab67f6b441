package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":3000" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":3000")
	}
	if cfg.JWTIssuer != "sanjose-park" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "sanjose-park")
	}
	if cfg.JWTTTL != "1h" {
		t.Errorf("JWTTTL = %q, want %q", cfg.JWTTTL, "1h")
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if cfg.UploadDir != "public/uploads" {
		t.Errorf("UploadDir = %q, want %q", cfg.UploadDir, "public/uploads")
	}
	if cfg.PublicBaseURL != "http://localhost:3000" {
		t.Errorf("PublicBaseURL = %q, want %q", cfg.PublicBaseURL, "http://localhost:3000")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load should fail without JWT_SECRET")
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("BCRYPT_COST", "12")
	os.Setenv("SMTP_USERNAME", "parque@pisanjose.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.SMTPFrom != "parque@pisanjose.com" {
		t.Errorf("SMTPFrom should default to SMTP_USERNAME, got %q", cfg.SMTPFrom)
	}
	if cfg.ContactRecipient != "parque@pisanjose.com" {
		t.Errorf("ContactRecipient should default to SMTP_USERNAME, got %q", cfg.ContactRecipient)
	}
}

func TestLoad_InvalidBcryptCost(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("BCRYPT_COST", "50")

	if _, err := Load(); err == nil {
		t.Fatal("Load should reject BCRYPT_COST out of range")
	}
}

func TestTokenTTL(t *testing.T) {
	cfg := &Config{JWTTTL: "30m"}
	if got := cfg.TokenTTL(); got != 30*time.Minute {
		t.Errorf("TokenTTL = %v, want 30m", got)
	}
	cfg = &Config{JWTTTL: "bogus"}
	if got := cfg.TokenTTL(); got != time.Hour {
		t.Errorf("TokenTTL fallback = %v, want 1h", got)
	}
}

func TestAllowedOriginsList(t *testing.T) {
	cfg := &Config{AllowedOrigins: "http://localhost:4200, https://sanjose-front.example.com ,"}
	got := cfg.AllowedOriginsList()
	if len(got) != 2 {
		t.Fatalf("AllowedOriginsList len = %d, want 2", len(got))
	}
	if got[0] != "http://localhost:4200" || got[1] != "https://sanjose-front.example.com" {
		t.Errorf("AllowedOriginsList = %v", got)
	}
}
