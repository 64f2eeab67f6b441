package domain

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	u := &User{Handle: "ana", Email: "ana@x.com", PasswordHash: "$2a$..."}
	if err := u.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if u.Role != DefaultRole {
		t.Errorf("Role = %q, want default %q", u.Role, DefaultRole)
	}
}

func TestValidate_Failures(t *testing.T) {
	cases := []struct {
		name string
		u    User
	}{
		{"missing handle", User{Email: "a@x.com", PasswordHash: "h"}},
		{"missing email", User{Handle: "a", PasswordHash: "h"}},
		{"bad email", User{Handle: "a", Email: "not-an-email", PasswordHash: "h"}},
		{"missing hash", User{Handle: "a", Email: "a@x.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.u.Validate(); err == nil {
				t.Error("Validate should fail")
			}
		})
	}
}

func TestValidEmail(t *testing.T) {
	for email, want := range map[string]bool{
		"ana@x.com":      true,
		"a.b+c@dom.co":   true,
		"":               false,
		"sin-arroba.com": false,
		"dos @x.com":     false,
	} {
		if got := ValidEmail(email); got != want {
			t.Errorf("ValidEmail(%q) = %v, want %v", email, got, want)
		}
	}
}

func TestSummarize_OmitsSecrets(t *testing.T) {
	u := &User{
		ID: "u1", Handle: "ana", Email: "ana@x.com", Role: RoleAdmin, Active: true,
		PasswordHash: "hash", TwoFactorCode: "123456", TwoFactorExpiresAt: time.Now(),
	}
	s := u.Summarize()
	if s.ID != "u1" || s.Handle != "ana" || s.Email != "ana@x.com" || s.Role != RoleAdmin || !s.Active {
		t.Errorf("Summarize = %+v", s)
	}
}

func TestHasPendingChallenge(t *testing.T) {
	u := &User{}
	if u.HasPendingChallenge() {
		t.Error("no code set, should not be pending")
	}
	u.TwoFactorCode = "654321"
	if !u.HasPendingChallenge() {
		t.Error("code set, should be pending")
	}
}
