package auth

import (
	"strconv"
	"testing"
)

func TestGenerateChallengeCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code, err := GenerateChallengeCode()
		if err != nil {
			t.Fatalf("GenerateChallengeCode: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 digits", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d out of range", n)
		}
		seen[code] = true
	}
	// 200 draws from 900000 values colliding into a handful would be
	// astronomically unlikely; guard against a broken generator.
	if len(seen) < 100 {
		t.Errorf("only %d distinct codes in 200 draws", len(seen))
	}
}
