package utils

import (
	"strings"
	"testing"
)

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("GenerateSecureToken: %v", err)
	}
	// hex encoding doubles the byte count.
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64", len(token))
	}
}

func TestGenerateTrackingCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := GenerateTrackingCode()
		if err != nil {
			t.Fatalf("GenerateTrackingCode: %v", err)
		}
		if len(code) != TrackingCodeLength {
			t.Fatalf("code %q length = %d, want %d", code, len(code), TrackingCodeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(trackingAlphabet, r) {
				t.Fatalf("code %q contains %q, outside [0-9A-Z]", code, r)
			}
		}
		seen[code] = true
	}
	// 200 draws from 36^5 codes should essentially never collide; a
	// single repeated value across the whole run would point at a
	// broken generator rather than bad luck.
	if len(seen) < 199 {
		t.Errorf("saw %d distinct codes out of 200", len(seen))
	}
}
