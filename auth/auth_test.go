// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"24 bytes", 24, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			// Verify it's valid hex
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	// Test randomness - two IDs should be different
	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestGenerateAnonToken(t *testing.T) {
	token, err := GenerateAnonToken()
	if err != nil {
		t.Fatalf("GenerateAnonToken() error = %v", err)
	}

	if token == "" {
		t.Fatal("GenerateAnonToken() returned empty string")
	}

	// URL-safe base64 without padding
	if strings.ContainsAny(token, "+/=") {
		t.Errorf("GenerateAnonToken() not URL-safe: %s", token)
	}

	// 24 bytes -> 32 base64 chars without padding
	if len(token) != 32 {
		t.Errorf("GenerateAnonToken() length = %d, want 32", len(token))
	}

	token2, _ := GenerateAnonToken()
	if token == token2 {
		t.Error("GenerateAnonToken() produced duplicate tokens (extremely unlikely)")
	}
}

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name          string
		voterID       string
		anonToken     string
		wantAuth      bool
		wantVoterID   string
		wantAnonToken string
	}{
		{"authenticated", "user-42", "", true, "user-42", ""},
		{"anonymous", "", "anon-token-abc", false, "", "anon-token-abc"},
		{"both headers", "user-42", "anon-token-abc", true, "user-42", "anon-token-abc"},
		{"no headers", "", "", false, "", ""},
		{"whitespace trimmed", "  user-42  ", " tok ", true, "user-42", "tok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/matchup", nil)
			if tt.voterID != "" {
				r.Header.Set(HeaderVoterID, tt.voterID)
			}
			if tt.anonToken != "" {
				r.Header.Set(HeaderAnonToken, tt.anonToken)
			}

			ctx := FromRequest(r)
			if ctx.Authenticated() != tt.wantAuth {
				t.Errorf("Authenticated() = %v, want %v", ctx.Authenticated(), tt.wantAuth)
			}
			if ctx.VoterID != tt.wantVoterID {
				t.Errorf("VoterID = %q, want %q", ctx.VoterID, tt.wantVoterID)
			}
			if ctx.AnonToken != tt.wantAnonToken {
				t.Errorf("AnonToken = %q, want %q", ctx.AnonToken, tt.wantAnonToken)
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	hash := HashIP("192.168.1.1", "salt")

	// 8 bytes -> 16 hex chars
	if len(hash) != 16 {
		t.Errorf("HashIP() length = %d, want 16", len(hash))
	}

	// Deterministic for same input
	if hash != HashIP("192.168.1.1", "salt") {
		t.Error("HashIP() is not deterministic")
	}

	// Different IPs produce different hashes
	if hash == HashIP("192.168.1.2", "salt") {
		t.Error("HashIP() produced same hash for different IPs")
	}

	// Different salts produce different hashes
	if hash == HashIP("192.168.1.1", "other-salt") {
		t.Error("HashIP() produced same hash for different salts")
	}
}
