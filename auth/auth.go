// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
)

// Header names the session layer uses to hand identity to the engine.
const (
	HeaderVoterID   = "X-Voter-ID"
	HeaderAnonToken = "X-Anon-Token"
)

// VoterContext is the identity threaded into every engine call. The session
// layer owns sign-in, sign-out, and quota resets; the engine only reads the
// headers it forwards.
type VoterContext struct {
	VoterID   string // empty for anonymous callers
	AnonToken string // opaque per-anonymous-identity token
}

// Authenticated reports whether the caller has a signed-in identity.
func (v VoterContext) Authenticated() bool {
	return v.VoterID != ""
}

// FromRequest extracts the voter context from request headers.
func FromRequest(r *http.Request) VoterContext {
	return VoterContext{
		VoterID:   strings.TrimSpace(r.Header.Get(HeaderVoterID)),
		AnonToken: strings.TrimSpace(r.Header.Get(HeaderAnonToken)),
	}
}

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAnonToken creates a random opaque token for an anonymous identity.
// In production the session layer issues these; tests use this directly.
func GenerateAnonToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate anon token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
