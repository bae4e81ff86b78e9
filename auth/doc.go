// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identity extraction and token utilities.

# Voter Context

The engine never keeps ambient session state. Each request carries its
identity in headers, parsed into an explicit value:

	ctx := auth.FromRequest(r)
	if ctx.Authenticated() { ... }

X-Voter-ID identifies a signed-in voter (issued by the external identity
provider). X-Anon-Token is the opaque per-anonymous-identity token the
session layer mints for quota tracking.

# Anonymous Tokens

Random 24-byte (192-bit) URL-safe tokens:

	token, err := auth.GenerateAnonToken()

In production the session layer issues these; the engine only consumes them.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

For privacy-preserving vote auditing:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
