package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/restodeals/backend/pkg/enums"
)

// RoleFromToken extracts the role claim from a bearer token without verifying
// the signature. It never fails: any malformed input yields RoleNone. Callers
// that gate on the result must treat RoleNone as unauthenticated.
//
// This decode is a convenience for clients that cache the role next to the
// stored credential; the server always re-derives the role from the verified
// token, so the unverified value is never a security control.
func RoleFromToken(raw string) enums.Role {
	parts := strings.Split(raw, ".")
	if len(parts) < 2 || parts[1] == "" {
		return enums.RoleNone
	}

	// JWT payloads use the URL-safe alphabet without padding; map it back to
	// the standard alphabet and re-pad before decoding.
	payload := strings.NewReplacer("-", "+", "_", "/").Replace(parts[1])
	if rem := len(payload) % 4; rem != 0 {
		payload += strings.Repeat("=", 4-rem)
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return enums.RoleNone
	}

	var claims struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(decoded, &claims); err != nil {
		return enums.RoleNone
	}

	role, err := enums.ParseRole(claims.Role)
	if err != nil {
		return enums.RoleNone
	}
	return role
}
