package config

import "os"

// JWTSecret returns the session-token signing key. JWT_SECRET must be set
// in any real deployment; the fallback only keeps local runs working.
func JWTSecret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("dev-secret")
}
