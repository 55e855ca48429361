package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PIN compares caller-supplied admin PINs with the configured one.
// The configured value may be a bcrypt hash.
type PIN struct {
	expected string
	hashed   bool
}

func NewPIN(configured string) PIN {
	configured = strings.TrimSpace(configured)
	return PIN{
		expected: configured,
		hashed:   isBcryptHash(configured),
	}
}

// Configured reports whether any PIN is set. Without one every check fails.
func (p PIN) Configured() bool {
	return p.expected != ""
}

func (p PIN) Match(candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	if !p.Configured() || candidate == "" {
		return false
	}
	if p.hashed {
		return bcrypt.CompareHashAndPassword([]byte(p.expected), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(p.expected), []byte(candidate)) == 1
}

func isBcryptHash(s string) bool {
	if len(s) != 60 {
		return false
	}
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
