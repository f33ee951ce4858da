//go:build ignore

// This script generates the secrets the storefront service reads from the
// environment, plus an admin bearer token signed with the new JWT secret.
// Run with: go run scripts/generate_keys.go [-subject ops] [-ttl 720h]
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/guttosm/storefront-service/internal/middleware"
	"github.com/guttosm/storefront-service/internal/service"
)

func generateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", what, err)
	os.Exit(1)
}

func main() {
	subject := flag.String("subject", "admin", "subject of the admin token")
	role := flag.String("role", "admin", "role granted to the admin token (JWT_ADMIN_ROLE)")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "admin token lifetime, 0 for no expiry")
	flag.Parse()

	fmt.Println("=== Storefront Service Key Generator ===")
	fmt.Println()

	jwtSecret, err := generateSecureKey(32)
	if err != nil {
		fail("JWT secret", err)
	}

	apiKey, err := generateSecureKey(24)
	if err != nil {
		fail("API key", err)
	}

	apiKeyHash, err := middleware.HashAPIKey(apiKey)
	if err != nil {
		fail("API key hash", err)
	}

	tokens, err := service.NewTokenService(jwtSecret)
	if err != nil {
		fail("token service", err)
	}
	adminToken, err := tokens.Issue(*subject, []string{*role}, *ttl)
	if err != nil {
		fail("admin token", err)
	}

	fmt.Println("Add these to your .env file:")
	fmt.Println()
	fmt.Println("# Admin API (bearer tokens)")
	fmt.Printf("JWT_SECRET_KEY=%s\n", jwtSecret)
	fmt.Printf("JWT_ADMIN_ROLE=%s\n", *role)
	fmt.Println()
	fmt.Println("# Storefront API key. Keep either the plain key or its hash.")
	fmt.Println("AUTH_ENABLED=true")
	fmt.Printf("API_KEYS=%s\n", apiKey)
	fmt.Printf("API_KEY_HASHES=%s\n", apiKeyHash)
	fmt.Println()
	fmt.Printf("# Admin token for %q, send as: Authorization: Bearer <token>\n", *subject)
	fmt.Println(adminToken)
	fmt.Println()
	fmt.Println("=== IMPORTANT ===")
	fmt.Println("- Never commit these keys to version control")
	fmt.Println("- Use different keys for each environment (dev, staging, prod)")
	fmt.Println("- Rotating JWT_SECRET_KEY invalidates every issued admin token")
}
