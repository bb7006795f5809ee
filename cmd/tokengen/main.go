// Package main mints and inspects bearer tokens for local testing. Tokens
// are signed with the configured key, so they only work against a server
// sharing MCP_JWT_SIGNING_KEY.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	jwttoken "medmcp/internal/jwt_token"
	"medmcp/internal/platform/config"
)

type tokenOutput struct {
	Token     string            `json:"token"`
	Type      string            `json:"type"`
	Subject   string            `json:"subject"`
	ExpiresAt time.Time         `json:"expires_at"`
	Usage     map[string]string `json:"usage"`
}

type verifyOutput struct {
	Valid     bool      `json:"valid"`
	Subject   string    `json:"subject,omitempty"`
	Issuer    string    `json:"issuer,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
	Error     string    `json:"error,omitempty"`
}

func main() {
	_ = godotenv.Load()

	issueCmd := flag.NewFlagSet("issue", flag.ExitOnError)
	issueSubject := issueCmd.String("subject", "", "Token subject. Defaults to the configured auth username.")
	issueTTL := issueCmd.Duration("ttl", 0, "Token time-to-live. Defaults to MCP_TOKEN_TTL_SECONDS.")
	issueJSON := issueCmd.Bool("json", false, "Output as JSON")

	verifyCmd := flag.NewFlagSet("verify", flag.ExitOnError)
	verifyToken := verifyCmd.String("token", "", "Token to verify (required)")
	verifyJSON := verifyCmd.Bool("json", false, "Output as JSON")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "issue":
		_ = issueCmd.Parse(os.Args[2:])
		issue(cfg, *issueSubject, *issueTTL, *issueJSON)
	case "verify":
		_ = verifyCmd.Parse(os.Args[2:])
		if *verifyToken == "" {
			fmt.Fprintln(os.Stderr, "Error: -token is required")
			os.Exit(1)
		}
		verify(cfg, *verifyToken, *verifyJSON)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tokengen - Generate bearer tokens for the medmcp API

Reads the same configuration as the server (MCP_* variables, .env and
MCP_CONFIG_FILE), so tokens are signed with the server's key.

Usage:
  tokengen <command> [flags]

Commands:
  issue     Mint an access token
  verify    Check a token's signature, issuer and expiry

Examples:
  tokengen issue
  tokengen issue -subject dr.mokoena -ttl 1h
  tokengen issue -json
  tokengen verify -token eyJhbGciOi...`)
}

func issue(cfg *config.Server, subject string, ttl time.Duration, jsonOutput bool) {
	if subject == "" {
		subject = cfg.AuthUsername
	}
	if ttl <= 0 {
		ttl = cfg.TokenTTL()
	}

	svc := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, ttl)
	issued, err := svc.IssueAccessToken(context.Background(), subject)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	out := tokenOutput{
		Token:     issued.Token,
		Type:      "Bearer",
		Subject:   issued.Subject,
		ExpiresAt: issued.ExpiresAt,
		Usage: map[string]string{
			"header": "Authorization: Bearer " + issued.Token,
			"curl":   fmt.Sprintf("curl -H 'Authorization: Bearer %s' http://localhost%s/auth/me", issued.Token, cfg.Addr),
		},
	}
	if jsonOutput {
		printJSON(out)
		return
	}

	fmt.Printf("Access token for %q (expires %s)\n\n", out.Subject, out.ExpiresAt.Format(time.RFC3339))
	fmt.Println(out.Token)
	fmt.Printf("\n%s\n", out.Usage["curl"])
}

func verify(cfg *config.Server, token string, jsonOutput bool) {
	svc := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL())

	var out verifyOutput
	claims, err := svc.ValidateToken(context.Background(), token)
	if err != nil {
		out.Error = err.Error()
	} else {
		out.Valid = true
		out.Subject = claims.Subject
		out.Issuer = claims.Issuer
		if claims.ExpiresAt != nil {
			out.ExpiresAt = claims.ExpiresAt.Time
		}
	}

	if jsonOutput {
		printJSON(out)
	} else if out.Valid {
		fmt.Printf("Valid token for %q issued by %q, expires %s\n", out.Subject, out.Issuer, out.ExpiresAt.Format(time.RFC3339))
	} else {
		fmt.Printf("Invalid token: %s\n", out.Error)
	}
	if !out.Valid {
		os.Exit(1)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
		os.Exit(1)
	}
}
