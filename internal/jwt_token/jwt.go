package jwttoken

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/requestcontext"
)

// AccessTokenClaims are the claims of a bearer token. The token is
// stateless: subject, issue and expiry times, and the signature are all
// there is.
type AccessTokenClaims struct {
	jwt.RegisteredClaims
}

// IssuedToken is a freshly minted access token.
type IssuedToken struct {
	Token     string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	TTL       time.Duration
}

// JWTService issues and verifies HS256 access tokens with one server secret.
type JWTService struct {
	signingKey []byte
	issuer     string
	tokenTTL   time.Duration
}

func NewJWTService(signingKey string, issuer string, tokenTTL time.Duration) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		tokenTTL:   tokenTTL,
	}
}

func (s *JWTService) TTL() time.Duration {
	return s.tokenTTL
}

// IssueAccessToken mints a token for subject valid from the request time
// until request time + TTL.
func (s *JWTService) IssueAccessToken(ctx context.Context, subject string) (*IssuedToken, error) {
	if subject == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "subject cannot be empty")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "generate token id")
	}
	now := requestcontext.Now(ctx)
	claims := AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        hex.EncodeToString(b),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "sign token")
	}
	return &IssuedToken{
		Token:     signed,
		Subject:   subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		TTL:       s.tokenTTL,
	}, nil
}

// ValidateToken checks signature, algorithm, issuer and expiry against the
// request time. Signature problems win over expiry: a forged expired token
// is reported as invalid.
func (s *JWTService) ValidateToken(ctx context.Context, tokenString string) (*AccessTokenClaims, error) {
	if tokenString == "" {
		return nil, dErrors.New(dErrors.CodeTokenInvalid, "empty token")
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessTokenClaims{}, func(token *jwt.Token) (any, error) {
		return s.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(func() time.Time { return requestcontext.Now(ctx) }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.Wrap(err, dErrors.CodeTokenExpired, "token expired")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeTokenInvalid, "invalid token")
	}

	claims, ok := parsed.Claims.(*AccessTokenClaims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeTokenInvalid, "invalid token claims")
	}
	if claims.Subject == "" {
		return nil, dErrors.New(dErrors.CodeTokenInvalid, "token has no subject")
	}
	return claims, nil
}

// Verify returns the subject of a valid token.
func (s *JWTService) Verify(ctx context.Context, tokenString string) (string, error) {
	claims, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
