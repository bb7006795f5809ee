package jwttoken

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/requestcontext"
)

var tokenTTL = 24 * time.Hour

var jwtService = NewJWTService("test-signing-key", "test-issuer", tokenTTL)

var issuedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func at(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}

func Test_IssueAccessToken(t *testing.T) {
	issued, err := jwtService.IssueAccessToken(at(issuedAt), "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.Equal(t, "admin", issued.Subject)
	assert.Equal(t, issuedAt, issued.IssuedAt)
	assert.Equal(t, issuedAt.Add(tokenTTL), issued.ExpiresAt)
	assert.Equal(t, tokenTTL, issued.TTL)
	assert.Len(t, strings.Split(issued.Token, "."), 3)
}

func Test_IssueAccessToken_RejectsEmptySubject(t *testing.T) {
	_, err := jwtService.IssueAccessToken(at(issuedAt), "")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func Test_IssueAccessToken_UniqueIDs(t *testing.T) {
	a, err := jwtService.IssueAccessToken(at(issuedAt), "admin")
	require.NoError(t, err)
	b, err := jwtService.IssueAccessToken(at(issuedAt), "admin")
	require.NoError(t, err)
	assert.NotEqual(t, a.Token, b.Token)
}

func Test_Verify_RoundTrip(t *testing.T) {
	issued, err := jwtService.IssueAccessToken(at(issuedAt), "admin")
	require.NoError(t, err)

	subject, err := jwtService.Verify(at(issuedAt.Add(time.Hour)), issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func Test_ValidateToken_Expiry(t *testing.T) {
	issued, err := jwtService.IssueAccessToken(at(issuedAt), "admin")
	require.NoError(t, err)

	t.Run("valid one second before expiry", func(t *testing.T) {
		_, err := jwtService.ValidateToken(at(issuedAt.Add(tokenTTL-time.Second)), issued.Token)
		require.NoError(t, err)
	})

	t.Run("expired at expires_at", func(t *testing.T) {
		_, err := jwtService.ValidateToken(at(issuedAt.Add(tokenTTL)), issued.Token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTokenExpired))
	})

	t.Run("expired well after ttl", func(t *testing.T) {
		_, err := jwtService.ValidateToken(at(issuedAt.Add(tokenTTL+time.Hour)), issued.Token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTokenExpired))
	})
}

func Test_ValidateToken_InvalidToken(t *testing.T) {
	for name, token := range map[string]string{
		"empty":        "",
		"garbage":      "invalid.token.string",
		"two segments": "abc.def",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := jwtService.ValidateToken(at(issuedAt), token)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeTokenInvalid))
		})
	}
}

func Test_ValidateToken_TamperedSignature(t *testing.T) {
	issued, err := jwtService.IssueAccessToken(at(issuedAt), "admin")
	require.NoError(t, err)

	parts := strings.Split(issued.Token, ".")
	sig := []byte(parts[2])
	mid := len(sig) / 2
	if sig[mid] == 'A' {
		sig[mid] = 'B'
	} else {
		sig[mid] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = jwtService.ValidateToken(at(issuedAt), tampered)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTokenInvalid))
}

func Test_ValidateToken_ForgedExpiredTokenIsInvalid(t *testing.T) {
	other := NewJWTService("other-key", "test-issuer", tokenTTL)
	issued, err := other.IssueAccessToken(at(issuedAt), "admin")
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(at(issuedAt.Add(2*tokenTTL)), issued.Token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTokenInvalid))
}

func Test_ValidateToken_RejectsAlgorithmConfusion(t *testing.T) {
	claims := AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			Issuer:    "test-issuer",
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}

	t.Run("HS512 signed with the same key", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
		signed, err := token.SignedString([]byte("test-signing-key"))
		require.NoError(t, err)

		_, err = jwtService.ValidateToken(at(issuedAt), signed)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTokenInvalid))
	})

	t.Run("none algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = jwtService.ValidateToken(at(issuedAt), signed)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTokenInvalid))
	})
}

func Test_ValidateToken_RejectsInvalidIssuer(t *testing.T) {
	other := NewJWTService("test-signing-key", "someone-else", tokenTTL)
	issued, err := other.IssueAccessToken(at(issuedAt), "admin")
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(at(issuedAt), issued.Token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTokenInvalid))
}

func Test_ValidateToken_RejectsMissingExpiry(t *testing.T) {
	claims := AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "admin", Issuer: "test-issuer"},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(at(issuedAt), signed)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTokenInvalid))
}

func Test_ValidateToken_RejectsEmptySubject(t *testing.T) {
	claims := AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	_, err = jwtService.Verify(at(issuedAt), signed)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTokenInvalid))
}
