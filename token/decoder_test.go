package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/swiftship/courier-web/token"
)

func signedToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestUnverifiedDecoder_Decode(t *testing.T) {
	d := token.NewUnverifiedDecoder()

	t.Run("full claim set", func(t *testing.T) {
		exp := time.Now().Add(time.Hour).Unix()
		iat := time.Now().Unix()
		raw := signedToken(t, jwtlib.MapClaims{
			"sub":      "user-1",
			"email":    "john.doe@example.com",
			"usertype": "client",
			"iat":      iat,
			"exp":      exp,
		})

		claims, err := d.Decode(raw)
		require.NoError(t, err)
		require.Equal(t, "user-1", claims.Subject)
		require.Equal(t, "john.doe@example.com", claims.Email)
		require.Equal(t, "client", claims.Usertype)
		require.Equal(t, exp, claims.ExpiresAt.Unix())
		require.Equal(t, iat, claims.IssuedAt.Unix())
	})

	t.Run("expiry only", func(t *testing.T) {
		exp := time.Now().Add(30 * time.Minute).Unix()
		raw := signedToken(t, jwtlib.MapClaims{"exp": exp})

		claims, err := d.Decode(raw)
		require.NoError(t, err)
		require.Equal(t, exp, claims.ExpiresAt.Unix())
		require.Empty(t, claims.Subject)
	})

	t.Run("missing exp claim", func(t *testing.T) {
		raw := signedToken(t, jwtlib.MapClaims{"sub": "user-1"})

		_, err := d.Decode(raw)
		require.ErrorIs(t, err, token.MissingExpiryErr)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := d.Decode("  ")
		require.ErrorIs(t, err, token.EmptyTokenErr)
	})

	t.Run("not a JWT", func(t *testing.T) {
		_, err := d.Decode("not-a-jwt")
		require.ErrorIs(t, err, token.MalformedTokenErr)
	})

	// Signature is deliberately not verified: a tampered signature still
	// decodes, the remote API is the trust boundary.
	t.Run("bad signature still decodes", func(t *testing.T) {
		exp := time.Now().Add(time.Hour).Unix()
		raw := signedToken(t, jwtlib.MapClaims{"exp": exp})
		tampered := raw[:len(raw)-4] + "AAAA"

		claims, err := d.Decode(tampered)
		require.NoError(t, err)
		require.Equal(t, exp, claims.ExpiresAt.Unix())
	})
}

func TestExpiry(t *testing.T) {
	d := token.NewUnverifiedDecoder()
	exp := time.Now().Add(time.Hour).Unix()
	raw := signedToken(t, jwtlib.MapClaims{"exp": exp})

	expiresAt, err := token.Expiry(d, raw)
	require.NoError(t, err)
	require.Equal(t, exp, expiresAt.Unix())

	_, err = token.Expiry(d, "")
	require.Error(t, err)
}
