package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var (
	EmptyTokenErr     = errors.New("empty token")
	MissingExpiryErr  = errors.New("token missing exp claim")
	MalformedTokenErr = errors.New("malformed token")
)

// Claims is the subset of access-token claims this application reads.
type Claims struct {
	Subject   string
	Email     string
	Usertype  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Decoder extracts claims from a raw bearer token. The token expiry used by
// the session layer must always come from here, never from any other source.
type Decoder interface {
	Decode(rawToken string) (*Claims, error)
}

// UnverifiedDecoder decodes JWT claims without verifying the signature.
// The remote courier API is trusted to issue valid tokens; swapping in a
// verifying Decoder requires no changes to callers.
type UnverifiedDecoder struct{}

var _ Decoder = UnverifiedDecoder{}

func NewUnverifiedDecoder() UnverifiedDecoder {
	return UnverifiedDecoder{}
}

func (UnverifiedDecoder) Decode(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, EmptyTokenErr
	}

	unverifiedToken, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, errors.Wrap(MalformedTokenErr, err.Error())
	}

	claims, ok := unverifiedToken.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.Wrap(MalformedTokenErr, "error extracting claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, MissingExpiryErr
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	usertype, _ := claims["usertype"].(string)
	iat, _ := claims["iat"].(float64)

	decoded := &Claims{
		Subject:   sub,
		Email:     email,
		Usertype:  usertype,
		ExpiresAt: time.Unix(int64(exp), 0),
	}
	if iat != 0 {
		decoded.IssuedAt = time.Unix(int64(iat), 0)
	}

	return decoded, nil
}

// Expiry is a convenience wrapper for callers that only need the exp claim.
func Expiry(d Decoder, rawToken string) (time.Time, error) {
	claims, err := d.Decode(rawToken)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "[Expiry] decode")
	}
	return claims.ExpiresAt, nil
}
