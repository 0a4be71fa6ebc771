package sessions

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/quayside/entraportal/internal/errors"
)

// CookieCodec signs and verifies the browser session cookie. The cookie
// value is a compact HS256 JWT carrying only the session ID and the
// user ID; everything else stays server-side in the session repo.
type CookieCodec struct {
	secret []byte
	issuer string
}

type cookieClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

func NewCookieCodec(secret []byte, issuer string) *CookieCodec {
	return &CookieCodec{secret: secret, issuer: issuer}
}

// Encode mints the signed cookie value for a session. The token expiry
// tracks the session's own lifetime.
func (c *CookieCodec) Encode(session Session) (string, error) {
	claims := cookieClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   session.UserID,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		SessionID: session.ID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", apperrors.Wrapf(err, "failed to sign session cookie")
	}
	return signed, nil
}

// Decode verifies a cookie value and returns the session and user IDs
// it carries. Tampered, expired or foreign tokens are rejected.
func (c *CookieCodec) Decode(value string) (sessionID, userID string, err error) {
	claims := &cookieClaims{}
	_, err = jwt.ParseWithClaims(
		value,
		claims,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", "", apperrors.Wrapf(apperrors.ErrInvalidCookie, "%s", err.Error())
	}
	if claims.SessionID == "" {
		return "", "", apperrors.ErrInvalidCookie
	}
	return claims.SessionID, claims.Subject, nil
}
