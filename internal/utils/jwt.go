package utils // package utils provides helper functions for token creation and hashing

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Token represents a signed JWT along with its expiry. Both token kinds
// are self-contained: validity is a function of the signature, the exp
// claim and the current time only. There is no server-side token store,
// so rotating the signing secret invalidates everything outstanding.
type Token struct {
	Value string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs a short-lived HS256 JWT for a user.
// The claims are subject (sub), expiration (exp) and issued at (iat);
// ttlMin controls the lifetime in minutes.
func NewAccessToken(secret, userID string, ttlMin int) (Token, error) {
	return newToken(secret, userID, time.Duration(ttlMin)*time.Minute)
}

// NewRefreshToken is identical to NewAccessToken except for the
// lifetime, measured in days. A refresh token carries no extra claims;
// the two kinds differ only in how long they live.
func NewRefreshToken(secret, userID string, ttlDays int) (Token, error) {
	return newToken(secret, userID, time.Duration(ttlDays)*24*time.Hour)
}

func newToken(secret, userID string, ttl time.Duration) (Token, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, Exp: exp}, nil
}

// ParseSubject verifies a token string and returns its subject claim.
// Any failure – malformed input, wrong signing method, bad signature or
// expiry in the past – yields ("", false); validation never errors out,
// an invalid token is a normal result.
func ParseSubject(secret, raw string) (string, bool) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", false
	}
	return sub, true
}
