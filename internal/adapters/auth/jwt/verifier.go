// Package jwt implementa el AuthVerifier sobre tokens HS256.
package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"petclinic-rest/internal/ports/auth"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

type tokenClaims struct {
	Roles []string `json:"roles"`
	jwtlib.RegisteredClaims
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	var claims tokenClaims
	parsed, err := jwtlib.ParseWithClaims(token, &claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		Username: claims.Subject,
		Roles:    claims.Roles,
	}, nil
}

// Sign emite un token para el username y roles dados. Lo usan tests y
// tooling de dev; el servicio en sí no emite tokens.
func (v *Verifier) Sign(username string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Roles: roles,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(v.secret)
}
