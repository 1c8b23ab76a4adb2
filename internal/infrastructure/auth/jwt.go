// Package auth signs and verifies the bearer tokens handed out at login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/usecase/interfaces"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("auth: invalid token")

type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	CPF   string `json:"cpf"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer issues HS256 tokens valid for ttl.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ interfaces.ITokenIssuer = (*JWTIssuer)(nil)

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (j *JWTIssuer) Issue(c interfaces.Claims) (string, error) {
	now := j.now()
	claims := tokenClaims{
		Email: c.Email,
		Name:  c.Name,
		CPF:   c.CPF,
		Role:  string(c.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

func (j *JWTIssuer) Parse(raw string) (interfaces.Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithTimeFunc(j.now))
	if err != nil {
		return interfaces.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return interfaces.Claims{}, ErrInvalidToken
	}
	role := entities.Role(claims.Role)
	if !role.Valid() {
		return interfaces.Claims{}, fmt.Errorf("%w: role %q", ErrInvalidToken, claims.Role)
	}
	return interfaces.Claims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
		CPF:    claims.CPF,
		Role:   role,
	}, nil
}
