package interfaces

import "corretora_seguros/internal/domain/entities"

// Claims are the session facts carried by a bearer token.
type Claims struct {
	UserID string
	Email  string
	Name   string
	CPF    string
	Role   entities.Role
}

// ITokenIssuer signs and verifies bearer tokens.
type ITokenIssuer interface {
	Issue(c Claims) (string, error)
	Parse(token string) (Claims, error)
}
