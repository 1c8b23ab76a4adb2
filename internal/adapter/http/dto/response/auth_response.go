package response

import (
	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/usecase/interfaces"
)

type UserResponse struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
	CPF   string `json:"cpf,omitempty"`
	Role  string `json:"role"`
}

func FromUser(u entities.User) UserResponse {
	return UserResponse{ID: u.ID, Nome: u.Name, Email: u.Email, CPF: u.CPF, Role: string(u.Role)}
}

func FromClaims(c interfaces.Claims) UserResponse {
	return UserResponse{ID: c.UserID, Nome: c.Name, Email: c.Email, CPF: c.CPF, Role: string(c.Role)}
}

func (r UserResponse) ToEntity() entities.User {
	return entities.User{ID: r.ID, Name: r.Nome, Email: r.Email, CPF: r.CPF, Role: entities.Role(r.Role)}
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

func FromLogin(token string, u entities.User) LoginResponse {
	return LoginResponse{AccessToken: token, TokenType: "Bearer", User: FromUser(u)}
}
