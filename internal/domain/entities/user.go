package entities

import "time"

// Role gates which views and operations a session may reach.
type Role string

const (
	RoleCliente     Role = "cliente"
	RoleFuncionario Role = "funcionario"
)

func (r Role) Valid() bool {
	return r == RoleCliente || r == RoleFuncionario
}

// User is an account persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: email (lowercase)
type User struct {
	ID           string
	Name         string
	Email        string
	CPF          string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

func (u User) IsStaff() bool {
	return u.Role == RoleFuncionario
}
