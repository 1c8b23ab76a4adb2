package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/usecase/interfaces"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrUnauthenticated        = errors.New("unauthenticated")
)

const minPasswordLength = 8

// RegisterCommand creates an account.
type RegisterCommand struct {
	Name     string
	Email    string
	CPF      string
	Password string
	Role     entities.Role
}

// LoginResult bundles the token and user returned after a successful login.
type LoginResult struct {
	Token string
	User  entities.User
}

// IAuthUseCase is the session provider: login, registration and token checks.

type IAuthUseCase interface {
	Register(ctx context.Context, cmd RegisterCommand) (entities.User, error)
	Login(ctx context.Context, email, password string, role entities.Role) (LoginResult, error)
	Authenticate(ctx context.Context, token string) (interfaces.Claims, error)
}

type AuthUseCase struct {
	repo   interfaces.IUserRepository
	tokens interfaces.ITokenIssuer
	now    func() time.Time
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(repo interfaces.IUserRepository, tokens interfaces.ITokenIssuer) *AuthUseCase {
	return &AuthUseCase{repo: repo, tokens: tokens, now: time.Now}
}

func (u *AuthUseCase) Register(ctx context.Context, cmd RegisterCommand) (entities.User, error) {
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	cmd.Name = strings.TrimSpace(cmd.Name)
	if cmd.Role == "" {
		cmd.Role = entities.RoleCliente
	}

	fields := map[string]string{}
	if cmd.Name == "" {
		fields["nome"] = "Nome obrigatório"
	}
	if !strings.Contains(cmd.Email, "@") {
		fields["email"] = MsgInvalidEmail
	}
	if cmd.Role == entities.RoleCliente && !ValidCPF(cmd.CPF) {
		fields["cpf"] = MsgInvalidCPF
	}
	if len(cmd.Password) < minPasswordLength {
		fields["senha"] = "A senha deve ter pelo menos 8 caracteres"
	}
	if len(fields) > 0 {
		return entities.User{}, &ValidationError{Fields: fields}
	}
	if !cmd.Role.Valid() {
		return entities.User{}, fmt.Errorf("auth: invalid role %q", cmd.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return entities.User{}, fmt.Errorf("auth: hash password: %w", err)
	}

	user, err := u.repo.Create(ctx, entities.User{
		ID:           uuid.NewString(),
		Name:         cmd.Name,
		Email:        cmd.Email,
		CPF:          OnlyDigits(cmd.CPF),
		Role:         cmd.Role,
		PasswordHash: string(hash),
		CreatedAt:    u.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, interfaces.ErrUserAlreadyExists) {
			return entities.User{}, ErrEmailAlreadyRegistered
		}
		return entities.User{}, err
	}
	log.Printf("[auth][usecase] registered user_id=%s role=%s", user.ID, user.Role)
	return user, nil
}

// Login checks the password and that the account has the role of the login
// endpoint used (customers and staff log in through different routes).
func (u *AuthUseCase) Login(ctx context.Context, email, password string, role entities.Role) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	user, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}
	if user.ID == "" {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if role != "" && user.Role != role {
		log.Printf("[auth][usecase] role mismatch user_id=%s role=%s wanted=%s", user.ID, user.Role, role)
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(interfaces.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		CPF:    user.CPF,
		Role:   user.Role,
	})
	if err != nil {
		return LoginResult{}, fmt.Errorf("auth: issue token: %w", err)
	}
	return LoginResult{Token: token, User: user}, nil
}

func (u *AuthUseCase) Authenticate(_ context.Context, token string) (interfaces.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return interfaces.Claims{}, ErrUnauthenticated
	}
	claims, err := u.tokens.Parse(token)
	if err != nil {
		return interfaces.Claims{}, ErrUnauthenticated
	}
	return claims, nil
}
