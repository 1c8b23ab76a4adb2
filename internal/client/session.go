package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	request "corretora_seguros/internal/adapter/http/dto/request"
	response "corretora_seguros/internal/adapter/http/dto/response"
	"corretora_seguros/internal/domain/entities"
)

// TokenStore persists the bearer token between runs.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileStore keeps the token in a small JSON file.
type FileStore struct {
	Path string
}

type storedSession struct {
	AccessToken string `json:"access_token"`
}

func (f FileStore) Load() (string, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session file: %w", err)
	}
	var s storedSession
	if err := json.Unmarshal(b, &s); err != nil {
		return "", fmt.Errorf("parse session file: %w", err)
	}
	return s.AccessToken, nil
}

func (f FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	b, err := json.Marshal(storedSession{AccessToken: token})
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, b, 0o600)
}

func (f FileStore) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Session is the explicit authentication state handed to every view.
type Session struct {
	client *Client
	store  TokenStore

	mu   sync.RWMutex
	user *entities.User
}

func NewSession(c *Client, store TokenStore) *Session {
	return &Session{client: c, store: store}
}

// User returns the signed-in user, if any.
func (s *Session) User() (entities.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return entities.User{}, false
	}
	return *s.user, true
}

func (s *Session) IsStaff() bool {
	u, ok := s.User()
	return ok && u.IsStaff()
}

// Restore loads the persisted token and validates it against /auth/me.
// A rejected token is discarded.
func (s *Session) Restore(ctx context.Context) Result {
	token, err := s.store.Load()
	if err != nil {
		log.Printf("[client][session] load failed err=%v", err)
		return Result{Error: msgUnknown, Kind: KindUnknown}
	}
	if token == "" {
		return Result{Error: Translate("Authentication required"), Kind: KindUnknown}
	}

	s.client.SetToken(token)
	var me response.UserResponse
	if err := s.client.do(ctx, http.MethodGet, "/auth/me", nil, &me); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			s.teardown()
		}
		return Normalize(err)
	}
	s.setUser(me.ToEntity())
	return ok("")
}

// Login signs in with the endpoint matching role and persists the token.
func (s *Session) Login(ctx context.Context, email, senha string, role entities.Role) Result {
	path := "/auth/login-cliente"
	if role == entities.RoleFuncionario {
		path = "/auth/login-funcionario"
	}

	var res response.LoginResponse
	if err := s.client.do(ctx, http.MethodPost, path, request.LoginRequest{Email: email, Senha: senha}, &res); err != nil {
		return Normalize(err)
	}
	s.client.SetToken(res.AccessToken)
	s.setUser(res.User.ToEntity())
	if err := s.store.Save(res.AccessToken); err != nil {
		log.Printf("[client][session] persist failed err=%v", err)
	}
	return ok("Bem-vindo, " + res.User.Nome + "!")
}

// Register creates a customer account. It does not sign in.
func (s *Session) Register(ctx context.Context, in request.RegisterRequest) Result {
	if err := s.client.do(ctx, http.MethodPost, "/auth/register", in, nil); err != nil {
		return Normalize(err)
	}
	return ok("Cadastro realizado! Faça login para continuar.")
}

// Logout forgets the user and the persisted token.
func (s *Session) Logout() error {
	return s.teardown()
}

func (s *Session) teardown() error {
	s.client.SetToken("")
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return s.store.Clear()
}

func (s *Session) setUser(u entities.User) {
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
}
