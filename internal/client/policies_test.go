package client

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"corretora_seguros/internal/adapter/http/handlers"
	"corretora_seguros/internal/adapter/http/routes"
	"corretora_seguros/internal/config"
	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/infrastructure/auth"
	"corretora_seguros/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPolicies struct {
	mu   sync.Mutex
	rows map[string]entities.Policy
}

func (m *memPolicies) Create(_ context.Context, p entities.Policy) (entities.Policy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[p.ID] = p
	return p, nil
}

func (m *memPolicies) GetByID(_ context.Context, id string) (entities.Policy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id], nil
}

func (m *memPolicies) List(_ context.Context) ([]entities.Policy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entities.Policy, 0, len(m.rows))
	for _, p := range m.rows {
		out = append(out, p)
	}
	return out, nil
}

func (m *memPolicies) Update(_ context.Context, p entities.Policy) (entities.Policy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[p.ID]; !ok {
		return entities.Policy{}, nil
	}
	m.rows[p.ID] = p
	return p, nil
}

func (m *memPolicies) Delete(_ context.Context, id string) (entities.Policy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old := m.rows[id]
	delete(m.rows, id)
	return old, nil
}

func newPoliciesServer(t *testing.T) (*httptest.Server, *usecase.AuthUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authUC := usecase.NewAuthUseCase(&memUsers{rows: map[string]entities.User{}}, auth.NewJWTIssuer("test-secret", time.Hour))
	proposalUC := usecase.NewProposalUseCase(newMemProposals())
	policyUC := usecase.NewPolicyUseCase(&memPolicies{rows: map[string]entities.Policy{}})

	router := routes.NewRouter(routes.Handlers{
		AuthUseCase: authUC,
		Auth:        handlers.NewAuthHandler(authUC),
		Proposal:    handlers.NewProposalHandler(proposalUC),
		Dashboard:   handlers.NewDashboardHandler(proposalUC),
		Payment:     handlers.NewPremiumPaymentHandler(nil, proposalUC, true),
		Policy:      handlers.NewPolicyHandler(policyUC),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, authUC
}

func TestPolicies_StaffLifecycle(t *testing.T) {
	srv, authUC := newPoliciesServer(t)
	ctx := context.Background()

	_, err := authUC.Register(ctx, usecase.RegisterCommand{Name: "Bruno", Email: "bruno@corretora.com", Password: "senha-forte", Role: entities.RoleFuncionario})
	require.NoError(t, err)

	c := New(config.ClientConfig{APIBaseURL: srv.URL + "/v1", PoliciesAPIEnabled: true}, nil)
	s := NewSession(c, FileStore{Path: t.TempDir() + "/session.json"})
	require.True(t, s.Login(ctx, "bruno@corretora.com", "senha-forte", entities.RoleFuncionario).Success)

	created, err := c.CreatePolicy(ctx, entities.Policy{
		CustomerCPF:  "123.456.789-09",
		CustomerName: "Ana Souza",
		Type:         entities.ProductKindHome,
		Description:  "Residencial Moema",
		Premium:      decimal.RequireFromString("1050.00"),
		Coverage:     decimal.RequireFromString("350000.00"),
		Status:       entities.PolicyStatusActive,
		StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "12345678909", created.CustomerCPF)
	assert.Equal(t, entities.ProductKindHome, created.Type)
	assert.True(t, created.Premium.Equal(decimal.RequireFromString("1050")))

	list, err := c.ListPolicies(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	created.Status = entities.PolicyStatusCancelled
	updated, err := c.UpdatePolicy(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, entities.PolicyStatusCancelled, updated.Status)

	require.NoError(t, c.DeletePolicy(ctx, created.ID))
	_, err = c.GetPolicy(ctx, created.ID)
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

func TestPolicies_CreateValidation(t *testing.T) {
	srv, authUC := newPoliciesServer(t)
	ctx := context.Background()

	_, err := authUC.Register(ctx, usecase.RegisterCommand{Name: "Bruno", Email: "bruno@corretora.com", Password: "senha-forte", Role: entities.RoleFuncionario})
	require.NoError(t, err)
	c := New(config.ClientConfig{APIBaseURL: srv.URL + "/v1", PoliciesAPIEnabled: true}, nil)
	s := NewSession(c, FileStore{Path: t.TempDir() + "/session.json"})
	require.True(t, s.Login(ctx, "bruno@corretora.com", "senha-forte", entities.RoleFuncionario).Success)

	_, err = c.CreatePolicy(ctx, entities.Policy{CustomerCPF: "111", CustomerName: "Ana", Type: entities.ProductKindPhone, StartDate: time.Now()})
	res := Normalize(err)
	assert.False(t, res.Success)
	assert.Equal(t, KindValidation, res.Kind)
	assert.Equal(t, "CPF inválido. Confira os 11 dígitos informados.", res.Fields["customerCpf"])
}
