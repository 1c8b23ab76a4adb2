package client

import (
	"context"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"corretora_seguros/internal/adapter/http/handlers"
	"corretora_seguros/internal/adapter/http/routes"
	"corretora_seguros/internal/config"
	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/domain/views"
	"corretora_seguros/internal/domain/wizard"
	"corretora_seguros/internal/infrastructure/auth"
	"corretora_seguros/internal/usecase"
	"corretora_seguros/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memProposals is an in-memory proposal store with the same conditional
// status update as the DynamoDB one. Ids start at 501.
type memProposals struct {
	mu   sync.Mutex
	next int64
	rows map[int64]entities.Proposal
}

func newMemProposals() *memProposals {
	return &memProposals{next: 500, rows: map[int64]entities.Proposal{}}
}

func (m *memProposals) Create(_ context.Context, p entities.Proposal) (entities.Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	p.ApoliceID = m.next
	m.rows[p.ApoliceID] = p
	return p, nil
}

func (m *memProposals) GetByID(_ context.Context, id int64) (entities.Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id], nil
}

func (m *memProposals) List(_ context.Context) ([]entities.Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entities.Proposal, 0, len(m.rows))
	for _, p := range m.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ApoliceID < out[j].ApoliceID })
	return out, nil
}

func (m *memProposals) ListByStatus(ctx context.Context, s entities.ProposalStatus) ([]entities.Proposal, error) {
	all, _ := m.List(ctx)
	return views.Where(all, views.MatchStatus(string(s))), nil
}

func (m *memProposals) ListByCustomer(ctx context.Context, cpf string) ([]entities.Proposal, error) {
	all, _ := m.List(ctx)
	return views.Where(all, func(p entities.Proposal) bool { return p.CPFCliente == cpf }), nil
}

func (m *memProposals) UpdateStatus(_ context.Context, id int64, s entities.ProposalStatus, d entities.Discriminants) (entities.Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return entities.Proposal{}, nil
	}
	if !p.IsPending() {
		return entities.Proposal{}, interfaces.ErrProposalStatusConflict
	}
	p.Status = s
	if d.Placa != "" {
		p.Placa = d.Placa
	}
	m.rows[id] = p
	return p, nil
}

type memUsers struct {
	mu   sync.Mutex
	rows map[string]entities.User
}

func (m *memUsers) Create(_ context.Context, u entities.User) (entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.rows[u.Email]; exists {
		return entities.User{}, interfaces.ErrUserAlreadyExists
	}
	m.rows[u.Email] = u
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[email], nil
}

func newAPIServer(t *testing.T) (*httptest.Server, *usecase.AuthUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authUC := usecase.NewAuthUseCase(&memUsers{rows: map[string]entities.User{}}, auth.NewJWTIssuer("test-secret", time.Hour))
	proposalUC := usecase.NewProposalUseCase(newMemProposals())

	router := routes.NewRouter(routes.Handlers{
		AuthUseCase: authUC,
		Auth:        handlers.NewAuthHandler(authUC),
		Proposal:    handlers.NewProposalHandler(proposalUC),
		Dashboard:   handlers.NewDashboardHandler(proposalUC),
		Payment:     handlers.NewPremiumPaymentHandler(nil, proposalUC, true),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, authUC
}

func newSession(t *testing.T, baseURL string) (*Client, *Session) {
	t.Helper()
	c := New(config.ClientConfig{APIBaseURL: baseURL + "/v1"}, nil)
	return c, NewSession(c, FileStore{Path: t.TempDir() + "/session.json"})
}

// A customer quotes a vehicle, staff approves it and it shows up as the
// customer's active policy.
func TestEndToEnd_VehicleProposalApproved(t *testing.T) {
	srv, authUC := newAPIServer(t)
	ctx := context.Background()

	_, err := authUC.Register(ctx, usecase.RegisterCommand{Name: "Bruno", Email: "bruno@corretora.com", Password: "senha-forte", Role: entities.RoleFuncionario})
	require.NoError(t, err)

	// customer
	customer, customerSession := newSession(t, srv.URL)
	res := customerSession.Register(ctx, registerRequest("Ana Souza", "ana@example.com", "123.456.789-09", "segredo123"))
	require.True(t, res.Success, res.Error)
	res = customerSession.Login(ctx, "ana@example.com", "segredo123", entities.RoleCliente)
	require.True(t, res.Success, res.Error)

	closed := false
	w := wizard.New(entities.ProductKindVehicle, customer, wizard.WithOnClose(func() { closed = true }))
	for name, value := range map[string]string{"marca": "honda", "modelo": "civic", "ano": "2022", "placa": "ABC-1234", "uso": "particular"} {
		w.SetField(name, value)
	}
	w.Advance()
	w.Advance()
	sub := w.Submit(ctx)
	require.True(t, sub.Success, sub.Message)
	require.NotNil(t, sub.Simulation)
	assert.Equal(t, int64(501), sub.Simulation.ApoliceID)
	assert.Equal(t, entities.ProposalStatusPendente, sub.Simulation.Status)
	assert.True(t, closed)
	assert.True(t, strings.HasPrefix(sub.Message, "Cotação enviada com sucesso! Valor estimado: R$ "))

	portfolio := NewPortfolioView(customer, "12345678909")
	require.True(t, portfolio.Load(ctx).Success)
	require.Len(t, portfolio.Pending(), 1)
	assert.Empty(t, portfolio.Active())

	// staff
	staff, staffSession := newSession(t, srv.URL)
	res = staffSession.Login(ctx, "bruno@corretora.com", "senha-forte", entities.RoleFuncionario)
	require.True(t, res.Success, res.Error)
	assert.True(t, staffSession.IsStaff())

	board := NewProposalBoard(staff)
	defer board.Close()
	require.True(t, board.Load(ctx).Success)
	pending := board.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, []views.Action{views.ActionApprove, views.ActionReject}, board.Actions(pending[0]))

	note := board.Effectuate(ctx, pending[0], views.ActionApprove)
	require.True(t, note.Success, note.Error)
	assert.Equal(t, "Proposta 501 aprovada", note.Message)

	assert.Empty(t, board.Pending())
	approved := board.Approved()
	require.Len(t, approved, 1)
	assert.Equal(t, "Aprovada", approved[0].Status.Label())
	assert.Empty(t, board.Actions(approved[0]))
	assert.Equal(t, views.Metrics{Total: 1, ApprovedCount: 1}, board.Metrics())

	// a second decision on the same proposal is refused by the server
	again := board.Effectuate(ctx, pending[0], views.ActionReject)
	assert.False(t, again.Success)
	assert.Equal(t, "Esta proposta já foi processada. A lista foi atualizada.", again.Error)

	require.True(t, portfolio.Load(ctx).Success)
	require.Len(t, portfolio.Active(), 1)
	assert.Equal(t, int64(501), portfolio.Active()[0].ApoliceID)
	assert.Empty(t, portfolio.Pending())
}

func TestEndToEnd_CustomerCannotReadOthers(t *testing.T) {
	srv, _ := newAPIServer(t)
	ctx := context.Background()

	customer, session := newSession(t, srv.URL)
	require.True(t, session.Register(ctx, registerRequest("Ana Souza", "ana@example.com", "12345678909", "segredo123")).Success)
	require.True(t, session.Login(ctx, "ana@example.com", "segredo123", entities.RoleCliente).Success)

	_, err := customer.FetchByCustomer(ctx, "98765432100")
	res := Normalize(err)
	assert.False(t, res.Success)
	assert.Equal(t, "Você não tem permissão para esta ação.", res.Error)

	_, err = customer.FetchPending(ctx)
	assert.Error(t, err)

	own, err := customer.FetchPendingByCustomer(ctx, "12345678909")
	require.NoError(t, err)
	assert.Empty(t, own)
}

func TestEndToEnd_RegisterValidation(t *testing.T) {
	srv, _ := newAPIServer(t)
	_, session := newSession(t, srv.URL)

	res := session.Register(context.Background(), registerRequest("Ana", "ana@example.com", "111.111.111-11", "segredo123"))
	assert.False(t, res.Success)
	assert.Equal(t, KindValidation, res.Kind)
	assert.Equal(t, "CPF inválido. Confira os 11 dígitos informados.", res.Fields["cpf"])
}
