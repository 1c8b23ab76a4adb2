package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"corretora_seguros/internal/adapter/http/handlers"
	"corretora_seguros/internal/adapter/http/handlers/mocks"
	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/domain/views"
	"corretora_seguros/internal/usecase"
	"corretora_seguros/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T, policies bool) (*gin.Engine, *mocks.MockIProposalUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	authUC := mocks.NewMockIAuthUseCase(ctrl)
	authUC.EXPECT().Authenticate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, token string) (interfaces.Claims, error) {
		switch token {
		case "staff":
			return interfaces.Claims{UserID: "s-1", Role: entities.RoleFuncionario}, nil
		case "customer":
			return interfaces.Claims{UserID: "u-1", CPF: "12345678909", Role: entities.RoleCliente}, nil
		}
		return interfaces.Claims{}, usecase.ErrUnauthenticated
	}).AnyTimes()

	proposalUC := mocks.NewMockIProposalUseCase(ctrl)
	h := Handlers{
		AuthUseCase: authUC,
		Auth:        handlers.NewAuthHandler(authUC),
		Proposal:    handlers.NewProposalHandler(proposalUC),
		Dashboard:   handlers.NewDashboardHandler(proposalUC),
		Payment:     handlers.NewPremiumPaymentHandler(mocks.NewMockIPremiumPaymentUseCase(ctrl), proposalUC, true),
	}
	if policies {
		h.Policy = handlers.NewPolicyHandler(mocks.NewMockIPolicyUseCase(ctrl))
	}
	return NewRouter(h), proposalUC
}

func do(r http.Handler, method, path, token string) int {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRouter_PublicRoutes(t *testing.T) {
	r, _ := newTestRouter(t, false)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/v1/ping", ""))
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/metrics", ""))
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/v1/auth/me", ""))
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/v1/proposals/pending", ""))
}

func TestRouter_RoleGate(t *testing.T) {
	r, proposalUC := newTestRouter(t, false)
	proposalUC.EXPECT().ListPending(gomock.Any()).Return(nil, nil)
	proposalUC.EXPECT().ListByCustomer(gomock.Any(), "12345678909").Return(nil, nil)
	proposalUC.EXPECT().StaffMetrics(gomock.Any()).Return(views.Metrics{}, nil)

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/v1/proposals/pending", "customer"))
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/v1/proposals/pending", "staff"))

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/v1/proposals/effectuate", "customer"))
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/v1/customers/98765432100/proposals", "customer"))
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/v1/customers/12345678909/proposals", "customer"))

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/v1/dashboard/staff", "customer"))
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/v1/dashboard/staff", "staff"))
}

func TestRouter_PoliciesFlag(t *testing.T) {
	off, _ := newTestRouter(t, false)
	assert.Equal(t, http.StatusNotFound, do(off, http.MethodGet, "/v1/policies/p-1/pdf", "staff"))

	on, _ := newTestRouter(t, true)
	assert.Equal(t, http.StatusForbidden, do(on, http.MethodDelete, "/v1/policies/p-1", "customer"))
}

func TestRouter_PoliciesOwnership(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	authUC := mocks.NewMockIAuthUseCase(ctrl)
	authUC.EXPECT().Authenticate(gomock.Any(), "customer").Return(interfaces.Claims{UserID: "u-1", CPF: "12345678909", Role: entities.RoleCliente}, nil).AnyTimes()

	other := entities.Policy{ID: "p-other", CustomerCPF: "98765432100"}
	policyUC := mocks.NewMockIPolicyUseCase(ctrl)
	policyUC.EXPECT().ListByCustomer(gomock.Any(), "12345678909").Return([]entities.Policy{}, nil)
	policyUC.EXPECT().GetByID(gomock.Any(), "p-other").Return(other, nil)
	policyUC.EXPECT().Document(gomock.Any(), "p-other").Return(other, []byte("%PDF-1.4"), nil)

	proposalUC := mocks.NewMockIProposalUseCase(ctrl)
	r := NewRouter(Handlers{
		AuthUseCase: authUC,
		Auth:        handlers.NewAuthHandler(authUC),
		Proposal:    handlers.NewProposalHandler(proposalUC),
		Dashboard:   handlers.NewDashboardHandler(proposalUC),
		Payment:     handlers.NewPremiumPaymentHandler(mocks.NewMockIPremiumPaymentUseCase(ctrl), proposalUC, true),
		Policy:      handlers.NewPolicyHandler(policyUC),
	})

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/v1/policies", "customer"))
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/v1/policies/p-other", "customer"))
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/v1/policies/p-other/pdf", "customer"))
}
