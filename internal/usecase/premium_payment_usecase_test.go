package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"corretora_seguros/internal/config"
	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/usecase/interfaces"
	mock_interfaces "corretora_seguros/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func approvedProposal() entities.Proposal {
	return entities.Proposal{
		ApoliceID:   501,
		IDSeguro:    entities.ProductKindVehicle,
		ProdutoNome: "Seguro Auto",
		Status:      entities.ProposalStatusAprovada,
		PremioBruto: decimal.RequireFromString("1944"),
		Parcelas:    12,
		VlrParcela:  decimal.RequireFromString("162"),
	}
}

func TestPremiumPaymentUseCase_Pay_Validations(t *testing.T) {
	t.Run("invalid apolice id", func(t *testing.T) {
		uc := NewPremiumPaymentUseCase(nil, nil, nil, config.PaymentsConfig{})
		if _, err := uc.Pay(context.Background(), 0, json.RawMessage(`{}`)); !errors.Is(err, ErrInvalidApoliceID) {
			t.Fatalf("expected ErrInvalidApoliceID, got %v", err)
		}
	})

	t.Run("invalid json payload", func(t *testing.T) {
		uc := NewPremiumPaymentUseCase(nil, nil, nil, config.PaymentsConfig{})
		if _, err := uc.Pay(context.Background(), 501, json.RawMessage(`{`)); !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewPremiumPaymentUseCase(nil, nil, nil, config.PaymentsConfig{})
		_, err := uc.Pay(context.Background(), 501, json.RawMessage(`{"payment_method_id":"pix"}`))
		if err == nil || err.Error() != "payment gateway not configured" {
			t.Fatalf("expected gateway not configured error, got %v", err)
		}
	})

	cases := []struct {
		name     string
		proposal entities.Proposal
		want     error
	}{
		{"proposal not found", entities.Proposal{}, ErrProposalNotFound},
		{"proposal pending", entities.Proposal{ApoliceID: 501, Status: entities.ProposalStatusPendente}, ErrProposalNotApproved},
		{"proposal rejected", entities.Proposal{ApoliceID: 501, Status: entities.ProposalStatusRejeitada}, ErrProposalNotApproved},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			proposals := mock_interfaces.NewMockIProposalRepository(ctrl)
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			uc := NewPremiumPaymentUseCase(nil, proposals, gateway, config.PaymentsConfig{})

			proposals.EXPECT().GetByID(gomock.Any(), int64(501)).Return(tc.proposal, nil)

			_, err := uc.Pay(context.Background(), 501, json.RawMessage(`{"payment_method_id":"pix"}`))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("all installments paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPremiumPaymentRepository(ctrl)
		proposals := mock_interfaces.NewMockIProposalRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPremiumPaymentUseCase(repo, proposals, gateway, config.PaymentsConfig{})

		p := approvedProposal()
		p.Parcelas = 1
		proposals.EXPECT().GetByID(gomock.Any(), int64(501)).Return(p, nil)
		repo.EXPECT().ListByApoliceID(gomock.Any(), int64(501)).Return([]entities.PremiumPayment{{ID: "501#1", Installment: 1, Status: entities.PaymentStatusAprovado}}, nil)

		if _, err := uc.Pay(context.Background(), 501, json.RawMessage(`{"payment_method_id":"pix"}`)); !errors.Is(err, ErrAllInstallmentsPaid) {
			t.Fatalf("expected ErrAllInstallmentsPaid, got %v", err)
		}
	})

	t.Run("missing payment method outside mock mode", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPremiumPaymentRepository(ctrl)
		proposals := mock_interfaces.NewMockIProposalRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPremiumPaymentUseCase(repo, proposals, gateway, config.PaymentsConfig{})

		proposals.EXPECT().GetByID(gomock.Any(), int64(501)).Return(approvedProposal(), nil)
		repo.EXPECT().ListByApoliceID(gomock.Any(), int64(501)).Return(nil, nil)

		if _, err := uc.Pay(context.Background(), 501, json.RawMessage(`{}`)); !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})
}

func TestPremiumPaymentUseCase_Pay(t *testing.T) {
	t.Run("charges next installment with stored amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPremiumPaymentRepository(ctrl)
		proposals := mock_interfaces.NewMockIProposalRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPremiumPaymentUseCase(repo, proposals, gateway, config.PaymentsConfig{MercadoPagoAccessToken: "TEST-123"})
		uc.now = func() time.Time { return fixedNow }

		proposals.EXPECT().GetByID(gomock.Any(), int64(501)).Return(approvedProposal(), nil)
		repo.EXPECT().ListByApoliceID(gomock.Any(), int64(501)).Return([]entities.PremiumPayment{
			{ID: "501#1", Installment: 1, Status: entities.PaymentStatusAprovado},
			{ID: "501#2", Installment: 2, Status: entities.PaymentStatusNegado},
		}, nil)
		repo.EXPECT().Reserve(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.PremiumPayment) (entities.PremiumPayment, error) {
				if p.ID != "501#2" || p.Status != entities.PaymentStatusPendente {
					t.Fatalf("unexpected reservation: %+v", p)
				}
				return p, nil
			},
		)
		gateway.EXPECT().ChargeInstallment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, payload json.RawMessage) (interfaces.InstallmentCharge, error) {
				var m map[string]any
				if err := json.Unmarshal(payload, &m); err != nil {
					t.Fatalf("invalid payload: %v", err)
				}
				if m["transaction_amount"] != 162.0 {
					t.Fatalf("amount must come from the proposal, got %v", m["transaction_amount"])
				}
				if m["external_reference"] != "apolice-501-parcela-2" {
					t.Fatalf("unexpected external_reference %v", m["external_reference"])
				}
				payer := m["payer"].(map[string]any)
				if payer["email"] != sandboxPayerEmail {
					t.Fatalf("expected sandbox payer, got %v", payer)
				}
				return interfaces.InstallmentCharge{ProviderID: "mp-1", Status: "approved", Raw: json.RawMessage(`{"id":1,"status":"approved"}`)}, nil
			},
		)
		repo.EXPECT().Save(gomock.Any(), gomock.AssignableToTypeOf(entities.PremiumPayment{})).DoAndReturn(
			func(_ context.Context, p entities.PremiumPayment) (entities.PremiumPayment, error) {
				if p.ID != "501#2" || p.ProviderID != "mp-1" || p.Installment != 2 || !p.Amount.Equal(decimal.RequireFromString("162")) || p.Status != entities.PaymentStatusAprovado {
					t.Fatalf("unexpected payment: %+v", p)
				}
				if p.ProviderPayload["status"] != "approved" {
					t.Fatalf("expected parsed provider payload")
				}
				return p, nil
			},
		)

		_, err := uc.Pay(context.Background(), 501, json.RawMessage(`{"payment_method_id":"pix","transaction_amount":1}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("mock mode accepts empty payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPremiumPaymentRepository(ctrl)
		proposals := mock_interfaces.NewMockIProposalRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPremiumPaymentUseCase(repo, proposals, gateway, config.PaymentsConfig{MockMode: true})

		proposals.EXPECT().GetByID(gomock.Any(), int64(501)).Return(approvedProposal(), nil)
		repo.EXPECT().ListByApoliceID(gomock.Any(), int64(501)).Return(nil, nil)
		repo.EXPECT().Reserve(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.PremiumPayment) (entities.PremiumPayment, error) {
			return p, nil
		})
		gateway.EXPECT().ChargeInstallment(gomock.Any(), gomock.Any()).Return(interfaces.InstallmentCharge{ProviderID: "mock-1", Status: "approved", Raw: json.RawMessage(`{}`)}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.PremiumPayment) (entities.PremiumPayment, error) {
			return p, nil
		})

		p, err := uc.Pay(context.Background(), 501, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Installment != 1 {
			t.Fatalf("expected first installment, got %d", p.Installment)
		}
	})

	t.Run("pending payment holds its installment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPremiumPaymentRepository(ctrl)
		proposals := mock_interfaces.NewMockIProposalRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPremiumPaymentUseCase(repo, proposals, gateway, config.PaymentsConfig{MockMode: true})

		proposals.EXPECT().GetByID(gomock.Any(), int64(501)).Return(approvedProposal(), nil)
		repo.EXPECT().ListByApoliceID(gomock.Any(), int64(501)).Return([]entities.PremiumPayment{
			{ID: "501#1", Installment: 1, Status: entities.PaymentStatusPendente},
		}, nil)
		repo.EXPECT().Reserve(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.PremiumPayment) (entities.PremiumPayment, error) {
			if p.Installment != 2 {
				t.Fatalf("expected installment 2, got %d", p.Installment)
			}
			return p, nil
		})
		gateway.EXPECT().ChargeInstallment(gomock.Any(), gomock.Any()).Return(interfaces.InstallmentCharge{ProviderID: "mock-2", Status: "in_process"}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.PremiumPayment) (entities.PremiumPayment, error) {
			return p, nil
		})

		p, err := uc.Pay(context.Background(), 501, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != entities.PaymentStatusPendente || p.ProviderID != "mock-2" {
			t.Fatalf("unexpected payment: %+v", p)
		}
	})

	t.Run("installment already reserved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPremiumPaymentRepository(ctrl)
		proposals := mock_interfaces.NewMockIProposalRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPremiumPaymentUseCase(repo, proposals, gateway, config.PaymentsConfig{MockMode: true})

		proposals.EXPECT().GetByID(gomock.Any(), int64(501)).Return(approvedProposal(), nil)
		repo.EXPECT().ListByApoliceID(gomock.Any(), int64(501)).Return(nil, nil)
		repo.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(entities.PremiumPayment{}, interfaces.ErrInstallmentTaken)

		if _, err := uc.Pay(context.Background(), 501, nil); !errors.Is(err, ErrPaymentInProgress) {
			t.Fatalf("expected ErrPaymentInProgress, got %v", err)
		}
	})

	gatewayErrors := []struct {
		msg  string
		want error
	}{
		{`{"status":400,"error":"bad_request"}`, ErrPaymentGatewayBadRequest},
		{`{"status":401,"error":"unauthorized"}`, ErrPaymentGatewayUnauthorized},
		{`invalid users involved`, ErrPaymentGatewayInvalidUsers},
		{`{"code":2002}`, ErrPaymentGatewayCustomerNotFound},
	}
	for _, tc := range gatewayErrors {
		t.Run("gateway "+tc.want.Error(), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := mock_interfaces.NewMockIPremiumPaymentRepository(ctrl)
			proposals := mock_interfaces.NewMockIProposalRepository(ctrl)
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			uc := NewPremiumPaymentUseCase(repo, proposals, gateway, config.PaymentsConfig{})

			proposals.EXPECT().GetByID(gomock.Any(), int64(501)).Return(approvedProposal(), nil)
			repo.EXPECT().ListByApoliceID(gomock.Any(), int64(501)).Return(nil, nil)
			repo.EXPECT().Reserve(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.PremiumPayment) (entities.PremiumPayment, error) {
				return p, nil
			})
			gateway.EXPECT().ChargeInstallment(gomock.Any(), gomock.Any()).Return(interfaces.InstallmentCharge{}, errors.New(tc.msg))
			repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.PremiumPayment) (entities.PremiumPayment, error) {
				if p.ID != "501#1" || p.Status != entities.PaymentStatusNegado {
					t.Fatalf("denied charge must release its slot, got %+v", p)
				}
				return p, nil
			})

			_, err := uc.Pay(context.Background(), 501, json.RawMessage(`{"payment_method_id":"pix","payer":{"email":"a@b.com"}}`))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPremiumPaymentUseCase_Latest(t *testing.T) {
	t.Run("no payments", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPremiumPaymentRepository(ctrl)
		uc := NewPremiumPaymentUseCase(repo, nil, nil, config.PaymentsConfig{})

		repo.EXPECT().ListByApoliceID(gomock.Any(), int64(501)).Return(nil, nil)
		if _, err := uc.Latest(context.Background(), 501); !errors.Is(err, ErrPremiumPaymentNotFound) {
			t.Fatalf("expected ErrPremiumPaymentNotFound, got %v", err)
		}
	})

	t.Run("most recent wins", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPremiumPaymentRepository(ctrl)
		uc := NewPremiumPaymentUseCase(repo, nil, nil, config.PaymentsConfig{})

		repo.EXPECT().ListByApoliceID(gomock.Any(), int64(501)).Return([]entities.PremiumPayment{
			{ID: "old", Date: fixedNow.Add(-time.Hour)},
			{ID: "new", Date: fixedNow},
			{ID: "older", Date: fixedNow.Add(-2 * time.Hour)},
		}, nil)
		p, err := uc.Latest(context.Background(), 501)
		if err != nil || p.ID != "new" {
			t.Fatalf("unexpected result: %+v %v", p, err)
		}
	})
}

// slotRepo stores payments by slot id with the same conditional rules as the
// DynamoDB repository. ListByApoliceID waits until every caller has read so
// concurrent payers see the same history.
type slotRepo struct {
	mu      sync.Mutex
	rows    map[string]entities.PremiumPayment
	readers sync.WaitGroup
}

func (r *slotRepo) Reserve(_ context.Context, p entities.PremiumPayment) (entities.PremiumPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.rows[p.ID]; ok && cur.Status != entities.PaymentStatusNegado {
		return entities.PremiumPayment{}, interfaces.ErrInstallmentTaken
	}
	p.Status = entities.PaymentStatusPendente
	r.rows[p.ID] = p
	return p, nil
}

func (r *slotRepo) Save(_ context.Context, p entities.PremiumPayment) (entities.PremiumPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[p.ID]; !ok {
		return entities.PremiumPayment{}, errors.New("slot not reserved")
	}
	r.rows[p.ID] = p
	return p, nil
}

func (r *slotRepo) GetByID(_ context.Context, id string) (entities.PremiumPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id], nil
}

func (r *slotRepo) ListByApoliceID(_ context.Context, apoliceID int64) ([]entities.PremiumPayment, error) {
	r.mu.Lock()
	var out []entities.PremiumPayment
	for _, p := range r.rows {
		if p.ApoliceID == apoliceID {
			out = append(out, p)
		}
	}
	r.mu.Unlock()
	r.readers.Done()
	r.readers.Wait()
	return out, nil
}

type countingGateway struct{ charges atomic.Int32 }

func (g *countingGateway) ChargeInstallment(_ context.Context, _ json.RawMessage) (interfaces.InstallmentCharge, error) {
	n := g.charges.Add(1)
	return interfaces.InstallmentCharge{ProviderID: "mp-" + string(rune('0'+n)), Status: "approved", Raw: json.RawMessage(`{}`)}, nil
}

func TestPremiumPaymentUseCase_Pay_ConcurrentCharge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	proposals := mock_interfaces.NewMockIProposalRepository(ctrl)
	proposals.EXPECT().GetByID(gomock.Any(), int64(501)).Return(approvedProposal(), nil).Times(2)

	repo := &slotRepo{rows: map[string]entities.PremiumPayment{}}
	repo.readers.Add(2)
	gateway := &countingGateway{}
	uc := NewPremiumPaymentUseCase(repo, proposals, gateway, config.PaymentsConfig{MockMode: true})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Pay(context.Background(), 501, nil)
		}(i)
	}
	wg.Wait()

	if got := gateway.charges.Load(); got != 1 {
		t.Fatalf("expected exactly one charge, got %d", got)
	}
	var ok, busy int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrPaymentInProgress):
			busy++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || busy != 1 {
		t.Fatalf("expected one success and one ErrPaymentInProgress, got %v", errs)
	}
	if p := repo.rows["501#1"]; p.Status != entities.PaymentStatusAprovado || p.ProviderID != "mp-1" {
		t.Fatalf("unexpected stored slot: %+v", p)
	}
}
