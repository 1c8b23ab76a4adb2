package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/domain/views"
	"corretora_seguros/internal/usecase/interfaces"
	mock_interfaces "corretora_seguros/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newProposalUseCase(repo interfaces.IProposalRepository) *ProposalUseCase {
	uc := NewProposalUseCase(repo)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func vehicleQuote() entities.Quote {
	return entities.Quote{
		Kind:     entities.ProductKindVehicle,
		Personal: entities.Personal{Name: "Ana Souza", Email: "ana@example.com", CPF: "123.456.789-09"},
		Details:  entities.VehicleDetails{Brand: "honda", Model: "civic", Year: "2022", Plate: "abc-1234"},
	}
}

func TestProposalUseCase_Simulate(t *testing.T) {
	t.Run("invalid kind", func(t *testing.T) {
		uc := newProposalUseCase(nil)
		_, err := uc.Simulate(context.Background(), SimulateCommand{Quote: entities.Quote{Kind: 9}})
		if !errors.Is(err, ErrInvalidProductKind) {
			t.Fatalf("expected ErrInvalidProductKind, got %v", err)
		}
	})

	t.Run("field-tagged validation", func(t *testing.T) {
		uc := newProposalUseCase(nil)
		q := vehicleQuote()
		q.Personal.CPF = "111.111.111-11"
		q.Details = entities.VehicleDetails{Year: "two thousand"}

		_, err := uc.Simulate(context.Background(), SimulateCommand{Quote: q})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if verr.Fields["cpf"] != MsgInvalidCPF || verr.Fields["ano"] != MsgInvalidYear {
			t.Fatalf("unexpected fields: %v", verr.Fields)
		}
	})

	t.Run("missing cpf without session", func(t *testing.T) {
		uc := newProposalUseCase(nil)
		_, err := uc.Simulate(context.Background(), SimulateCommand{Quote: entities.Quote{Kind: entities.ProductKindPhone}})
		if !errors.Is(err, ErrInvalidCustomerCPF) {
			t.Fatalf("expected ErrInvalidCustomerCPF, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := newProposalUseCase(repo)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Proposal{}, errors.New("db"))

		_, err := uc.Simulate(context.Background(), SimulateCommand{Quote: vehicleQuote()})
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("creates pending vehicle proposal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := newProposalUseCase(repo)

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Proposal{})).DoAndReturn(
			func(_ context.Context, p entities.Proposal) (entities.Proposal, error) {
				if p.Status != entities.ProposalStatusPendente || p.IDSeguro != entities.ProductKindVehicle {
					t.Fatalf("unexpected proposal: %+v", p)
				}
				if p.CPFCliente != "12345678909" || p.DesUsuario != "Ana Souza" {
					t.Fatalf("unexpected customer: %s %s", p.CPFCliente, p.DesUsuario)
				}
				if !p.PremioBruto.Equal(decimal.RequireFromString("1944")) || p.Parcelas != 12 || !p.VlrParcela.Equal(decimal.RequireFromString("162")) {
					t.Fatalf("unexpected pricing: %s x%d %s", p.PremioBruto, p.Parcelas, p.VlrParcela)
				}
				if p.Placa != "ABC-1234" || p.IMEI != "" || p.CIB != "" {
					t.Fatalf("unexpected discriminants: %+v", p.Discriminants())
				}
				if p.VlrProdutoSegurado != nil {
					t.Fatalf("vehicle insured value should be null")
				}
				if p.ProdutoSegurado != "honda civic 2022 - Placa abc-1234" {
					t.Fatalf("unexpected description %q", p.ProdutoSegurado)
				}
				if p.Detalhes["marca"] != "honda" || p.Detalhes["type"] != "" {
					t.Fatalf("unexpected details %v", p.Detalhes)
				}
				p.ApoliceID = 501
				return p, nil
			},
		)

		res, err := uc.Simulate(context.Background(), SimulateCommand{Quote: vehicleQuote()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ApoliceID != 501 {
			t.Fatalf("expected store-assigned id, got %d", res.ApoliceID)
		}
	})

	t.Run("session identity fills the gaps", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := newProposalUseCase(repo)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Proposal) (entities.Proposal, error) {
				if p.CPFCliente != "12345678909" || p.DesUsuario != "Ana" {
					t.Fatalf("unexpected customer: %s %s", p.CPFCliente, p.DesUsuario)
				}
				if p.CIB != "01310100" {
					t.Fatalf("expected cep as cib, got %q", p.CIB)
				}
				if !p.PremioBruto.Equal(decimal.RequireFromString("1050")) {
					t.Fatalf("unexpected premium %s", p.PremioBruto)
				}
				return p, nil
			},
		)

		q := entities.Quote{
			Kind:    entities.ProductKindHome,
			Details: entities.HomeDetails{Type: "apartamento", ZipCode: "01310-100", Value: "350.000,00"},
		}
		if _, err := uc.Simulate(context.Background(), SimulateCommand{Quote: q, CustomerCPF: "123.456.789-09", CustomerName: "Ana"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestProposalUseCase_Effectuate(t *testing.T) {
	pending := entities.Proposal{
		ApoliceID: 501,
		IDSeguro:  entities.ProductKindVehicle,
		Status:    entities.ProposalStatusPendente,
		Placa:     "ABC-1234",
	}

	validations := []struct {
		name string
		cmd  EffectuateCommand
		want error
	}{
		{"invalid id", EffectuateCommand{ApoliceID: 0, IDSeguro: 1, Status: 1}, ErrInvalidApoliceID},
		{"status zero", EffectuateCommand{ApoliceID: 501, IDSeguro: 1, Status: 0}, ErrInvalidTargetStatus},
		{"status three", EffectuateCommand{ApoliceID: 501, IDSeguro: 1, Status: 3}, ErrInvalidTargetStatus},
		{"invalid kind", EffectuateCommand{ApoliceID: 501, IDSeguro: 7, Status: 1}, ErrInvalidProductKind},
	}
	for _, tc := range validations {
		t.Run(tc.name, func(t *testing.T) {
			uc := newProposalUseCase(nil)
			_, err := uc.Effectuate(context.Background(), tc.cmd)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := newProposalUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), int64(501)).Return(entities.Proposal{}, nil)

		_, err := uc.Effectuate(context.Background(), EffectuateCommand{ApoliceID: 501, IDSeguro: 1, Status: 1})
		if !errors.Is(err, ErrProposalNotFound) {
			t.Fatalf("expected ErrProposalNotFound, got %v", err)
		}
	})

	t.Run("kind mismatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := newProposalUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), int64(501)).Return(pending, nil)

		_, err := uc.Effectuate(context.Background(), EffectuateCommand{ApoliceID: 501, IDSeguro: entities.ProductKindPhone, Status: 1})
		if !errors.Is(err, ErrProductKindMismatch) {
			t.Fatalf("expected ErrProductKindMismatch, got %v", err)
		}
	})

	for _, st := range []entities.ProposalStatus{entities.ProposalStatusAprovada, entities.ProposalStatusRejeitada} {
		t.Run("terminal "+st.Label(), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := mock_interfaces.NewMockIProposalRepository(ctrl)
			uc := newProposalUseCase(repo)

			done := pending
			done.Status = st
			repo.EXPECT().GetByID(gomock.Any(), int64(501)).Return(done, nil)

			_, err := uc.Effectuate(context.Background(), EffectuateCommand{ApoliceID: 501, IDSeguro: 1, Status: 2})
			if !errors.Is(err, ErrProposalNotPending) {
				t.Fatalf("expected ErrProposalNotPending, got %v", err)
			}
		})
	}

	t.Run("lost race at the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := newProposalUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), int64(501)).Return(pending, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), int64(501), entities.ProposalStatusAprovada, gomock.Any()).
			Return(entities.Proposal{}, interfaces.ErrProposalStatusConflict)

		_, err := uc.Effectuate(context.Background(), EffectuateCommand{ApoliceID: 501, IDSeguro: 1, Status: 1})
		if !errors.Is(err, ErrProposalNotPending) {
			t.Fatalf("expected ErrProposalNotPending, got %v", err)
		}
	})

	t.Run("approve forwards only the relevant discriminant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := newProposalUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), int64(501)).Return(pending, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), int64(501), entities.ProposalStatusAprovada, entities.Discriminants{Placa: "XYZ-9876"}).
			DoAndReturn(func(_ context.Context, id int64, st entities.ProposalStatus, d entities.Discriminants) (entities.Proposal, error) {
				out := pending
				out.Status = st
				out.Placa = d.Placa
				return out, nil
			})

		res, err := uc.Effectuate(context.Background(), EffectuateCommand{
			ApoliceID:     501,
			IDSeguro:      entities.ProductKindVehicle,
			Status:        1,
			Discriminants: entities.Discriminants{Placa: "XYZ-9876", IMEI: "ignored"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsPolicy() || res.Placa != "XYZ-9876" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestProposalUseCase_Reads(t *testing.T) {
	list := []entities.Proposal{
		{ApoliceID: 1, IDSeguro: entities.ProductKindVehicle, CPFCliente: "12345678909", Status: entities.ProposalStatusPendente},
		{ApoliceID: 2, IDSeguro: entities.ProductKindHome, CPFCliente: "12345678909", Status: entities.ProposalStatusAprovada},
		{ApoliceID: 3, IDSeguro: entities.ProductKindPhone, CPFCliente: "12345678909", Status: entities.ProposalStatusRejeitada},
	}

	t.Run("get by id not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := newProposalUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), int64(9)).Return(entities.Proposal{}, nil)
		if _, err := uc.GetByID(context.Background(), 9); !errors.Is(err, ErrProposalNotFound) {
			t.Fatalf("expected ErrProposalNotFound, got %v", err)
		}
	})

	t.Run("list with filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := newProposalUseCase(repo)

		repo.EXPECT().List(gomock.Any()).Return(list, nil)
		got, err := uc.List(context.Background(), views.Filter{Status: "all", Kind: "home"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].ApoliceID != 2 {
			t.Fatalf("unexpected list: %+v", got)
		}
	})

	t.Run("pending by customer normalizes cpf", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := newProposalUseCase(repo)

		repo.EXPECT().ListByCustomer(gomock.Any(), "12345678909").Return(list, nil)
		got, err := uc.ListPendingByCustomer(context.Background(), "123.456.789-09")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].ApoliceID != 1 {
			t.Fatalf("unexpected list: %+v", got)
		}
	})

	t.Run("invalid customer cpf", func(t *testing.T) {
		uc := newProposalUseCase(nil)
		if _, err := uc.ListByCustomer(context.Background(), "abc"); !errors.Is(err, ErrInvalidCustomerCPF) {
			t.Fatalf("expected ErrInvalidCustomerCPF, got %v", err)
		}
	})

	t.Run("portfolio hides rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := newProposalUseCase(repo)

		repo.EXPECT().ListByCustomer(gomock.Any(), "12345678909").Return(list, nil)
		got, err := uc.CustomerPortfolio(context.Background(), "12345678909")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.Active) != 1 || len(got.Pending) != 1 {
			t.Fatalf("unexpected portfolio: %+v", got)
		}
	})

	t.Run("staff metrics", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProposalRepository(ctrl)
		uc := newProposalUseCase(repo)

		repo.EXPECT().List(gomock.Any()).Return(list, nil)
		got, err := uc.StaffMetrics(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != (views.Metrics{Total: 3, PendingCount: 1, ApprovedCount: 1, RejectedCount: 1}) {
			t.Fatalf("unexpected metrics: %+v", got)
		}
	})
}
