package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/domain/views"
	"corretora_seguros/internal/infrastructure/metrics"
	"corretora_seguros/internal/usecase/interfaces"
)

var (
	ErrProposalNotFound    = errors.New("proposal not found")
	ErrProposalNotPending  = errors.New("proposal is not pending")
	ErrInvalidApoliceID    = errors.New("invalid apolice id")
	ErrInvalidTargetStatus = errors.New("invalid target status")
	ErrInvalidProductKind  = errors.New("invalid product kind")
	ErrProductKindMismatch = errors.New("product kind does not match proposal")
	ErrInvalidCustomerCPF  = errors.New("invalid customer cpf")
)

// SimulateCommand is a quote submission. CustomerCPF and CustomerName come from
// the authenticated session and fill the gaps left by the quote.
type SimulateCommand struct {
	Quote        entities.Quote
	CustomerCPF  string
	CustomerName string
}

// EffectuateCommand is a staff decision on a pending proposal.
// Status is the numeric target (1 approve, 2 reject).
type EffectuateCommand struct {
	ApoliceID     int64
	IDSeguro      entities.ProductKind
	Status        int
	Discriminants entities.Discriminants
}

// IProposalUseCase exposes the proposal lifecycle:
//   - Simulate => price a quote and store it as a pending proposal
//   - Effectuate => pending -> approved/rejected, the only transition
//   - List*/CustomerPortfolio/StaffMetrics => read projections

type IProposalUseCase interface {
	Simulate(ctx context.Context, cmd SimulateCommand) (entities.Proposal, error)
	GetByID(ctx context.Context, apoliceID int64) (entities.Proposal, error)
	List(ctx context.Context, filter views.Filter) ([]entities.Proposal, error)
	ListPending(ctx context.Context) ([]entities.Proposal, error)
	ListByCustomer(ctx context.Context, cpf string) ([]entities.Proposal, error)
	ListPendingByCustomer(ctx context.Context, cpf string) ([]entities.Proposal, error)
	Effectuate(ctx context.Context, cmd EffectuateCommand) (entities.Proposal, error)
	CustomerPortfolio(ctx context.Context, cpf string) (views.Portfolio, error)
	StaffMetrics(ctx context.Context) (views.Metrics, error)
}

type ProposalUseCase struct {
	repo interfaces.IProposalRepository
	now  func() time.Time
}

var _ IProposalUseCase = (*ProposalUseCase)(nil)

func NewProposalUseCase(repo interfaces.IProposalRepository) *ProposalUseCase {
	return &ProposalUseCase{repo: repo, now: time.Now}
}

func (u *ProposalUseCase) Simulate(ctx context.Context, cmd SimulateCommand) (entities.Proposal, error) {
	q := cmd.Quote
	if !q.Kind.Valid() {
		return entities.Proposal{}, ErrInvalidProductKind
	}
	if q.Details == nil {
		q.Details = entities.NewQuoteDetails(q.Kind, nil)
	}
	if fields := validateQuote(q); len(fields) > 0 {
		return entities.Proposal{}, &ValidationError{Fields: fields}
	}

	cpf := OnlyDigits(q.Personal.CPF)
	if cpf == "" {
		cpf = OnlyDigits(cmd.CustomerCPF)
	}
	if cpf == "" {
		return entities.Proposal{}, ErrInvalidCustomerCPF
	}
	name := strings.TrimSpace(q.Personal.Name)
	if name == "" {
		name = cmd.CustomerName
	}

	now := u.now().UTC()
	pricing := Price(q, now)

	p := entities.Proposal{
		IDSeguro:           q.Kind,
		CPFCliente:         cpf,
		DesUsuario:         name,
		ProdutoNome:        q.Kind.Label(),
		ProdutoSegurado:    describeInsured(q.Details),
		VlrProdutoSegurado: pricing.InsuredValue,
		PremioBruto:        pricing.Premium,
		Parcelas:           pricing.Installments,
		VlrParcela:         pricing.Installment,
		Status:             entities.ProposalStatusPendente,
		Detalhes:           detailsOf(q),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	d := discriminantsOf(q.Details)
	p.Placa, p.IMEI, p.CIB = d.Placa, d.IMEI, d.CIB

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[proposal][usecase] create failed kind=%s cpf=%s err=%v", q.Kind, maskCPF(cpf), err)
		return entities.Proposal{}, err
	}
	metrics.ProposalCreated(q.Kind.Name())
	log.Printf("[proposal][usecase] created apolice_id=%d kind=%s premio=%s", created.ApoliceID, q.Kind, created.PremioBruto.StringFixed(2))
	return created, nil
}

// Effectuate approves or rejects a pending proposal. The pending precondition
// is checked here and again by the store's conditional write, so concurrent
// decisions on the same proposal yield exactly one winner.
func (u *ProposalUseCase) Effectuate(ctx context.Context, cmd EffectuateCommand) (entities.Proposal, error) {
	if cmd.ApoliceID <= 0 {
		return entities.Proposal{}, ErrInvalidApoliceID
	}
	target, ok := entities.ProposalStatusFromCode(cmd.Status)
	if !ok || !target.Terminal() {
		return entities.Proposal{}, ErrInvalidTargetStatus
	}
	if !cmd.IDSeguro.Valid() {
		return entities.Proposal{}, ErrInvalidProductKind
	}

	log.Printf("[proposal][usecase] effectuate start apolice_id=%d target=%s", cmd.ApoliceID, target)
	current, err := u.repo.GetByID(ctx, cmd.ApoliceID)
	if err != nil {
		return entities.Proposal{}, err
	}
	if current.ApoliceID == 0 {
		return entities.Proposal{}, ErrProposalNotFound
	}
	if current.IDSeguro != cmd.IDSeguro {
		log.Printf("[proposal][usecase] kind mismatch apolice_id=%d stored=%s given=%s", cmd.ApoliceID, current.IDSeguro, cmd.IDSeguro)
		return entities.Proposal{}, ErrProductKindMismatch
	}
	if !current.Status.CanTransitionTo(target) {
		log.Printf("[proposal][usecase] not pending apolice_id=%d status=%s", cmd.ApoliceID, current.Status)
		metrics.EffectuateConflict()
		return entities.Proposal{}, ErrProposalNotPending
	}

	updated, err := u.repo.UpdateStatus(ctx, cmd.ApoliceID, target, relevantDiscriminants(current.IDSeguro, cmd.Discriminants))
	if err != nil {
		if errors.Is(err, interfaces.ErrProposalStatusConflict) {
			log.Printf("[proposal][usecase] lost concurrent update apolice_id=%d", cmd.ApoliceID)
			metrics.EffectuateConflict()
			return entities.Proposal{}, ErrProposalNotPending
		}
		return entities.Proposal{}, err
	}
	if updated.ApoliceID == 0 {
		return entities.Proposal{}, ErrProposalNotFound
	}

	metrics.ProposalEffectuated(string(updated.Status))
	log.Printf("[proposal][usecase] effectuate success apolice_id=%d status=%s", updated.ApoliceID, updated.Status)
	return updated, nil
}

func (u *ProposalUseCase) GetByID(ctx context.Context, apoliceID int64) (entities.Proposal, error) {
	if apoliceID <= 0 {
		return entities.Proposal{}, ErrInvalidApoliceID
	}
	p, err := u.repo.GetByID(ctx, apoliceID)
	if err != nil {
		return entities.Proposal{}, err
	}
	if p.ApoliceID == 0 {
		return entities.Proposal{}, ErrProposalNotFound
	}
	return p, nil
}

func (u *ProposalUseCase) List(ctx context.Context, filter views.Filter) ([]entities.Proposal, error) {
	all, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(all), nil
}

func (u *ProposalUseCase) ListPending(ctx context.Context) ([]entities.Proposal, error) {
	return u.repo.ListByStatus(ctx, entities.ProposalStatusPendente)
}

func (u *ProposalUseCase) ListByCustomer(ctx context.Context, cpf string) ([]entities.Proposal, error) {
	cpf = OnlyDigits(cpf)
	if cpf == "" {
		return nil, ErrInvalidCustomerCPF
	}
	return u.repo.ListByCustomer(ctx, cpf)
}

func (u *ProposalUseCase) ListPendingByCustomer(ctx context.Context, cpf string) ([]entities.Proposal, error) {
	list, err := u.ListByCustomer(ctx, cpf)
	if err != nil {
		return nil, err
	}
	return views.Where(list, views.MatchStatus(string(entities.ProposalStatusPendente))), nil
}

func (u *ProposalUseCase) CustomerPortfolio(ctx context.Context, cpf string) (views.Portfolio, error) {
	list, err := u.ListByCustomer(ctx, cpf)
	if err != nil {
		return views.Portfolio{}, err
	}
	return views.CustomerPortfolio(list), nil
}

func (u *ProposalUseCase) StaffMetrics(ctx context.Context) (views.Metrics, error) {
	list, err := u.repo.List(ctx)
	if err != nil {
		return views.Metrics{}, err
	}
	return views.StaffMetrics(list), nil
}

func describeInsured(d entities.QuoteDetails) string {
	join := func(parts ...string) string {
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return strings.Join(out, " ")
	}

	switch v := d.(type) {
	case entities.VehicleDetails:
		s := join(v.Brand, v.Model, v.Year)
		if v.Plate != "" {
			s = join(s, "- Placa", v.Plate)
		}
		return s
	case entities.PhoneDetails:
		s := join(v.Brand, v.Model)
		if v.IMEI != "" {
			s = join(s, "- IMEI", v.IMEI)
		}
		return s
	case entities.HomeDetails:
		s := join(v.Type)
		if v.Area != "" {
			s = join(s, fmt.Sprintf("%sm²", v.Area))
		}
		if v.ZipCode != "" {
			s = join(s, "- CEP", v.ZipCode)
		}
		return s
	}
	return ""
}

// discriminantsOf extracts the identifier of the insured object. Homes have no
// registry number on the quote, so the normalized CEP stands in for the CIB.
func discriminantsOf(d entities.QuoteDetails) entities.Discriminants {
	switch v := d.(type) {
	case entities.VehicleDetails:
		return entities.Discriminants{Placa: strings.ToUpper(strings.TrimSpace(v.Plate))}
	case entities.PhoneDetails:
		return entities.Discriminants{IMEI: OnlyDigits(v.IMEI)}
	case entities.HomeDetails:
		return entities.Discriminants{CIB: OnlyDigits(v.ZipCode)}
	}
	return entities.Discriminants{}
}

func relevantDiscriminants(kind entities.ProductKind, d entities.Discriminants) entities.Discriminants {
	p := entities.Proposal{IDSeguro: kind, Placa: d.Placa, IMEI: d.IMEI, CIB: d.CIB}
	return p.Discriminants()
}

func detailsOf(q entities.Quote) map[string]string {
	out := q.Payload()
	delete(out, "type")
	return out
}

func maskCPF(cpf string) string {
	if len(cpf) < 4 {
		return "***"
	}
	return "***" + cpf[len(cpf)-2:]
}
