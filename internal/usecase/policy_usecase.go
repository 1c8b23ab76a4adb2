package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/infrastructure/document"
	"corretora_seguros/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPolicyNotFound  = errors.New("policy not found")
	ErrInvalidPolicyID = errors.New("invalid policy id")
)

// PolicyInput is the writable part of a policy record. A zero Status means
// active on create and "keep current" on update.
type PolicyInput struct {
	CustomerCPF  string
	CustomerName string
	Type         entities.ProductKind
	Description  string
	Premium      decimal.Decimal
	Coverage     decimal.Decimal
	Status       entities.PolicyStatus
	StartDate    time.Time
	EndDate      time.Time
}

// IPolicyUseCase backs the generic /policies API and its PDF document.

type IPolicyUseCase interface {
	Create(ctx context.Context, in PolicyInput) (entities.Policy, error)
	GetByID(ctx context.Context, id string) (entities.Policy, error)
	List(ctx context.Context) ([]entities.Policy, error)
	ListByCustomer(ctx context.Context, cpf string) ([]entities.Policy, error)
	Update(ctx context.Context, id string, in PolicyInput) (entities.Policy, error)
	Delete(ctx context.Context, id string) error
	Document(ctx context.Context, id string) (entities.Policy, []byte, error)
}

type PolicyUseCase struct {
	repo interfaces.IPolicyRepository
	now  func() time.Time
}

var _ IPolicyUseCase = (*PolicyUseCase)(nil)

func NewPolicyUseCase(repo interfaces.IPolicyRepository) *PolicyUseCase {
	return &PolicyUseCase{repo: repo, now: time.Now}
}

func (u *PolicyUseCase) Create(ctx context.Context, in PolicyInput) (entities.Policy, error) {
	if in.Status == "" {
		in.Status = entities.PolicyStatusActive
	}
	if fields := validatePolicy(in); len(fields) > 0 {
		return entities.Policy{}, &ValidationError{Fields: fields}
	}

	now := u.now().UTC()
	p := entities.Policy{
		ID:           uuid.NewString(),
		CustomerCPF:  OnlyDigits(in.CustomerCPF),
		CustomerName: strings.TrimSpace(in.CustomerName),
		Type:         in.Type,
		Description:  strings.TrimSpace(in.Description),
		Premium:      in.Premium,
		Coverage:     in.Coverage,
		Status:       in.Status,
		StartDate:    in.StartDate.UTC(),
		EndDate:      in.EndDate.UTC(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[policy][usecase] create failed err=%v", err)
		return entities.Policy{}, err
	}
	log.Printf("[policy][usecase] created id=%s type=%s", created.ID, created.Type)
	return created, nil
}

func (u *PolicyUseCase) GetByID(ctx context.Context, id string) (entities.Policy, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Policy{}, ErrInvalidPolicyID
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Policy{}, err
	}
	if p.ID == "" {
		return entities.Policy{}, ErrPolicyNotFound
	}
	return p, nil
}

func (u *PolicyUseCase) List(ctx context.Context) ([]entities.Policy, error) {
	return u.repo.List(ctx)
}

// ListByCustomer keeps the policies held by cpf.
func (u *PolicyUseCase) ListByCustomer(ctx context.Context, cpf string) ([]entities.Policy, error) {
	cpf = OnlyDigits(cpf)
	if cpf == "" {
		return []entities.Policy{}, nil
	}
	all, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Policy, 0, len(all))
	for _, p := range all {
		if OnlyDigits(p.CustomerCPF) == cpf {
			out = append(out, p)
		}
	}
	return out, nil
}

func (u *PolicyUseCase) Update(ctx context.Context, id string, in PolicyInput) (entities.Policy, error) {
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Policy{}, err
	}
	if in.Status == "" {
		in.Status = current.Status
	}
	if fields := validatePolicy(in); len(fields) > 0 {
		return entities.Policy{}, &ValidationError{Fields: fields}
	}

	current.CustomerCPF = OnlyDigits(in.CustomerCPF)
	current.CustomerName = strings.TrimSpace(in.CustomerName)
	current.Type = in.Type
	current.Description = strings.TrimSpace(in.Description)
	current.Premium = in.Premium
	current.Coverage = in.Coverage
	current.Status = in.Status
	current.StartDate = in.StartDate.UTC()
	current.EndDate = in.EndDate.UTC()
	current.UpdatedAt = u.now().UTC()

	updated, err := u.repo.Update(ctx, current)
	if err != nil {
		return entities.Policy{}, err
	}
	if updated.ID == "" {
		return entities.Policy{}, ErrPolicyNotFound
	}
	log.Printf("[policy][usecase] updated id=%s status=%s", updated.ID, updated.Status)
	return updated, nil
}

func (u *PolicyUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidPolicyID
	}
	old, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if old.ID == "" {
		return ErrPolicyNotFound
	}
	log.Printf("[policy][usecase] deleted id=%s", id)
	return nil
}

// Document renders the policy as a one-page PDF.
// Document renders the PDF of a policy and returns the record it was built
// from, so callers can check ownership before sending it.
func (u *PolicyUseCase) Document(ctx context.Context, id string) (entities.Policy, []byte, error) {
	p, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Policy{}, nil, err
	}
	out, err := document.RenderPDF(policyPage(p))
	if err != nil {
		return entities.Policy{}, nil, fmt.Errorf("policy: render pdf: %w", err)
	}
	return p, out, nil
}

func policyPage(p entities.Policy) document.Page {
	return document.Page{
		Title: "Apólice " + p.ID,
		Lines: []string{
			"Produto: " + p.Type.Label(),
			"Cliente: " + p.CustomerName,
			"CPF: " + p.CustomerCPF,
			"Descrição: " + p.Description,
			"Prêmio: " + entities.FormatBRL(p.Premium),
			"Cobertura: " + entities.FormatBRL(p.Coverage),
			"Vigência: " + entities.FormatDate(p.StartDate) + " a " + entities.FormatDate(p.EndDate),
			"Situação: " + p.Status.Label(),
		},
	}
}

func validatePolicy(in PolicyInput) map[string]string {
	fields := map[string]string{}
	if !ValidCPF(in.CustomerCPF) {
		fields["customerCpf"] = MsgInvalidCPF
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		fields["customerName"] = "Nome obrigatório"
	}
	if !in.Type.Valid() {
		fields["type"] = "Tipo de seguro inválido"
	}
	if in.Premium.IsNegative() {
		fields["premium"] = MsgInvalidValue
	}
	if in.Coverage.IsNegative() {
		fields["coverage"] = MsgInvalidValue
	}
	if !in.Status.Valid() {
		fields["status"] = "Situação inválida"
	}
	if !in.StartDate.IsZero() && !in.EndDate.IsZero() && in.EndDate.Before(in.StartDate) {
		fields["endDate"] = "Fim da vigência anterior ao início"
	}
	return fields
}
