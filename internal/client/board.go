package client

import (
	"context"
	"errors"
	"log"

	request "corretora_seguros/internal/adapter/http/dto/request"
	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/domain/views"
)

// BoardAPI is what the staff board needs from the API.
type BoardAPI interface {
	FetchProposals(ctx context.Context, f views.Filter) ([]entities.Proposal, error)
	Effectuate(ctx context.Context, in request.EffectuateRequest) (string, error)
}

// ProposalBoard is the staff view model: the full proposal list, its status
// buckets and the approve/reject actions.
//
// The list is only ever replaced by a fetch from the API. There is no
// optimistic update: a decision is visible after the refetch that follows it.
type ProposalBoard struct {
	lifecycle
	api BoardAPI

	list     []entities.Proposal
	inFlight map[int64]bool
}

func NewProposalBoard(api BoardAPI) *ProposalBoard {
	b := &ProposalBoard{api: api, inFlight: map[int64]bool{}}
	b.start()
	return b
}

// Load replaces the list with a fresh fetch. On failure the previous list is
// kept, and a fetch overtaken by a newer load is discarded.
func (b *ProposalBoard) Load(ctx context.Context) Result {
	ctx, done := b.scope(ctx)
	defer done()
	seq := b.nextLoad()

	list, err := b.api.FetchProposals(ctx, views.Filter{})
	if err != nil {
		log.Printf("[client][board] fetch failed err=%v", err)
		return Normalize(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return resultClosed
	}
	if !b.claimLoad(seq) {
		log.Printf("[client][board] dropping stale load seq=%d", seq)
		return ok("")
	}
	b.list = list
	return ok("")
}

// Proposals returns the rows matching f.
func (b *ProposalBoard) Proposals(f views.Filter) []entities.Proposal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return f.Apply(b.list)
}

func (b *ProposalBoard) Pending() []entities.Proposal {
	return b.Proposals(views.Filter{Status: string(entities.ProposalStatusPendente)})
}

func (b *ProposalBoard) Approved() []entities.Proposal {
	return b.Proposals(views.Filter{Status: string(entities.ProposalStatusAprovada)})
}

func (b *ProposalBoard) Rejected() []entities.Proposal {
	return b.Proposals(views.Filter{Status: string(entities.ProposalStatusRejeitada)})
}

func (b *ProposalBoard) Metrics() views.Metrics {
	b.mu.Lock()
	defer b.mu.Unlock()
	return views.StaffMetrics(b.list)
}

// Actions returns the row actions for p; none while a decision on it is in flight.
func (b *ProposalBoard) Actions(p entities.Proposal) []views.Action {
	b.mu.Lock()
	busy := b.inFlight[p.ApoliceID]
	b.mu.Unlock()
	if busy {
		return nil
	}
	return views.Actions(p)
}

// Effectuate applies action to p and refetches the list on success.
// The returned Result is the notification to show.
func (b *ProposalBoard) Effectuate(ctx context.Context, p entities.Proposal, action views.Action) Result {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return resultClosed
	}
	if b.inFlight[p.ApoliceID] {
		b.mu.Unlock()
		return Result{Error: "Esta proposta já está sendo processada.", Kind: KindUnknown}
	}
	b.inFlight[p.ApoliceID] = true
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.inFlight, p.ApoliceID)
		b.mu.Unlock()
	}()

	callCtx, done := b.scope(ctx)
	defer done()

	msg, err := b.api.Effectuate(callCtx, EffectuateRequestFor(p, action.TargetStatus))
	if err != nil {
		log.Printf("[client][board] effectuate failed apolice_id=%d action=%s err=%v", p.ApoliceID, action.Name, err)
		res := Normalize(err)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Code == "PROPOSAL_NOT_PENDING" {
			// Someone else decided first; show their outcome.
			b.Load(ctx)
		}
		return res
	}

	if res := b.Load(ctx); !res.Success {
		log.Printf("[client][board] refetch after effectuate failed apolice_id=%d err=%s", p.ApoliceID, res.Error)
	}
	return ok(msg)
}
