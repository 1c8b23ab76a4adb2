package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	request "corretora_seguros/internal/adapter/http/dto/request"
	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/domain/views"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBoardAPI struct {
	mu        sync.Mutex
	list      []entities.Proposal
	fetchErr  error
	effectErr error
	fetches   int
	requests  []request.EffectuateRequest
	// block, when set, holds FetchProposals until ctx is done.
	block bool
}

func (f *fakeBoardAPI) FetchProposals(ctx context.Context, _ views.Filter) ([]entities.Proposal, error) {
	f.mu.Lock()
	f.fetches++
	block, err := f.block, f.fetchErr
	list := append([]entities.Proposal(nil), f.list...)
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return list, err
}

func (f *fakeBoardAPI) Effectuate(_ context.Context, in request.EffectuateRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, in)
	if f.effectErr != nil {
		return "", f.effectErr
	}
	for i, p := range f.list {
		if p.ApoliceID == in.IDApolice {
			status, _ := entities.ProposalStatusFromCode(in.Status)
			f.list[i].Status = status
		}
	}
	return "Proposta 7 rejeitada", nil
}

func homeProposal() entities.Proposal {
	return entities.Proposal{ApoliceID: 7, IDSeguro: entities.ProductKindHome, CPFCliente: "12345678909", Status: entities.ProposalStatusPendente, CIB: "01310100", Placa: "ignored"}
}

func TestProposalBoard_EffectuateRefetches(t *testing.T) {
	api := &fakeBoardAPI{list: []entities.Proposal{homeProposal()}}
	b := NewProposalBoard(api)
	defer b.Close()
	ctx := context.Background()

	require.True(t, b.Load(ctx).Success)
	require.Len(t, b.Pending(), 1)

	note := b.Effectuate(ctx, b.Pending()[0], views.ActionReject)
	require.True(t, note.Success)
	assert.Equal(t, "Proposta 7 rejeitada", note.Message)
	assert.Equal(t, 2, api.fetches)

	// only the discriminant of the proposal's kind is sent
	assert.Equal(t, request.EffectuateRequest{IDApolice: 7, IDSeguro: 3, Status: 2, CIB: "01310100"}, api.requests[0])

	assert.Empty(t, b.Pending())
	require.Len(t, b.Rejected(), 1)
	assert.Empty(t, b.Actions(b.Rejected()[0]))
	assert.Equal(t, 1, b.Metrics().RejectedCount)
}

func TestProposalBoard_FailureKeepsList(t *testing.T) {
	api := &fakeBoardAPI{list: []entities.Proposal{homeProposal()}}
	b := NewProposalBoard(api)
	defer b.Close()
	ctx := context.Background()
	require.True(t, b.Load(ctx).Success)

	api.effectErr = &APIError{Status: http.StatusInternalServerError, Message: "An internal error occurred"}
	note := b.Effectuate(ctx, homeProposal(), views.ActionApprove)
	assert.False(t, note.Success)
	assert.Equal(t, KindServer, note.Kind)
	assert.Len(t, b.Pending(), 1)
	assert.Equal(t, 1, api.fetches)

	api.fetchErr = errors.New("boom")
	assert.False(t, b.Load(ctx).Success)
	assert.Len(t, b.Pending(), 1)
}

func TestProposalBoard_ConflictRefetches(t *testing.T) {
	approved := homeProposal()
	approved.Status = entities.ProposalStatusAprovada
	api := &fakeBoardAPI{list: []entities.Proposal{homeProposal()}}
	b := NewProposalBoard(api)
	defer b.Close()
	ctx := context.Background()
	require.True(t, b.Load(ctx).Success)

	// another staff member approved it meanwhile
	api.list = []entities.Proposal{approved}
	api.effectErr = &APIError{Status: http.StatusConflict, Code: "PROPOSAL_NOT_PENDING", Message: "Proposal is no longer pending"}

	note := b.Effectuate(ctx, homeProposal(), views.ActionReject)
	assert.False(t, note.Success)
	assert.Empty(t, b.Pending())
	assert.Len(t, b.Approved(), 1)
}

func TestProposalBoard_CloseCancelsAndDropsWrites(t *testing.T) {
	api := &fakeBoardAPI{block: true}
	b := NewProposalBoard(api)

	done := make(chan Result)
	go func() { done <- b.Load(context.Background()) }()

	// wait for the fetch to start before closing
	for {
		api.mu.Lock()
		started := api.fetches > 0
		api.mu.Unlock()
		if started {
			break
		}
	}
	b.Close()

	res := <-done
	assert.False(t, res.Success)
	assert.True(t, b.Closed())
	assert.False(t, b.Effectuate(context.Background(), homeProposal(), views.ActionApprove).Success)
	assert.Empty(t, api.requests)
}

type fakePortfolioAPI struct {
	list []entities.Proposal
}

func (f fakePortfolioAPI) FetchByCustomer(_ context.Context, cpf string) ([]entities.Proposal, error) {
	return views.Where(f.list, func(p entities.Proposal) bool { return p.CPFCliente == cpf }), nil
}

// staggeredBoardAPI serves one list per fetch; the first fetch is held until
// release is closed.
type staggeredBoardAPI struct {
	fakeBoardAPI
	lists   [][]entities.Proposal
	calls   int
	started chan struct{}
	release chan struct{}
}

func (f *staggeredBoardAPI) FetchProposals(_ context.Context, _ views.Filter) ([]entities.Proposal, error) {
	f.mu.Lock()
	n := f.calls
	f.calls++
	f.mu.Unlock()

	if n == 0 {
		close(f.started)
		<-f.release
	}
	return f.lists[n], nil
}

func TestProposalBoard_StaleLoadIsDropped(t *testing.T) {
	older := homeProposal()
	newer := homeProposal()
	newer.Status = entities.ProposalStatusAprovada
	api := &staggeredBoardAPI{
		lists:   [][]entities.Proposal{{older}, {newer}},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	b := NewProposalBoard(api)
	defer b.Close()

	first := make(chan Result)
	go func() { first <- b.Load(context.Background()) }()
	<-api.started

	require.True(t, b.Load(context.Background()).Success)
	require.Len(t, b.Approved(), 1)

	close(api.release)
	assert.True(t, (<-first).Success)
	assert.Len(t, b.Approved(), 1, "late response must not replace the newer list")
	assert.Empty(t, b.Pending())
}

func TestPortfolioView_HidesRejected(t *testing.T) {
	rejected := homeProposal()
	rejected.ApoliceID, rejected.Status = 8, entities.ProposalStatusRejeitada
	active := homeProposal()
	active.ApoliceID, active.Status = 9, entities.ProposalStatusAprovada

	v := NewPortfolioView(fakePortfolioAPI{list: []entities.Proposal{homeProposal(), rejected, active}}, "12345678909")
	defer v.Close()

	require.True(t, v.Load(context.Background()).Success)
	assert.Len(t, v.Pending(), 1)
	require.Len(t, v.Active(), 1)
	assert.Equal(t, int64(9), v.Active()[0].ApoliceID)
}
