// Package views projects the proposal list into the role-specific read models
// shown by the customer and staff dashboards.
//
// Every function here is a pure function of its input slice: nothing is cached
// and the input is never mutated.
package views

import (
	"strings"

	"corretora_seguros/internal/domain/entities"
)

// All is the wildcard accepted by both filters.
const All = "all"

// Filter selects proposals by status and product kind. Empty fields and All
// match everything.
type Filter struct {
	Status string
	Kind   string
}

// kindByIDSeguro is the lookup table from idSeguro to the kind filter value.
var kindByIDSeguro = map[entities.ProductKind]string{
	entities.ProductKindVehicle: "vehicle",
	entities.ProductKindPhone:   "phone",
	entities.ProductKindHome:    "home",
}

func isWildcard(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, All)
}

// MatchStatus is string equality on the status code.
func MatchStatus(status string) func(entities.Proposal) bool {
	return func(p entities.Proposal) bool {
		if isWildcard(status) {
			return true
		}
		return string(p.Status) == strings.TrimSpace(status)
	}
}

// MatchKind compares the proposal's idSeguro, through the lookup table, with kind.
// kind may be a name (vehicle) or a numeric id (1).
func MatchKind(kind string) func(entities.Proposal) bool {
	want := strings.ToLower(strings.TrimSpace(kind))
	if parsed, ok := entities.ParseProductKind(want); ok {
		want = kindByIDSeguro[parsed]
	}
	return func(p entities.Proposal) bool {
		if isWildcard(kind) {
			return true
		}
		return kindByIDSeguro[p.IDSeguro] == want
	}
}

// Where keeps the proposals matching every predicate.
func Where(list []entities.Proposal, preds ...func(entities.Proposal) bool) []entities.Proposal {
	out := make([]entities.Proposal, 0, len(list))
next:
	for _, p := range list {
		for _, pred := range preds {
			if !pred(p) {
				continue next
			}
		}
		out = append(out, p)
	}
	return out
}

// Apply runs the status and kind predicates over list.
func (f Filter) Apply(list []entities.Proposal) []entities.Proposal {
	return Where(list, MatchStatus(f.Status), MatchKind(f.Kind))
}
