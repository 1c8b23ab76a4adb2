package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"corretora_seguros/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPolicyType  = errors.New("invalid policy type")
	ErrInvalidPolicyMoney = errors.New("invalid policy amount")
	ErrInvalidPolicyDate  = errors.New("invalid policy date")
)

// PolicyRequest is the body of POST /policies and PUT /policies/:id.
// Type accepts the kind name or its numeric id; dates accept YYYY-MM-DD or RFC 3339.
type PolicyRequest struct {
	CustomerCPF  string      `json:"customerCpf"`
	CustomerName string      `json:"customerName"`
	Type         json.Number `json:"type"`
	Description  string      `json:"description"`
	Premium      json.Number `json:"premium"`
	Coverage     json.Number `json:"coverage"`
	Status       string      `json:"status"`
	StartDate    string      `json:"startDate"`
	EndDate      string      `json:"endDate"`
}

// UnmarshalJSON lets "type" arrive as either "vehicle" or 1.
func (r *PolicyRequest) UnmarshalJSON(b []byte) error {
	type alias PolicyRequest
	aux := struct {
		Type any `json:"type"`
		*alias
	}{alias: (*alias)(r)}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&aux); err != nil {
		return err
	}
	switch t := aux.Type.(type) {
	case json.Number:
		r.Type = t
	case string:
		r.Type = json.Number(t)
	}
	return nil
}

func (r PolicyRequest) ResolveType() (entities.ProductKind, error) {
	kind, ok := entities.ParseProductKind(r.Type.String())
	if !ok {
		return 0, ErrInvalidPolicyType
	}
	return kind, nil
}

func (r PolicyRequest) ResolveStatus() entities.PolicyStatus {
	return entities.PolicyStatus(strings.ToLower(strings.TrimSpace(r.Status)))
}

// ResolveAmounts returns premium and coverage; missing values are zero.
func (r PolicyRequest) ResolveAmounts() (decimal.Decimal, decimal.Decimal, error) {
	parse := func(n json.Number) (decimal.Decimal, error) {
		if n == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero, ErrInvalidPolicyMoney
		}
		return d, nil
	}
	premium, err := parse(r.Premium)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	coverage, err := parse(r.Coverage)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return premium, coverage, nil
}

func (r PolicyRequest) ResolveDates() (time.Time, time.Time, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidPolicyDate
}

// FromPolicy builds the body a consumer sends to create or update p.
func FromPolicy(p entities.Policy) PolicyRequest {
	date := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	}
	return PolicyRequest{
		CustomerCPF:  p.CustomerCPF,
		CustomerName: p.CustomerName,
		Type:         json.Number(strconv.Itoa(int(p.Type))),
		Description:  p.Description,
		Premium:      json.Number(p.Premium.StringFixed(2)),
		Coverage:     json.Number(p.Coverage.StringFixed(2)),
		Status:       string(p.Status),
		StartDate:    date(p.StartDate),
		EndDate:      date(p.EndDate),
	}
}
