package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PolicyStatus is the status of a record in the generic policies API.
type PolicyStatus string

const (
	PolicyStatusActive    PolicyStatus = "active"
	PolicyStatusCancelled PolicyStatus = "cancelled"
	PolicyStatusExpired   PolicyStatus = "expired"
)

// Label is the customer-facing status text.
func (s PolicyStatus) Label() string {
	switch s {
	case PolicyStatusActive:
		return "Ativa"
	case PolicyStatusCancelled:
		return "Cancelada"
	case PolicyStatusExpired:
		return "Expirada"
	}
	return string(s)
}

func (s PolicyStatus) Valid() bool {
	switch s {
	case PolicyStatusActive, PolicyStatusCancelled, PolicyStatusExpired:
		return true
	}
	return false
}

// Policy is a record of the generic /policies CRUD API.
//
// Storage model (DynamoDB):
//   - PK: id (uuid)
type Policy struct {
	ID           string
	CustomerCPF  string
	CustomerName string
	Type         ProductKind
	Description  string
	Premium      decimal.Decimal
	Coverage     decimal.Decimal
	Status       PolicyStatus
	StartDate    time.Time
	EndDate      time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
