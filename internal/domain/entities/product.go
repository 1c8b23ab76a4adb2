package entities

import (
	"strconv"
	"strings"
)

// ProductKind is the insurance category discriminant (idSeguro).
//
// The numeric values are part of the wire contract with the proposal store
// and must never be renumbered.
type ProductKind int

const (
	ProductKindVehicle ProductKind = 1
	ProductKindPhone   ProductKind = 2
	ProductKindHome    ProductKind = 3
)

// AllProductKinds lists the kinds in display order.
var AllProductKinds = []ProductKind{ProductKindVehicle, ProductKindHome, ProductKindPhone}

func (k ProductKind) Valid() bool {
	switch k {
	case ProductKindVehicle, ProductKindPhone, ProductKindHome:
		return true
	}
	return false
}

// Name is the lowercase identifier used in query strings and the simulate payload.
func (k ProductKind) Name() string {
	switch k {
	case ProductKindVehicle:
		return "vehicle"
	case ProductKindPhone:
		return "phone"
	case ProductKindHome:
		return "home"
	}
	return ""
}

// Label is the customer-facing product name.
func (k ProductKind) Label() string {
	switch k {
	case ProductKindVehicle:
		return "Seguro Auto"
	case ProductKindPhone:
		return "Seguro Celular"
	case ProductKindHome:
		return "Seguro Residencial"
	}
	return "Seguro"
}

// Icon is the icon identifier the front end renders next to the label.
func (k ProductKind) Icon() string {
	switch k {
	case ProductKindVehicle:
		return "car"
	case ProductKindPhone:
		return "smartphone"
	case ProductKindHome:
		return "home"
	}
	return "shield"
}

func (k ProductKind) String() string {
	return k.Name()
}

// ParseProductKind accepts the kind name (vehicle/home/phone, plus the Portuguese
// aliases used by the web app) or its numeric id.
func ParseProductKind(s string) (ProductKind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "vehicle", "auto", "veiculo", "veículo", "carro":
		return ProductKindVehicle, true
	case "phone", "celular", "smartphone":
		return ProductKindPhone, true
	case "home", "residencial", "casa", "residencia", "residência":
		return ProductKindHome, true
	}
	if n, err := strconv.Atoi(s); err == nil && ProductKind(n).Valid() {
		return ProductKind(n), true
	}
	return 0, false
}
