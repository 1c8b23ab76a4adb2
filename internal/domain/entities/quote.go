package entities

// Field names used on the wire by the simulate endpoint.
const (
	FieldNome     = "nome"
	FieldEmail    = "email"
	FieldTelefone = "telefone"
	FieldCPF      = "cpf"

	FieldMarca  = "marca"
	FieldModelo = "modelo"
	FieldAno    = "ano"
	FieldPlaca  = "placa"
	FieldCEP    = "cep"
	FieldUso    = "uso"
	FieldTipo   = "tipo"
	FieldArea   = "area"
	FieldValor  = "valor"
	FieldIMEI   = "imei"
)

// PersonalFields are collected on the first wizard step for every product.
var PersonalFields = []string{FieldNome, FieldEmail, FieldTelefone, FieldCPF}

// ProductFields returns the step-two field set for a kind, in display order.
func ProductFields(kind ProductKind) []string {
	switch kind {
	case ProductKindVehicle:
		return []string{FieldMarca, FieldModelo, FieldAno, FieldPlaca, FieldCEP, FieldUso}
	case ProductKindHome:
		return []string{FieldTipo, FieldArea, FieldCEP, FieldValor}
	case ProductKindPhone:
		return []string{FieldMarca, FieldModelo, FieldIMEI, FieldValor}
	}
	return nil
}

// Personal identifies the customer requesting a quote.
type Personal struct {
	Name  string
	Email string
	Phone string
	CPF   string
}

func (p Personal) Fields() map[string]string {
	return map[string]string{
		FieldNome:     p.Name,
		FieldEmail:    p.Email,
		FieldTelefone: p.Phone,
		FieldCPF:      p.CPF,
	}
}

// QuoteDetails is the product-specific part of a quote. Exactly one
// implementation exists per ProductKind.
type QuoteDetails interface {
	Kind() ProductKind
	Fields() map[string]string
}

type VehicleDetails struct {
	Brand   string
	Model   string
	Year    string
	Plate   string
	ZipCode string
	Usage   string
}

func (VehicleDetails) Kind() ProductKind { return ProductKindVehicle }

func (d VehicleDetails) Fields() map[string]string {
	return map[string]string{
		FieldMarca:  d.Brand,
		FieldModelo: d.Model,
		FieldAno:    d.Year,
		FieldPlaca:  d.Plate,
		FieldCEP:    d.ZipCode,
		FieldUso:    d.Usage,
	}
}

type HomeDetails struct {
	Type    string
	Area    string
	ZipCode string
	Value   string
}

func (HomeDetails) Kind() ProductKind { return ProductKindHome }

func (d HomeDetails) Fields() map[string]string {
	return map[string]string{
		FieldTipo:  d.Type,
		FieldArea:  d.Area,
		FieldCEP:   d.ZipCode,
		FieldValor: d.Value,
	}
}

type PhoneDetails struct {
	Brand string
	Model string
	IMEI  string
	Value string
}

func (PhoneDetails) Kind() ProductKind { return ProductKindPhone }

func (d PhoneDetails) Fields() map[string]string {
	return map[string]string{
		FieldMarca:  d.Brand,
		FieldModelo: d.Model,
		FieldIMEI:   d.IMEI,
		FieldValor:  d.Value,
	}
}

// NewQuoteDetails builds the typed details for kind from a flat field bag.
// Missing fields stay empty.
func NewQuoteDetails(kind ProductKind, f map[string]string) QuoteDetails {
	switch kind {
	case ProductKindVehicle:
		return VehicleDetails{
			Brand:   f[FieldMarca],
			Model:   f[FieldModelo],
			Year:    f[FieldAno],
			Plate:   f[FieldPlaca],
			ZipCode: f[FieldCEP],
			Usage:   f[FieldUso],
		}
	case ProductKindHome:
		return HomeDetails{
			Type:    f[FieldTipo],
			Area:    f[FieldArea],
			ZipCode: f[FieldCEP],
			Value:   f[FieldValor],
		}
	case ProductKindPhone:
		return PhoneDetails{
			Brand: f[FieldMarca],
			Model: f[FieldModelo],
			IMEI:  f[FieldIMEI],
			Value: f[FieldValor],
		}
	}
	return nil
}

// NewPersonal builds Personal from a flat field bag.
func NewPersonal(f map[string]string) Personal {
	return Personal{
		Name:  f[FieldNome],
		Email: f[FieldEmail],
		Phone: f[FieldTelefone],
		CPF:   f[FieldCPF],
	}
}

// Quote is a complete simulation request.
type Quote struct {
	Kind     ProductKind
	Personal Personal
	Details  QuoteDetails
	// Extra keeps fields outside the known sets so they still reach the store.
	Extra map[string]string
}

// Payload collapses the quote to the flat {type, ...fields} body sent to /simulate.
// Empty values are omitted, so an empty quote yields {"type": kind}.
func (q Quote) Payload() map[string]string {
	out := map[string]string{"type": q.Kind.Name()}
	merge := func(m map[string]string) {
		for k, v := range m {
			if v != "" {
				out[k] = v
			}
		}
	}
	merge(q.Extra)
	merge(q.Personal.Fields())
	if q.Details != nil {
		merge(q.Details.Fields())
	}
	return out
}
