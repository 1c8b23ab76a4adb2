// Package wizard implements the three-step quote intake:
// personal data, product-specific data, then review and submit.
package wizard

import (
	"context"
	"log"
	"sort"

	"corretora_seguros/internal/domain/entities"
)

// Step numbers.
const (
	StepPersonal = 1
	StepProduct  = 2
	StepReview   = 3
)

// Messages shown after a submission.
const (
	MsgSubmitFailed  = "Não foi possível enviar sua cotação. Tente novamente."
	msgSubmitSuccess = "Cotação enviada com sucesso! Valor estimado: "
)

// Simulator sends the flat quote payload to the simulate endpoint.
type Simulator interface {
	Simulate(ctx context.Context, payload map[string]string) (entities.Simulation, error)
}

// Result is what Submit hands back to the view. It never carries a Go error:
// failures are already converted into a user-facing message.
type Result struct {
	Success    bool
	Message    string
	Simulation *entities.Simulation
}

// Wizard holds the intake state for a single product kind.
//
// It performs no validation: any field may be empty when advancing or
// submitting. The server is the one that rejects malformed data.
type Wizard struct {
	kind      entities.ProductKind
	step      int
	personal  entities.Personal
	details   entities.QuoteDetails
	extra     map[string]string
	simulator Simulator
	onClose   func()
}

// Option customises a Wizard.
type Option func(*Wizard)

// WithOnClose registers the callback run after a successful submission.
func WithOnClose(fn func()) Option {
	return func(w *Wizard) { w.onClose = fn }
}

func New(kind entities.ProductKind, simulator Simulator, opts ...Option) *Wizard {
	w := &Wizard{kind: kind, simulator: simulator}
	w.reset()
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Wizard) reset() {
	w.step = StepPersonal
	w.personal = entities.Personal{}
	w.details = entities.NewQuoteDetails(w.kind, nil)
	w.extra = map[string]string{}
}

func (w *Wizard) Kind() entities.ProductKind { return w.kind }

func (w *Wizard) CurrentStep() int { return w.step }

// Advance moves to the next step; it is a no-op on the review step.
func (w *Wizard) Advance() {
	if w.step < StepReview {
		w.step++
	}
}

// Retreat moves to the previous step; it is a no-op on the first step.
func (w *Wizard) Retreat() {
	if w.step > StepPersonal {
		w.step--
	}
}

// SetField stores value under name. Last write wins; nothing is coerced.
func (w *Wizard) SetField(name, value string) {
	if setPersonal(&w.personal, name, value) {
		return
	}
	if d, ok := setDetail(w.details, name, value); ok {
		w.details = d
		return
	}
	w.extra[name] = value
}

// Field returns the current value of name.
func (w *Wizard) Field(name string) string {
	return w.Quote().Payload()[name]
}

// StepFields lists the inputs rendered on the current step. The review step
// has no inputs.
func (w *Wizard) StepFields() []string {
	switch w.step {
	case StepPersonal:
		return entities.PersonalFields
	case StepProduct:
		return entities.ProductFields(w.kind)
	}
	return nil
}

// Personal returns the step-one data.
func (w *Wizard) Personal() entities.Personal { return w.personal }

// Vehicle returns the vehicle details; ok is false for other kinds.
func (w *Wizard) Vehicle() (entities.VehicleDetails, bool) {
	d, ok := w.details.(entities.VehicleDetails)
	return d, ok
}

// Home returns the home details; ok is false for other kinds.
func (w *Wizard) Home() (entities.HomeDetails, bool) {
	d, ok := w.details.(entities.HomeDetails)
	return d, ok
}

// Phone returns the phone details; ok is false for other kinds.
func (w *Wizard) Phone() (entities.PhoneDetails, bool) {
	d, ok := w.details.(entities.PhoneDetails)
	return d, ok
}

// Quote returns the typed quote collected so far.
func (w *Wizard) Quote() entities.Quote {
	extra := make(map[string]string, len(w.extra))
	for k, v := range w.extra {
		extra[k] = v
	}
	return entities.Quote{Kind: w.kind, Personal: w.personal, Details: w.details, Extra: extra}
}

// Entry is a single line of the review summary.
type Entry struct {
	Field string
	Value string
}

// Section groups summary entries under a title.
type Section struct {
	Title   string
	Entries []Entry
}

// Summary is the read-only review of everything collected, grouped by section.
func (w *Wizard) Summary() []Section {
	personal := w.personal.Fields()
	out := []Section{{Title: "Dados pessoais", Entries: entries(entities.PersonalFields, personal)}}

	if w.details != nil {
		out = append(out, Section{
			Title:   w.kind.Label(),
			Entries: entries(entities.ProductFields(w.kind), w.details.Fields()),
		})
	}

	if len(w.extra) > 0 {
		names := make([]string, 0, len(w.extra))
		for k := range w.extra {
			names = append(names, k)
		}
		sort.Strings(names)
		out = append(out, Section{Title: "Outros", Entries: entries(names, w.extra)})
	}
	return out
}

func entries(order []string, values map[string]string) []Entry {
	out := make([]Entry, 0, len(order))
	for _, f := range order {
		out = append(out, Entry{Field: f, Value: values[f]})
	}
	return out
}

// Submit sends the collected quote. On success the wizard resets to step one
// with empty data and the close callback runs; on failure the state is kept.
func (w *Wizard) Submit(ctx context.Context) Result {
	payload := w.Quote().Payload()
	if w.simulator == nil {
		log.Printf("[quote][wizard] submit without simulator kind=%s", w.kind)
		return Result{Message: MsgSubmitFailed}
	}

	sim, err := w.simulator.Simulate(ctx, payload)
	if err != nil {
		log.Printf("[quote][wizard] submit failed kind=%s err=%v", w.kind, err)
		return Result{Message: MsgSubmitFailed}
	}

	w.reset()
	if w.onClose != nil {
		w.onClose()
	}
	return Result{
		Success:    true,
		Message:    msgSubmitSuccess + entities.FormatBRL(sim.Value),
		Simulation: &sim,
	}
}

func setPersonal(p *entities.Personal, name, value string) bool {
	switch name {
	case entities.FieldNome:
		p.Name = value
	case entities.FieldEmail:
		p.Email = value
	case entities.FieldTelefone:
		p.Phone = value
	case entities.FieldCPF:
		p.CPF = value
	default:
		return false
	}
	return true
}

func setDetail(d entities.QuoteDetails, name, value string) (entities.QuoteDetails, bool) {
	switch v := d.(type) {
	case entities.VehicleDetails:
		switch name {
		case entities.FieldMarca:
			v.Brand = value
		case entities.FieldModelo:
			v.Model = value
		case entities.FieldAno:
			v.Year = value
		case entities.FieldPlaca:
			v.Plate = value
		case entities.FieldCEP:
			v.ZipCode = value
		case entities.FieldUso:
			v.Usage = value
		default:
			return d, false
		}
		return v, true
	case entities.HomeDetails:
		switch name {
		case entities.FieldTipo:
			v.Type = value
		case entities.FieldArea:
			v.Area = value
		case entities.FieldCEP:
			v.ZipCode = value
		case entities.FieldValor:
			v.Value = value
		default:
			return d, false
		}
		return v, true
	case entities.PhoneDetails:
		switch name {
		case entities.FieldMarca:
			v.Brand = value
		case entities.FieldModelo:
			v.Model = value
		case entities.FieldIMEI:
			v.IMEI = value
		case entities.FieldValor:
			v.Value = value
		default:
			return d, false
		}
		return v, true
	}
	return d, false
}
