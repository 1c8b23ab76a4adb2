package request

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"corretora_seguros/internal/domain/entities"
)

var (
	ErrMissingType = errors.New("missing type")
	ErrUnknownType = errors.New("unknown type")
)

// SimulateRequest is the flat {type, ...fields} body of POST /simulate.
// Values may be JSON strings or numbers; everything is kept as text.
type SimulateRequest map[string]any

// ToQuote splits the flat body into the typed quote. Keys outside the
// personal and product field sets are kept in Extra.
func (r SimulateRequest) ToQuote() (entities.Quote, error) {
	fields := make(map[string]string, len(r))
	for k, v := range r {
		if s, ok := stringify(v); ok {
			fields[strings.TrimSpace(k)] = s
		}
	}

	rawType := fields["type"]
	delete(fields, "type")
	if rawType == "" {
		return entities.Quote{}, ErrMissingType
	}
	kind, ok := entities.ParseProductKind(rawType)
	if !ok {
		return entities.Quote{}, fmt.Errorf("%w: %q", ErrUnknownType, rawType)
	}

	extra := map[string]string{}
	known := map[string]bool{}
	for _, f := range entities.PersonalFields {
		known[f] = true
	}
	for _, f := range entities.ProductFields(kind) {
		known[f] = true
	}
	for k, v := range fields {
		if !known[k] {
			extra[k] = v
		}
	}

	return entities.Quote{
		Kind:     kind,
		Personal: entities.NewPersonal(fields),
		Details:  entities.NewQuoteDetails(kind, fields),
		Extra:    extra,
	}, nil
}

func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return strings.TrimSpace(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}
