package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Kind classifies a failed call.
type Kind string

const (
	KindValidation Kind = "validation"
	KindServer     Kind = "server"
	KindNetwork    Kind = "network"
	KindUnknown    Kind = "unknown"
)

// Result is the normalized outcome every view action hands back.
// Error is already translated and safe to show in a notification.
type Result struct {
	Success bool
	Message string
	Error   string
	Kind    Kind
	Fields  map[string]string
}

func ok(message string) Result {
	return Result{Success: true, Message: message}
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

// NetworkError means no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

const (
	msgNetwork = "Não foi possível conectar ao servidor. Verifique sua conexão e tente novamente."
	msgServer  = "Erro no servidor. Tente novamente em alguns instantes."
	msgUnknown = "Ocorreu um erro inesperado. Tente novamente."
)

// translations maps backend messages, matched case-insensitively as substrings,
// to the text shown to the user.
var translations = []struct {
	match string
	text  string
}{
	{"cpf inválido", "CPF inválido. Confira os 11 dígitos informados."},
	{"invalid customer cpf", "CPF inválido. Confira os 11 dígitos informados."},
	{"email already registered", "Este e-mail já está cadastrado. Faça login ou use outro e-mail."},
	{"e-mail inválido", "E-mail inválido. Use o formato nome@dominio.com."},
	{"invalid credentials", "E-mail ou senha incorretos."},
	{"authentication required", "Sua sessão expirou. Faça login novamente."},
	{"access denied", "Você não tem permissão para esta ação."},
	{"proposal is no longer pending", "Esta proposta já foi processada. A lista foi atualizada."},
	{"proposal not found", "Proposta não encontrada."},
	{"product kind does not match", "O tipo de seguro não corresponde à proposta."},
	{"target status must be", "Ação inválida para esta proposta."},
	{"policy not found", "Apólice não encontrada."},
	{"proposal not approved", "Somente apólices aprovadas podem ser pagas."},
	{"all installments already paid", "Todas as parcelas desta apólice já foram pagas."},
	{"payment already in progress", "Já existe um pagamento em andamento para esta parcela."},
	{"a senha deve ter pelo menos", "A senha deve ter pelo menos 8 caracteres."},
}

// Translate returns the localized text for a backend message, or msg itself
// when no entry matches.
func Translate(msg string) string {
	lower := strings.ToLower(strings.TrimSpace(msg))
	if lower == "" {
		return msgUnknown
	}
	for _, t := range translations {
		if strings.Contains(lower, t.match) {
			return t.text
		}
	}
	return msg
}

// Normalize turns any error returned by this package into a failed Result.
func Normalize(err error) Result {
	if err == nil {
		return ok("")
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return Result{Error: msgNetwork, Kind: KindNetwork}
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return Result{Error: msgUnknown, Kind: KindUnknown}
	}

	switch {
	case apiErr.Status >= http.StatusInternalServerError:
		return Result{Error: msgServer, Kind: KindServer}
	case apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnprocessableEntity:
		r := Result{Error: Translate(apiErr.Message), Kind: KindValidation}
		if len(apiErr.Fields) > 0 {
			r.Fields = make(map[string]string, len(apiErr.Fields))
			for k, v := range apiErr.Fields {
				r.Fields[k] = Translate(v)
			}
			r.Error = joinFields(r.Fields)
		}
		return r
	default:
		return Result{Error: Translate(apiErr.Message), Kind: KindUnknown}
	}
}

func joinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seen := map[string]bool{}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if msg := fields[k]; !seen[msg] {
			seen[msg] = true
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, " ")
}
