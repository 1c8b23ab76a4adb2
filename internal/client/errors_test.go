package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	assert.Equal(t, "E-mail ou senha incorretos.", Translate("Invalid credentials"))
	assert.Equal(t, "Este e-mail já está cadastrado. Faça login ou use outro e-mail.", Translate("Email already registered"))
	assert.Equal(t, "CPF inválido. Confira os 11 dígitos informados.", Translate("CPF inválido"))
	assert.Equal(t, "Mensagem nova do backend", Translate("Mensagem nova do backend"))
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		kind  Kind
		error string
	}{
		{"network", &NetworkError{Err: errors.New("connection refused")}, KindNetwork, msgNetwork},
		{"deadline", context.DeadlineExceeded, KindNetwork, msgNetwork},
		{"server", &APIError{Status: http.StatusInternalServerError, Message: "An internal error occurred"}, KindServer, msgServer},
		{"validation", &APIError{Status: http.StatusBadRequest, Message: "Invalid request"}, KindValidation, "Invalid request"},
		{"conflict", &APIError{Status: http.StatusConflict, Message: "Proposal is no longer pending"}, KindUnknown, "Esta proposta já foi processada. A lista foi atualizada."},
		{"plain error", errors.New("boom"), KindUnknown, msgUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Normalize(tc.err)
			assert.False(t, res.Success)
			assert.Equal(t, tc.kind, res.Kind)
			assert.Equal(t, tc.error, res.Error)
		})
	}

	t.Run("field messages", func(t *testing.T) {
		res := Normalize(&APIError{
			Status:  http.StatusBadRequest,
			Message: "Invalid fields",
			Fields:  map[string]string{"cpf": "CPF inválido", "email": "E-mail inválido"},
		})
		assert.Equal(t, KindValidation, res.Kind)
		assert.Equal(t, "CPF inválido. Confira os 11 dígitos informados. E-mail inválido. Use o formato nome@dominio.com.", res.Error)
		assert.Equal(t, "CPF inválido. Confira os 11 dígitos informados.", res.Fields["cpf"])
	})

	t.Run("nil is success", func(t *testing.T) {
		assert.True(t, Normalize(nil).Success)
	})
}
