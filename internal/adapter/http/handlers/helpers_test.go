package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"corretora_seguros/internal/adapter/http/handlers/mocks"
	"corretora_seguros/internal/adapter/http/middleware"
	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/usecase/interfaces"
	"corretora_seguros/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

var (
	customerClaims = interfaces.Claims{UserID: "u-1", Name: "Ana", Email: "ana@example.com", CPF: "12345678909", Role: entities.RoleCliente}
	staffClaims    = interfaces.Claims{UserID: "s-1", Name: "Bruno", Email: "bruno@corretora.com", Role: entities.RoleFuncionario}
)

// sessionAs authenticates every request with claims.
func sessionAs(ctrl *gomock.Controller, claims interfaces.Claims) gin.HandlerFunc {
	auth := mocks.NewMockIAuthUseCase(ctrl)
	auth.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(claims, nil).AnyTimes()
	return middleware.Authenticate(auth)
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) pkg.HTTPError {
	t.Helper()
	var e pkg.HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	return e
}
