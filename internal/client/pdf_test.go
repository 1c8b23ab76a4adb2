package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"corretora_seguros/internal/config"
	"corretora_seguros/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingOpener struct {
	docs []Document
	err  error
}

func (o *recordingOpener) Open(_ context.Context, doc Document) error {
	o.docs = append(o.docs, doc)
	return o.err
}

func samplePolicy() entities.Policy {
	return entities.Policy{
		ID:           "pol-42",
		CustomerCPF:  "12345678909",
		CustomerName: "Ana <Souza>",
		Type:         entities.ProductKindHome,
		Premium:      decimal.RequireFromString("1050"),
		Coverage:     decimal.RequireFromString("350000"),
		Status:       entities.PolicyStatusActive,
	}
}

func TestPolicyDocument_FallbackWhenDisabled(t *testing.T) {
	c := New(config.ClientConfig{APIBaseURL: "http://127.0.0.1:1/v1"}, nil)

	pdf, err := c.DownloadPolicyPDF(context.Background(), "pol-42")
	require.NoError(t, err)
	assert.Nil(t, pdf)

	opener := &recordingOpener{}
	res := PolicyDocument(context.Background(), c, samplePolicy(), opener)
	require.True(t, res.Success)
	require.Len(t, opener.docs, 1)

	doc := opener.docs[0]
	html := string(doc.Body)
	assert.Equal(t, "text/html; charset=utf-8", doc.ContentType)
	assert.Contains(t, html, "<title>Apólice pol-42</title>")
	assert.Contains(t, html, "window.print()")
	assert.Contains(t, html, "Ana &lt;Souza&gt;")
	assert.Contains(t, html, "R$ 350.000,00")
	assert.Contains(t, html, "Ativa")
}

func TestPolicyDocument_ServerPDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/policies/pol-42/pdf") {
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4 test"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(config.ClientConfig{APIBaseURL: srv.URL + "/v1", PoliciesAPIEnabled: true}, nil)
	opener := &recordingOpener{}

	require.True(t, PolicyDocument(context.Background(), c, samplePolicy(), opener).Success)
	require.Len(t, opener.docs, 1)
	assert.Equal(t, "application/pdf", opener.docs[0].ContentType)
	assert.Equal(t, "apolice-pol-42.pdf", opener.docs[0].Name)

	// unknown policy: the endpoint 404s and the print page is used
	other := samplePolicy()
	other.ID = "pol-99"
	require.True(t, PolicyDocument(context.Background(), c, other, opener).Success)
	require.Len(t, opener.docs, 2)
	assert.Contains(t, string(opener.docs[1].Body), "<title>Apólice pol-99</title>")
}

func TestPolicyDocument_OpenerFailure(t *testing.T) {
	c := New(config.ClientConfig{APIBaseURL: "http://127.0.0.1:1/v1"}, nil)
	res := PolicyDocument(context.Background(), c, samplePolicy(), &recordingOpener{err: errors.New("no browser")})
	assert.False(t, res.Success)
	assert.Equal(t, "Não foi possível abrir o documento da apólice.", res.Error)
}
