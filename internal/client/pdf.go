package client

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"net/url"

	"corretora_seguros/internal/domain/entities"
)

// Document is a file handed to the Opener.
type Document struct {
	Name        string
	ContentType string
	Body        []byte
}

// Opener shows a document to the user: a browser tab, a viewer, a file on disk.
type Opener interface {
	Open(ctx context.Context, doc Document) error
}

// DownloadPolicyPDF fetches the server-rendered document. It returns nil, nil
// when the policies API is disabled or the endpoint does not answer with a document.
func (c *Client) DownloadPolicyPDF(ctx context.Context, id string) ([]byte, error) {
	if !c.policiesEnabled {
		return nil, nil
	}

	res, err := c.send(ctx, http.MethodGet, "/policies/"+url.PathEscape(id)+"/pdf", nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound, res.StatusCode == http.StatusNotImplemented:
		return nil, nil
	case res.StatusCode < 200 || res.StatusCode > 299:
		return nil, readAPIError(res)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read policy pdf: %w", err)
	}
	if len(b) == 0 {
		return nil, nil
	}
	return b, nil
}

// PDFSource is the download half of the policy document flow.
type PDFSource interface {
	DownloadPolicyPDF(ctx context.Context, id string) ([]byte, error)
}

// PolicyDocument opens the policy PDF, or a printable HTML page when no PDF is available.
func PolicyDocument(ctx context.Context, src PDFSource, p entities.Policy, opener Opener) Result {
	pdf, err := src.DownloadPolicyPDF(ctx, p.ID)
	if err != nil {
		log.Printf("[client][pdf] download failed policy_id=%s err=%v", p.ID, err)
		return Normalize(err)
	}

	doc := Document{Name: "apolice-" + p.ID + ".pdf", ContentType: "application/pdf", Body: pdf}
	if pdf == nil {
		html, err := RenderPrintHTML(p)
		if err != nil {
			log.Printf("[client][pdf] fallback render failed policy_id=%s err=%v", p.ID, err)
			return Result{Error: msgUnknown, Kind: KindUnknown}
		}
		doc = Document{Name: "apolice-" + p.ID + ".html", ContentType: "text/html; charset=utf-8", Body: html}
	}

	if err := opener.Open(ctx, doc); err != nil {
		log.Printf("[client][pdf] open failed policy_id=%s err=%v", p.ID, err)
		return Result{Error: "Não foi possível abrir o documento da apólice.", Kind: KindUnknown}
	}
	return ok("")
}

var printTemplate = template.Must(template.New("policy").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Apólice {{.ID}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 2rem; }
dt { font-weight: bold; margin-top: .5rem; }
</style>
</head>
<body>
<h1>Apólice {{.ID}}</h1>
<dl>
<dt>Cliente</dt><dd>{{.CustomerName}} ({{.CustomerCPF}})</dd>
<dt>Produto</dt><dd>{{.Product}}</dd>
{{- if .Description}}
<dt>Descrição</dt><dd>{{.Description}}</dd>
{{- end}}
<dt>Prêmio</dt><dd>{{.Premium}}</dd>
<dt>Cobertura</dt><dd>{{.Coverage}}</dd>
<dt>Situação</dt><dd>{{.Status}}</dd>
{{- if .Period}}
<dt>Vigência</dt><dd>{{.Period}}</dd>
{{- end}}
</dl>
<script>window.onload = function () { window.print(); };</script>
</body>
</html>
`))

// RenderPrintHTML builds the print-to-PDF page for p.
func RenderPrintHTML(p entities.Policy) ([]byte, error) {
	period := ""
	if !p.StartDate.IsZero() || !p.EndDate.IsZero() {
		period = entities.FormatDate(p.StartDate) + " a " + entities.FormatDate(p.EndDate)
	}
	data := struct {
		ID, CustomerName, CustomerCPF, Product, Description string
		Premium, Coverage, Status, Period                   string
	}{
		ID:           p.ID,
		CustomerName: p.CustomerName,
		CustomerCPF:  p.CustomerCPF,
		Product:      p.Type.Label(),
		Description:  p.Description,
		Premium:      entities.FormatBRL(p.Premium),
		Coverage:     entities.FormatBRL(p.Coverage),
		Status:       p.Status.Label(),
		Period:       period,
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
