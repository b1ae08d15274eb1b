package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	domproduct "example.com/productgrid/internal/domain/product"
	griduc "example.com/productgrid/internal/usecase/grid"
)

const (
	PDFFileName    = "export.pdf"
	PDFContentType = "application/pdf"
)

// PDFExporter renders the dataset as an HTML table and converts it with
// Gotenberg.
type PDFExporter struct {
	Endpoint string
	Client   *http.Client
	Title    string
}

func (p *PDFExporter) Export(ctx context.Context, products []domproduct.Product, columns []griduc.Column) (*griduc.Document, error) {
	if p == nil {
		return nil, fmt.Errorf("pdf exporter not initialised")
	}
	endpoint := strings.TrimRight(p.Endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("gotenberg endpoint required")
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, buildHTML(p.Title, products, columns)); err != nil {
		return nil, err
	}
	if err := writer.WriteField("landscape", "true"); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("gotenberg response %d: %s", resp.StatusCode, string(data))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &griduc.Document{FileName: PDFFileName, ContentType: PDFContentType, Data: data}, nil
}

func buildHTML(title string, products []domproduct.Product, columns []griduc.Column) string {
	var b strings.Builder
	b.WriteString("<html><head><meta charset=\"utf-8\"><style>")
	b.WriteString("body{font-family:sans-serif;margin:24px;}h1{font-size:18px;}table{width:100%;border-collapse:collapse;}th,td{border:1px solid #ddd;padding:6px;}th{text-align:left;background:#f5f5f5;}td.num{text-align:right;}")
	b.WriteString("</style></head><body>")
	if title != "" {
		b.WriteString("<h1>")
		b.WriteString(templateEscape(title))
		b.WriteString("</h1>")
	}

	b.WriteString("<table><thead><tr>")
	for _, col := range columns {
		b.WriteString("<th>")
		b.WriteString(templateEscape(col.Title))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, p := range products {
		b.WriteString("<tr>")
		for _, col := range columns {
			value, _ := p.FieldValue(col.Field)
			if _, numeric := asDecimal(value); numeric {
				b.WriteString("<td class=\"num\">")
			} else {
				b.WriteString("<td>")
			}
			b.WriteString(templateEscape(formatCell(value, col.Format)))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table></body></html>")
	return b.String()
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&#39;",
)

func templateEscape(v string) string {
	return htmlEscaper.Replace(v)
}
