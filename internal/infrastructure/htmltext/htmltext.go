package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/microcosm-cc/bluemonday"
)

var (
	_ ports.ContentSanitizer = (*Sanitizer)(nil)
	_ ports.TextExtractor    = (*Extractor)(nil)
)

// Sanitizer limpia el contenido enriquecido con la política UGC de bluemonday
// (formato, listas, enlaces y tablas; sin scripts ni eventos).
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer construye el sanitizador.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("style").OnElements("span", "p")
	p.AllowStyles("color", "background-color", "text-align", "font-weight").Globally()
	return &Sanitizer{policy: p}
}

// Sanitize devuelve el HTML permitido.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}

// Extractor convierte HTML en texto plano con goquery.
type Extractor struct{}

// NewExtractor construye el extractor.
func NewExtractor() *Extractor { return &Extractor{} }

// blockTags elementos que terminan en salto de línea.
var blockTags = "p, div, li, br, h1, h2, h3, h4, h5, h6, tr"

// PlainText texto sin marcas; cada bloque en su propia línea y sin líneas vacías repetidas.
func (Extractor) PlainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	doc.Find("script, style").Remove()
	doc.Find(blockTags).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("• ")
	})

	lines := strings.Split(doc.Text(), "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
