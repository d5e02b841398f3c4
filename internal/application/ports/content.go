package ports

// ContentSanitizer limpia el HTML enriquecido de los pasos antes de persistirlo.
type ContentSanitizer interface {
	Sanitize(html string) string
}

// TextExtractor convierte HTML en texto plano (PDF, resúmenes).
type TextExtractor interface {
	PlainText(html string) string
}
