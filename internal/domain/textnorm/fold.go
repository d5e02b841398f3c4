// Package textnorm normaliza texto para comparaciones tolerantes a mayúsculas y acentos.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold quita acentos y aplica case folding: "Abordagem Inicial" y "ABORDÁGEM inicial" coinciden.
// Los transformers de x/text no son seguros para uso concurrente; se crean por llamada.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// Contains informa si needle aparece en haystack tras normalizar ambos.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
