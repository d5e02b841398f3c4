package htmltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizer_QuitaScriptsYEventos(t *testing.T) {
	s := NewSanitizer()
	out := s.Sanitize(`<p onclick="x()">Olá <strong>cliente</strong></p><script>alert(1)</script>`)
	assert.Equal(t, `<p>Olá <strong>cliente</strong></p>`, out)
}

func TestExtractor_PlainText(t *testing.T) {
	e := NewExtractor()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"vacío", "  ", ""},
		{"párrafos", "<p>Bom dia,</p><p>  tudo   bem?</p>", "Bom dia,\ntudo bem?"},
		{"lista", "<ul><li>Um</li><li>Dois</li></ul>", "• Um\n• Dois"},
		{"sin marcas", "texto simples", "texto simples"},
		{"script", "<p>a</p><script>x()</script>", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.PlainText(tt.in))
		})
	}
}
