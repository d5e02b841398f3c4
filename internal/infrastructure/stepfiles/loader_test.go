package stepfiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "inicio": {
    "title": "Abertura",
    "content": "<p>Bom dia</p>",
    "buttons": [
      {"id": "b1", "label": "Seguir", "order": 1, "primary": true, "nextStepId": "oferta"},
      {"id": "b2", "label": "Encerrar", "order": 2, "nextStepId": ""}
    ],
    "tabulations": [{"id": "t1", "name": "Sem interesse"}]
  },
  "oferta": {"title": "Oferta", "content": "", "buttons": []},
  "alfa": {"title": "Alfa", "content": ""}
}`

func TestParse_ConservaOrdenDelArchivo(t *testing.T) {
	steps, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, "inicio", steps[0].ID)
	assert.Equal(t, "oferta", steps[1].ID)
	assert.Equal(t, "alfa", steps[2].ID)

	require.Len(t, steps[0].Buttons, 2)
	require.NotNil(t, steps[0].Buttons[0].NextStepID)
	assert.Equal(t, "oferta", *steps[0].Buttons[0].NextStepID)
	assert.Nil(t, steps[0].Buttons[1].NextStepID)
	assert.Equal(t, []entity.StepTabulation{{ID: "t1", Name: "Sem interesse"}}, steps[0].Tabulations)
}

func TestParse_Invalidos(t *testing.T) {
	cases := map[string]string{
		"no objeto":   `[1, 2]`,
		"truncado":    `{"a": {"title": "x"}`,
		"id vacio":    `{"": {"title": "x"}}`,
		"repetido":    `{"a": {}, "a": {}}`,
		"paso no obj": `{"a": 3}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestLoader_ListaPermitida(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, entity.StepFilePJ), []byte(sample), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "otro.json"), []byte(sample), 0o644))
	l := NewLoader(dir)

	steps, err := l.Load(entity.StepFilePJ)
	require.NoError(t, err)
	assert.Len(t, steps, 3)

	for _, name := range []string{"otro.json", "../" + entity.StepFilePJ, "sub/" + entity.StepFileAtivo, ""} {
		_, err := l.Load(name)
		assert.ErrorIs(t, err, domain.ErrFileNotAllowed, name)
	}

	_, err = l.Load(entity.StepFileAtivo)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
