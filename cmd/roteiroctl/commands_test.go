package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		lintPath, lintEntry, lintCompany, lintProduct = "", "", "", ""
		jsonOut = false
	})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSteps(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roteiro.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLintScript_ArchivoSano(t *testing.T) {
	path := writeSteps(t, `{
		"inicio": {"title": "Saludo", "buttons": [{"id": "ok", "label": "Seguir", "nextStepId": "fin"}]},
		"fin": {"title": "Cierre", "buttons": [{"id": "x", "label": "Terminar"}]}
	}`)

	out, err := runCLI(t, "lint-script", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
}

func TestLintScript_DestinoInexistente(t *testing.T) {
	path := writeSteps(t, `{
		"inicio": {"title": "Saludo", "buttons": [{"id": "roto", "label": "Seguir", "nextStepId": "fantasma"}]},
		"suelto": {"title": "Sin entrada"}
	}`)

	out, err := runCLI(t, "lint-script", "--path", path, "--json")
	require.Error(t, err)

	var report struct {
		EntryStepID string `json:"entry_step_id"`
		Dangling    []struct {
			NextStepID string `json:"next_step_id"`
		} `json:"dangling"`
		Unreachable []string `json:"unreachable"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "inicio", report.EntryStepID)
	require.Len(t, report.Dangling, 1)
	assert.Equal(t, "fantasma", report.Dangling[0].NextStepID)
	assert.Equal(t, []string{"suelto"}, report.Unreachable)
}

func TestLintScript_SinOrigen(t *testing.T) {
	_, err := runCLI(t, "lint-script")
	assert.EqualError(t, err, "usar --path o --company y --product")
}
