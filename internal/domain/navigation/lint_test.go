package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/navigation"
)

func TestLint_DetectaColgantesEInalcanzables(t *testing.T) {
	steps := seed().steps["prod"]
	steps = append(steps, step("huerfano", "Huérfano", btn("x", ptr("inicio"))))

	r := navigation.Lint("inicio", steps)
	assert.False(t, r.OK())
	assert.False(t, r.MissingEntry)
	assert.Equal(t, []navigation.DanglingRef{{StepID: "oferta", ButtonID: "quebrado", NextStepID: "nao-existe"}}, r.Dangling)
	assert.Equal(t, []string{"huerfano"}, r.Unreachable)
}

func TestLint_GrafoSanoConCiclos(t *testing.T) {
	steps := []*entity.ScriptStep{
		step("a", "A", btn("1", ptr("b"))),
		step("b", "B", btn("2", ptr("a")), btn("3", nil)),
	}
	r := navigation.Lint("a", steps)
	assert.True(t, r.OK())
}

func TestLint_SinEntrada(t *testing.T) {
	r := navigation.Lint("z", []*entity.ScriptStep{step("a", "A")})
	assert.True(t, r.MissingEntry)
	assert.Equal(t, []string{"a"}, r.Unreachable)
}
