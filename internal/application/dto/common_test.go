package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/roteiro-api/internal/application/dto"
)

func TestPageRequest_DefaultPage(t *testing.T) {
	tests := []struct {
		name       string
		in         dto.PageRequest
		wantLimit  int
		wantOffset int
	}{
		{"vacía", dto.PageRequest{}, dto.DefaultPageLimit, 0},
		{"límite negativo", dto.PageRequest{Limit: -5, Offset: 10}, dto.DefaultPageLimit, 10},
		{"límite excedido", dto.PageRequest{Limit: 500}, dto.MaxPageLimit, 0},
		{"offset negativo", dto.PageRequest{Limit: 50, Offset: -3}, 50, 0},
		{"válida", dto.PageRequest{Limit: 100, Offset: 40}, 100, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := tt.in
			page.DefaultPage()
			assert.Equal(t, tt.wantLimit, page.Limit)
			assert.Equal(t, tt.wantOffset, page.Offset)
		})
	}
}
