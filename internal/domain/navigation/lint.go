package navigation

import (
	"sort"

	"github.com/jhoicas/roteiro-api/internal/domain/entity"
)

// DanglingRef botón cuyo destino no existe en el producto.
type DanglingRef struct {
	StepID     string `json:"step_id"`
	ButtonID   string `json:"button_id"`
	NextStepID string `json:"next_step_id"`
}

// LintReport problemas estructurales del grafo de un producto.
type LintReport struct {
	EntryStepID  string        `json:"entry_step_id"`
	MissingEntry bool          `json:"missing_entry"`
	Dangling     []DanglingRef `json:"dangling"`
	Unreachable  []string      `json:"unreachable"`
}

// OK informa si el roteiro no tiene problemas.
func (r LintReport) OK() bool {
	return !r.MissingEntry && len(r.Dangling) == 0 && len(r.Unreachable) == 0
}

// Lint recorre el grafo desde entryID y reporta referencias colgantes y pasos inalcanzables.
// Los ciclos están permitidos.
func Lint(entryID string, steps []*entity.ScriptStep) LintReport {
	byID := make(map[string]*entity.ScriptStep, len(steps))
	for _, s := range steps {
		if s != nil {
			byID[s.ID] = s
		}
	}
	report := LintReport{EntryStepID: entryID, Dangling: []DanglingRef{}, Unreachable: []string{}}

	for _, s := range steps {
		if s == nil {
			continue
		}
		for _, b := range s.Buttons {
			if b.NextStepID == nil {
				continue
			}
			if _, ok := byID[*b.NextStepID]; !ok {
				report.Dangling = append(report.Dangling, DanglingRef{StepID: s.ID, ButtonID: b.ID, NextStepID: *b.NextStepID})
			}
		}
	}

	visited := make(map[string]bool, len(byID))
	if _, ok := byID[entryID]; !ok {
		report.MissingEntry = true
	} else {
		queue := []string{entryID}
		visited[entryID] = true
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			for _, b := range byID[id].Buttons {
				if b.NextStepID == nil {
					continue
				}
				next := *b.NextStepID
				if _, ok := byID[next]; ok && !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
	}
	for id := range byID {
		if !visited[id] {
			report.Unreachable = append(report.Unreachable, id)
		}
	}
	sort.Strings(report.Unreachable)
	return report
}
