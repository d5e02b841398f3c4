// Package pdf implementa la versión imprimible del roteiro de un producto.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Producto + Categoría │  Paso inicial + Fecha        │
//	│  Tipos de atendimento / pessoa                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PASO: Título (ID)                                           │
//	│        Contenido en texto plano                              │
//	│        TABLA: Orden | Botón | Destino                        │
//	│        Tabulaciones sugeridas                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ... un bloque por paso, en orden del almacén                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.ScriptPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.ScriptPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	text ports.TextExtractor
	now  func() time.Time
}

// NewMarotoPDFGenerator construye el generador; text convierte el HTML de cada paso.
func NewMarotoPDFGenerator(text ports.TextExtractor) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{text: text, now: time.Now}
}

// GenerateScript genera el PDF del roteiro y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateScript(product *entity.Product, steps []*entity.ScriptStep) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Roteiro "+product.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(product, g.now()))
	m.AddRows(tagsRow(product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	titles := make(map[string]string, len(steps))
	for _, s := range steps {
		titles[s.ID] = s.Title
	}
	for _, s := range steps {
		m.AddRows(g.stepRows(s, s.ID == product.ScriptID, titles)...)
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	}
	if len(steps) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("El producto no tiene pasos cargados.", props.Text{Size: 9, Top: 3, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: producto + categoría (izq) y paso inicial + fecha (der).
func headerRow(product *entity.Product, at time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(product.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Categoría: "+nonEmpty(product.Category, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ROTEIRO DE ATENDIMENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Inicio: "+nonEmpty(product.ScriptID, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tagsRow: tipos de atendimento y de pessoa soportados.
func tagsRow(product *entity.Product) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Atendimento: %s   |   Pessoa: %s",
				nonEmpty(strings.Join(product.AttendanceTypes, ", "), "—"),
				nonEmpty(strings.Join(product.PersonTypes, ", "), "—"),
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

// stepRows: título, contenido, tabla de botones y tabulaciones de un paso.
func (g *MarotoPDFGenerator) stepRows(s *entity.ScriptStep, entry bool, titles map[string]string) []core.Row {
	title := s.Title
	if entry {
		title += "  (inicio)"
	}
	rows := []core.Row{
		row.New(8).Add(
			col.New(9).Add(text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
			})),
			col.New(3).Add(text.New(s.ID, props.Text{
				Size: 7, Align: align.Right, Color: colorGray, Top: 3,
			})),
		),
	}

	content := s.Content
	if g.text != nil {
		content = g.text.PlainText(s.Content)
	}
	if content != "" {
		rows = append(rows, row.New().Add(col.New(12).Add(
			text.New(content, props.Text{Size: 9, Top: 1, Bottom: 2, Left: 2}),
		)))
	}

	buttons := s.SortedButtons()
	if len(buttons) > 0 {
		rows = append(rows, buttonHeaderRow())
		for _, b := range buttons {
			rows = append(rows, buttonRow(b, titles))
		}
	}

	if len(s.Tabulations) > 0 {
		names := make([]string, 0, len(s.Tabulations))
		for _, t := range s.Tabulations {
			names = append(names, t.Name)
		}
		rows = append(rows, row.New(7).Add(col.New(12).Add(
			text.New("Tabulaciones sugeridas: "+strings.Join(names, ", "), props.Text{
				Size: 8, Top: 2, Left: 2, Color: colorGray,
			}),
		)))
	}
	return rows
}

// buttonHeaderRow: cabecera de la tabla de botones con fondo azul simulado.
func buttonHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(7).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Orden", 1, align.Center),
		h("Botón", 5, align.Left),
		h("Destino", 6, align.Left),
	)
}

// buttonRow: una fila por botón; sin destino el roteiro termina.
func buttonRow(b entity.Button, titles map[string]string) core.Row {
	label := b.Label
	if b.Primary {
		label += " (principal)"
	}
	return row.New(6).Add(
		col.New(1).Add(text.New(fmt.Sprintf("%d", b.Order), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(5).Add(text.New(label, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(6).Add(text.New(target(b, titles), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// target describe el destino del botón; un destino inexistente se marca para revisión.
func target(b entity.Button, titles map[string]string) string {
	if b.NextStepID == nil {
		return "Fin del roteiro"
	}
	t, ok := titles[*b.NextStepID]
	if !ok {
		return *b.NextStepID + " (paso inexistente)"
	}
	return fmt.Sprintf("%s (%s)", t, *b.NextStepID)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
