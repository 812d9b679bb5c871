// Package pdf implementa a folha imprimível da ordem de produção para o
// chão de fábrica.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Produto + SKU  │  N° da ordem + Data               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORDEM: quantidade a produzir + status + rastreio           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Insumo | Qtd por unidade | Qtd total               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RODAPÉ: assinaturas de produção e conferência              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/mvieira/pedidos-pro/internal/application/usecase"
	"github.com/mvieira/pedidos-pro/internal/domain/entity"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa usecase.ProductionPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator constrói o gerador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

var _ usecase.ProductionPDFGenerator = (*MarotoPDFGenerator)(nil)

// GenerateProductionOrderPDF gera a folha e devolve os bytes.
func (g *MarotoPDFGenerator) GenerateProductionOrderPDF(
	_ context.Context,
	order *entity.ProductionOrder,
	product *entity.Product,
	ingredients []usecase.IngredientForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ordem de Produção", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order, product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(orderRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(ingredients) > 0 {
		m.AddRows(tableHeaderRow())
		for _, r := range tableDetailRows(ingredients) {
			m.AddRows(r)
		}
	} else {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Produto sem receita cadastrada.", props.Text{
				Size: 9, Color: colorGray, Top: 2,
			}),
		)))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: produto + SKU (esq) e número da ordem + data (dir).
func headerRow(order *entity.ProductionOrder, product *entity.Product) core.Row {
	data := order.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(product.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("SKU: "+product.SKU, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEM DE PRODUÇÃO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(order.ID, props.Text{
				Size: 8, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+data, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// orderRow: quantidade a produzir, status e rastreio de origem.
func orderRow(order *entity.ProductionOrder) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("QUANTIDADE A PRODUZIR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.Quantity.String()+" un", props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 6,
			}),
			text.New(fmt.Sprintf("Status: %s   |   Rastreio: %s", order.Status, order.TrackingID),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de insumos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Insumo", 6, align.Left),
		h("Qtd/un", 3, align.Right),
		h("Qtd total", 3, align.Right),
	)
}

// tableDetailRows: uma linha por insumo da receita.
func tableDetailRows(ingredients []usecase.IngredientForPDF) []core.Row {
	result := make([]core.Row, 0, len(ingredients))
	for _, ing := range ingredients {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				ing.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				ing.QuantityPerUnit.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				ing.Total.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// signatureRow: campos de assinatura da produção e da conferência.
func signatureRow() core.Row {
	field := func(label string) core.Col {
		return col.New(6).Add(
			text.New("_______________________________", props.Text{
				Size: 9, Align: align.Center, Top: 8, Color: colorGray,
			}),
			text.New(label, props.Text{
				Size: 8, Align: align.Center, Top: 14, Color: colorGray,
			}),
		)
	}
	return row.New(20).Add(
		field("Responsável pela produção"),
		field("Conferência / aprovação"),
	)
}
