package allocation

import (
	"github.com/shopspring/decimal"

	"github.com/mvieira/pedidos-pro/internal/domain/entity"
)

// Deduction é a baixa de um insumo decorrente de uma ordem de produção.
type Deduction struct {
	IngredientID string
	Quantity     decimal.Decimal
}

// IngredientDeductions multiplica a quantidade por unidade de cada linha da
// receita pela quantidade produzida. Explosão de um único nível: insumo
// fabricado com receita própria não é explodido de novo.
func IngredientDeductions(recipe []*entity.RecipeComponent, produced decimal.Decimal) []Deduction {
	if len(recipe) == 0 || !produced.GreaterThan(decimal.Zero) {
		return nil
	}
	deductions := make([]Deduction, 0, len(recipe))
	for _, comp := range recipe {
		deductions = append(deductions, Deduction{
			IngredientID: comp.IngredientID,
			Quantity:     comp.QuantityPerUnit.Mul(produced),
		})
	}
	return deductions
}

// DeductStock aplica uma baixa com piso em zero: o estoque nunca fica
// negativo, mesmo quando a baixa excede o saldo.
func DeductStock(current, quantity decimal.Decimal) decimal.Decimal {
	next := current.Sub(quantity)
	if next.IsNegative() {
		return decimal.Zero
	}
	return next
}
