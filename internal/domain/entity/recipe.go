package entity

import "github.com/shopspring/decimal"

// RecipeComponent é uma linha da receita (ficha técnica) de um produto
// fabricado: quanto de cada insumo é consumido por unidade produzida.
// Entrada somente-leitura para a explosão de insumos; a ausência de receita
// não é erro (produto fabricado sem ficha cadastrada).
type RecipeComponent struct {
	ProductID       string
	IngredientID    string
	QuantityPerUnit decimal.Decimal
	Position        int
}
