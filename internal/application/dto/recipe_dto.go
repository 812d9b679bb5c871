package dto

import "github.com/shopspring/decimal"

// RecipeComponentRequest componente da receita na escrita.
type RecipeComponentRequest struct {
	IngredientID    string          `json:"ingredient_id" validate:"required"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit" validate:"required"`
}

// ReplaceRecipeRequest substitui a receita inteira do produto. Lista vazia
// remove a receita.
type ReplaceRecipeRequest struct {
	Components []RecipeComponentRequest `json:"components"`
}

// RecipeComponentResponse componente da receita na leitura.
type RecipeComponentResponse struct {
	IngredientID    string          `json:"ingredient_id"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
	Position        int             `json:"position"`
}

// RecipeResponse receita de um produto fabricado.
type RecipeResponse struct {
	ProductID  string                    `json:"product_id"`
	Components []RecipeComponentResponse `json:"components"`
}
