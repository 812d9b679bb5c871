package repository

import "github.com/mvieira/pedidos-pro/internal/domain/entity"

// RecipeRepository define a porta de persistência para a receita (ficha
// técnica) dos produtos fabricados.
type RecipeRepository interface {
	// GetByProduct devolve as linhas da receita ordenadas por posição.
	// Lista vazia quando o produto não tem receita (não é erro).
	GetByProduct(productID string) ([]*entity.RecipeComponent, error)
	// Replace substitui a receita inteira do produto.
	Replace(productID string, components []*entity.RecipeComponent) error
}
