package postgres

import (
	"context"
	"fmt"

	"github.com/mvieira/pedidos-pro/internal/domain/entity"
	"github.com/mvieira/pedidos-pro/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementação de RecipeRepository (usável com pool ou tx).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// GetByProduct devolve as linhas da receita em ordem de posição. Lista vazia
// quando o produto não tem receita.
func (r *RecipeRepo) GetByProduct(productID string) ([]*entity.RecipeComponent, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT product_id, ingredient_id, quantity_per_unit, position
		 FROM recipe_components WHERE product_id = $1 ORDER BY position`, productID)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	defer rows.Close()
	var list []*entity.RecipeComponent
	for rows.Next() {
		var c entity.RecipeComponent
		if err := rows.Scan(&c.ProductID, &c.IngredientID, &c.QuantityPerUnit, &c.Position); err != nil {
			return nil, fmt.Errorf("scan recipe component: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Replace apaga a receita atual e grava a nova, na mesma chamada.
func (r *RecipeRepo) Replace(productID string, components []*entity.RecipeComponent) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM recipe_components WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("clear recipe: %w", err)
	}
	for _, c := range components {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO recipe_components (product_id, ingredient_id, quantity_per_unit, position)
			 VALUES ($1, $2, $3, $4)`,
			c.ProductID, c.IngredientID, c.QuantityPerUnit, c.Position,
		)
		if err != nil {
			return fmt.Errorf("insert recipe component: %w", err)
		}
	}
	return nil
}
