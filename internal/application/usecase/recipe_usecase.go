package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/mvieira/pedidos-pro/internal/application/dto"
	"github.com/mvieira/pedidos-pro/internal/domain"
	"github.com/mvieira/pedidos-pro/internal/domain/entity"
	"github.com/mvieira/pedidos-pro/internal/domain/repository"
)

// RecipeUseCase mantém a receita (lista de insumos) dos produtos fabricados.
// A explosão é de um nível: insumo com receita própria não é expandido.
type RecipeUseCase struct {
	recipeRepo  repository.RecipeRepository
	productRepo repository.ProductRepository
}

// NewRecipeUseCase constrói o caso de uso.
func NewRecipeUseCase(recipeRepo repository.RecipeRepository, productRepo repository.ProductRepository) *RecipeUseCase {
	return &RecipeUseCase{recipeRepo: recipeRepo, productRepo: productRepo}
}

// Replace substitui a receita inteira do produto. Só produtos fabricados
// aceitam receita; cada insumo deve existir e ter quantidade positiva.
func (uc *RecipeUseCase) Replace(productID string, in dto.ReplaceRecipeRequest) (*dto.RecipeResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.Manufactured {
		return nil, domain.ErrInvalidInput
	}

	components := make([]*entity.RecipeComponent, 0, len(in.Components))
	for i, c := range in.Components {
		if c.IngredientID == "" || c.IngredientID == productID {
			return nil, domain.ErrInvalidInput
		}
		if c.QuantityPerUnit.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		ingredient, err := uc.productRepo.GetByID(c.IngredientID)
		if err != nil {
			return nil, err
		}
		if ingredient == nil {
			return nil, domain.ErrNotFound
		}
		components = append(components, &entity.RecipeComponent{
			ProductID:       productID,
			IngredientID:    c.IngredientID,
			QuantityPerUnit: c.QuantityPerUnit,
			Position:        i + 1,
		})
	}
	if err := uc.recipeRepo.Replace(productID, components); err != nil {
		return nil, err
	}
	return toRecipeResponse(productID, components), nil
}

// GetByProduct obtém a receita do produto. Receita vazia é resposta válida
// (produto sem insumos cadastrados).
func (uc *RecipeUseCase) GetByProduct(productID string) (*dto.RecipeResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	components, err := uc.recipeRepo.GetByProduct(productID)
	if err != nil {
		return nil, err
	}
	return toRecipeResponse(productID, components), nil
}

func toRecipeResponse(productID string, components []*entity.RecipeComponent) *dto.RecipeResponse {
	resp := &dto.RecipeResponse{ProductID: productID}
	for _, c := range components {
		resp.Components = append(resp.Components, dto.RecipeComponentResponse{
			IngredientID:    c.IngredientID,
			QuantityPerUnit: c.QuantityPerUnit,
			Position:        c.Position,
		})
	}
	return resp
}
