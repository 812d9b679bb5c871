package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mvieira/pedidos-pro/internal/application/dto"
	"github.com/mvieira/pedidos-pro/internal/domain"
	"github.com/mvieira/pedidos-pro/internal/domain/entity"
	"github.com/mvieira/pedidos-pro/internal/domain/repository"
)

// IngredientForPDF linha de insumo já resolvida para a folha de produção.
type IngredientForPDF struct {
	Name            string
	QuantityPerUnit decimal.Decimal
	Total           decimal.Decimal
}

// ProductionPDFGenerator porta para a geração da folha de ordem de produção.
type ProductionPDFGenerator interface {
	GenerateProductionOrderPDF(ctx context.Context, order *entity.ProductionOrder, product *entity.Product, ingredients []IngredientForPDF) ([]byte, error)
}

// ProductionUseCase consultas de ordens de produção e a folha imprimível
// para o chão de fábrica.
type ProductionUseCase struct {
	productionRepo repository.ProductionRepository
	productRepo    repository.ProductRepository
	recipeRepo     repository.RecipeRepository
	pdfGen         ProductionPDFGenerator
}

// NewProductionUseCase constrói o caso de uso.
func NewProductionUseCase(
	productionRepo repository.ProductionRepository,
	productRepo repository.ProductRepository,
	recipeRepo repository.RecipeRepository,
	pdfGen ProductionPDFGenerator,
) *ProductionUseCase {
	return &ProductionUseCase{
		productionRepo: productionRepo,
		productRepo:    productRepo,
		recipeRepo:     recipeRepo,
		pdfGen:         pdfGen,
	}
}

// GetByID obtém uma ordem de produção.
func (uc *ProductionUseCase) GetByID(id string) (*dto.ProductionOrderResponse, error) {
	order, err := uc.productionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return &dto.ProductionOrderResponse{
		ID:         order.ID,
		TrackingID: order.TrackingID,
		ProductID:  order.ProductID,
		Quantity:   order.Quantity,
		Status:     order.Status,
		CreatedAt:  order.CreatedAt,
	}, nil
}

// ListByStatus lista ordens de produção num status.
func (uc *ProductionUseCase) ListByStatus(status string, limit, offset int) ([]dto.ProductionOrderResponse, error) {
	list, err := uc.productionRepo.ListByStatus(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductionOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.ProductionOrderResponse{
			ID:         o.ID,
			TrackingID: o.TrackingID,
			ProductID:  o.ProductID,
			Quantity:   o.Quantity,
			Status:     o.Status,
			CreatedAt:  o.CreatedAt,
		})
	}
	return items, nil
}

// GeneratePDF monta a folha de produção: ordem, produto e insumos da receita
// com as quantidades totais já multiplicadas.
func (uc *ProductionUseCase) GeneratePDF(ctx context.Context, id string) ([]byte, error) {
	order, err := uc.productionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: ordem de produção %s", domain.ErrNotFound, id)
	}
	product, err := uc.productRepo.GetByID(order.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: produto %s", domain.ErrNotFound, order.ProductID)
	}
	recipe, err := uc.recipeRepo.GetByProduct(order.ProductID)
	if err != nil {
		return nil, err
	}

	ingredients := make([]IngredientForPDF, 0, len(recipe))
	for _, c := range recipe {
		name := c.IngredientID
		if ing, err := uc.productRepo.GetByID(c.IngredientID); err == nil && ing != nil {
			name = ing.Name
		}
		ingredients = append(ingredients, IngredientForPDF{
			Name:            name,
			QuantityPerUnit: c.QuantityPerUnit,
			Total:           c.QuantityPerUnit.Mul(order.Quantity),
		})
	}
	return uc.pdfGen.GenerateProductionOrderPDF(ctx, order, product, ingredients)
}
