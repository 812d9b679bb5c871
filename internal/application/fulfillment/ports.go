package fulfillment

import (
	"context"

	"github.com/mvieira/pedidos-pro/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa transação. Garante atomicidade para o motor de
// alocação: ou o pedido inteiro é alocado (rastreios + baixas + ordens +
// status) ou nada é persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		recipeRepo repository.RecipeRepository,
		trackingRepo repository.TrackingRepository,
		productionRepo repository.ProductionRepository,
		packagingRepo repository.PackagingRepository,
	) error) error
}
