package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvieira/pedidos-pro/internal/application/fulfillment"
	"github.com/mvieira/pedidos-pro/internal/domain/repository"
)

var _ fulfillment.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run abre a transação, executa fn com repositórios atados a ela e faz
// Commit ou Rollback. É o limite único de commit do motor de alocação.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	recipeRepo repository.RecipeRepository,
	trackingRepo repository.TrackingRepository,
	productionRepo repository.ProductionRepository,
	packagingRepo repository.PackagingRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	orderRepo := NewOrderRepository(tx)
	recipeRepo := NewRecipeRepository(tx)
	trackingRepo := NewTrackingRepository(tx)
	productionRepo := NewProductionRepository(tx)
	packagingRepo := NewPackagingRepository(tx)

	if err := fn(productRepo, orderRepo, recipeRepo, trackingRepo, productionRepo, packagingRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
