package replenishment

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mvieira/pedidos-pro/internal/application/fulfillment"
	"github.com/mvieira/pedidos-pro/internal/domain"
	"github.com/mvieira/pedidos-pro/internal/domain/repository"
)

// UseCase completa as entradas de embalagem que ficaram aguardando reposição:
// quando o estoque do produto volta, move o que houver para a entrada e
// limpa a flag assim que a meta de estoque do rastreio é coberta. Roda
// periodicamente (ver internal/jobs) e também pode ser disparado por rota.
type UseCase struct {
	txRunner fulfillment.TxRunner
}

// NewUseCase constrói o caso de uso.
func NewUseCase(txRunner fulfillment.TxRunner) *UseCase {
	return &UseCase{txRunner: txRunner}
}

// Report resume uma varredura de reposição.
type Report struct {
	Scanned   int // entradas aguardando encontradas
	Advanced  int // entradas que receberam alguma quantidade
	Completed int // entradas cuja meta foi coberta (flag limpa)
}

// ProcessPending varre até limit entradas aguardando reposição dentro de uma
// única transação. A meta de cada entrada é o QuantityFromStock do rastreio;
// a falta remanescente é meta menos o que a entrada já carrega.
func (uc *UseCase) ProcessPending(ctx context.Context, limit int) (*Report, error) {
	report := &Report{}
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		recipeRepo repository.RecipeRepository,
		trackingRepo repository.TrackingRepository,
		productionRepo repository.ProductionRepository,
		packagingRepo repository.PackagingRepository,
	) error {
		entries, err := packagingRepo.ListAwaitingReplenishment(limit)
		if err != nil {
			return err
		}
		report.Scanned = len(entries)

		now := time.Now()
		for _, entry := range entries {
			tracking, err := trackingRepo.GetByID(entry.TrackingID)
			if err != nil {
				return err
			}
			if tracking == nil {
				return fmt.Errorf("%w: rastreio %s da embalagem %s", domain.ErrNotFound, entry.TrackingID, entry.ID)
			}

			missing := tracking.QuantityFromStock.Sub(entry.Quantity)
			if missing.LessThanOrEqual(decimal.Zero) {
				// Meta já coberta; só falta limpar a flag.
				entry.AwaitingReplenishment = false
				entry.UpdatedAt = now
				if err := packagingRepo.Update(entry); err != nil {
					return err
				}
				report.Completed++
				continue
			}

			product, err := productRepo.GetByIDForUpdate(entry.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: produto %s da embalagem %s", domain.ErrNotFound, entry.ProductID, entry.ID)
			}
			take := decimal.Min(product.Stock, missing)
			if take.LessThanOrEqual(decimal.Zero) {
				continue // ainda sem estoque, fica para a próxima varredura
			}

			if err := productRepo.UpdateStock(product.ID, product.Stock.Sub(take)); err != nil {
				return err
			}
			entry.Quantity = entry.Quantity.Add(take)
			if entry.Quantity.GreaterThanOrEqual(tracking.QuantityFromStock) {
				entry.AwaitingReplenishment = false
				report.Completed++
			}
			entry.UpdatedAt = now
			if err := packagingRepo.Update(entry); err != nil {
				return err
			}
			report.Advanced++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
