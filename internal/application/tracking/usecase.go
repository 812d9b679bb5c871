package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mvieira/pedidos-pro/internal/domain"
	"github.com/mvieira/pedidos-pro/internal/domain/entity"
	"github.com/mvieira/pedidos-pro/internal/domain/repository"
)

// UseCase avança o rastreio de atendimento conforme as aprovações chegam do
// chão de fábrica: produção aprovada leva a PARCIALMENTE_PRONTO, embalagem
// aprovada leva a PRONTO (terminal). Também responde se um pedido inteiro
// pode ser liberado para venda.
type UseCase struct {
	trackingRepo repository.TrackingRepository
	orderRepo    repository.OrderRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(trackingRepo repository.TrackingRepository, orderRepo repository.OrderRepository) *UseCase {
	return &UseCase{trackingRepo: trackingRepo, orderRepo: orderRepo}
}

func (uc *UseCase) get(trackingID string) (*entity.ItemTracking, error) {
	if trackingID == "" {
		return nil, domain.ErrInvalidInput
	}
	tr, err := uc.trackingRepo.GetByID(trackingID)
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, fmt.Errorf("%w: rastreio %s", domain.ErrNotFound, trackingID)
	}
	return tr, nil
}

// RecordProductionApproved registra a quantidade produzida aprovada.
// Rastreio já PRONTO não aceita novas aprovações.
func (uc *UseCase) RecordProductionApproved(ctx context.Context, trackingID string, quantity decimal.Decimal) (*entity.ItemTracking, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: quantidade aprovada deve ser positiva", domain.ErrInvalidInput)
	}
	tr, err := uc.get(trackingID)
	if err != nil {
		return nil, err
	}
	if tr.Status == entity.TrackingStatusReady {
		return nil, fmt.Errorf("%w: rastreio %s já está PRONTO", domain.ErrConflict, trackingID)
	}

	tr.QuantityProducedApproved = quantity
	tr.Status = entity.TrackingStatusPartialReady
	tr.UpdatedAt = time.Now()
	if err := uc.trackingRepo.Update(tr); err != nil {
		return nil, err
	}
	return tr, nil
}

// RecordPackagingApproved registra a quantidade embalada aprovada e encerra o
// rastreio em PRONTO.
func (uc *UseCase) RecordPackagingApproved(ctx context.Context, trackingID string, quantity decimal.Decimal) (*entity.ItemTracking, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: quantidade aprovada deve ser positiva", domain.ErrInvalidInput)
	}
	tr, err := uc.get(trackingID)
	if err != nil {
		return nil, err
	}
	if tr.Status == entity.TrackingStatusReady {
		return nil, fmt.Errorf("%w: rastreio %s já está PRONTO", domain.ErrConflict, trackingID)
	}

	tr.QuantityPackagedApproved = quantity
	tr.Status = entity.TrackingStatusReady
	tr.UpdatedAt = time.Now()
	if err := uc.trackingRepo.Update(tr); err != nil {
		return nil, err
	}
	return tr, nil
}

// CanReleaseForSale responde se todo item do pedido tem rastreio PRONTO.
// Pedido ainda não alocado (itens sem rastreio) não libera.
func (uc *UseCase) CanReleaseForSale(ctx context.Context, orderID string) (bool, error) {
	if orderID == "" {
		return false, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetWithItems(orderID)
	if err != nil {
		return false, err
	}
	if order == nil {
		return false, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, orderID)
	}
	if len(order.Items) == 0 {
		return false, nil
	}

	trackings, err := uc.trackingRepo.ListByOrder(orderID)
	if err != nil {
		return false, err
	}
	ready := make(map[string]bool, len(trackings))
	for _, tr := range trackings {
		if tr.Status == entity.TrackingStatusReady {
			ready[tr.OrderItemID] = true
		}
	}
	for _, item := range order.Items {
		if !ready[item.ID] {
			return false, nil
		}
	}
	return true, nil
}
