package repository

import "github.com/mvieira/pedidos-pro/internal/domain/entity"

// TrackingRepository define a porta de persistência para o rastreio de
// atendimento por item de pedido.
type TrackingRepository interface {
	Create(tracking *entity.ItemTracking) error
	GetByID(id string) (*entity.ItemTracking, error)
	// ListByOrder devolve os rastreios de todos os itens do pedido.
	ListByOrder(orderID string) ([]*entity.ItemTracking, error)
	Update(tracking *entity.ItemTracking) error
}
