package repository

import "github.com/mvieira/pedidos-pro/internal/domain/entity"

// ProductionRepository define a porta de persistência para ordens de produção.
type ProductionRepository interface {
	// CreateBatch persiste as ordens de produção de uma alocação.
	CreateBatch(orders []*entity.ProductionOrder) error
	GetByID(id string) (*entity.ProductionOrder, error)
	ListByStatus(status string, limit, offset int) ([]*entity.ProductionOrder, error)
}
