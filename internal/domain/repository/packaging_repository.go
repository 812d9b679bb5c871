package repository

import "github.com/mvieira/pedidos-pro/internal/domain/entity"

// PackagingRepository define a porta de persistência para ordens de embalagem.
type PackagingRepository interface {
	// CreateBatch persiste as ordens de embalagem de uma alocação.
	CreateBatch(orders []*entity.PackagingOrder) error
	GetByID(id string) (*entity.PackagingOrder, error)
	// ListAwaitingReplenishment devolve as entradas marcadas como aguardando
	// reposição (venda direta sem estoque na alocação).
	ListAwaitingReplenishment(limit int) ([]*entity.PackagingOrder, error)
	Update(order *entity.PackagingOrder) error
}
