package repository

import "github.com/mvieira/pedidos-pro/internal/domain/entity"

// OrderRepository define a porta de persistência para Order e seus itens.
type OrderRepository interface {
	// Create persiste cabeçalho e itens do pedido.
	Create(order *entity.Order) error
	// GetWithItems devolve o pedido com os itens ordenados por posição,
	// ou nil se não existir.
	GetWithItems(id string) (*entity.Order, error)
	// GetWithItemsForUpdate bloqueia o cabeçalho do pedido (SELECT ... FOR
	// UPDATE) antes de devolvê-lo. Só faz sentido dentro de transação;
	// serializa alocações concorrentes do mesmo pedido.
	GetWithItemsForUpdate(id string) (*entity.Order, error)
	UpdateStatus(orderID, status string) error
	ListByStatus(status string, limit, offset int) ([]*entity.Order, error)
}
