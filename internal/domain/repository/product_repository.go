package repository

import (
	"github.com/shopspring/decimal"

	"github.com/mvieira/pedidos-pro/internal/domain/entity"
)

// ProductRepository define a porta de persistência para Product (DIP).
// GetByIDForUpdate bloqueia a linha (SELECT ... FOR UPDATE) e só faz sentido
// quando o repositório está atado a uma transação via TxRunner.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByIDForUpdate(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, stock decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
}
