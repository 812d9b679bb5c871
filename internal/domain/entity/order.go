package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do pedido, pipeline de avanço único:
// PENDENTE → {EM_PRODUCAO | EM_EMBALAGEM} → EMBALADO → LIBERADO_PARA_VENDA →
// VENDA_CONFIRMADA → EM_ENTREGA → ENTREGUE. CANCELADO é alcançável de
// qualquer estado não terminal (o cancelamento é disparado fora do motor;
// aqui apenas o respeitamos como estado de parada).
const (
	OrderStatusPending         = "PENDENTE"
	OrderStatusInProduction    = "EM_PRODUCAO"
	OrderStatusInPackaging     = "EM_EMBALAGEM"
	OrderStatusPackaged        = "EMBALADO"
	OrderStatusReleasedForSale = "LIBERADO_PARA_VENDA"
	OrderStatusSaleConfirmed   = "VENDA_CONFIRMADA"
	OrderStatusInDelivery      = "EM_ENTREGA"
	OrderStatusDelivered       = "ENTREGUE"
	OrderStatusCancelled       = "CANCELADO"
)

// Order representa um pedido de venda com seus itens.
// Status só é escrito pelo derivador de status do motor de alocação ou por
// etapas posteriores do pipeline (embalagem, venda, entrega).
type Order struct {
	ID         string
	CustomerID string
	Status     string
	Items      []*OrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItem é uma linha do pedido. Imutável depois que o pedido é criado
// (correção de quantidade está fora do escopo do motor).
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal // > 0
	Position  int             // ordem da linha no pedido
}
