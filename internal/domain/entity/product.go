package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto ou SKU do catálogo.
// Stock é a quantidade em mãos (nunca negativa); toda baixa passa pelo motor
// de alocação dentro de transação com bloqueio de linha.
// Manufactured indica que o produto possui receita (lista de insumos) e pode
// ser roteado para produção; DirectSale indica que o produto pode ser vendido
// mesmo sem estoque de cobertura (a falta vira aviso, não bloqueio).
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	Description  string
	Price        decimal.Decimal // preço de venda
	Stock        decimal.Decimal // quantidade em mãos (>= 0)
	Manufactured bool
	DirectSale   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
