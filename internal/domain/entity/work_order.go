package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status das ordens de trabalho criadas pelo despachante.
// O avanço posterior (andamento, aprovação) pertence aos módulos de
// produção e embalagem, fora do motor de alocação.
const (
	ProductionStatusRequested = "SOLICITADA"
	PackagingStatusPending    = "PENDENTE"
)

// ProductionOrder é a ordem de produção criada para a parcela de um item que
// não pôde sair do estoque. Referencia o rastreio do item de origem.
type ProductionOrder struct {
	ID         string
	TrackingID string
	ProductID  string
	Quantity   decimal.Decimal
	Status     string
	CreatedAt  time.Time
}

// PackagingOrder é a ordem de embalagem para a parcela atendida pelo estoque.
// AwaitingReplenishment marca a entrada criada com quantidade zero para venda
// direta sem estoque: o processador de reposição a completa quando o estoque
// chega.
type PackagingOrder struct {
	ID                    string
	TrackingID            string
	OrderID               string
	CustomerID            string
	ProductID             string
	Quantity              decimal.Decimal
	AwaitingReplenishment bool
	Status                string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
