package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do rastreio de atendimento por item.
// PRONTO é terminal para o motor; etapas de aprovação posteriores
// (produção e embalagem) consomem o rastreio mas não o recriam.
const (
	TrackingStatusPending      = "PENDENTE"
	TrackingStatusPartialReady = "PARCIALMENTE_PRONTO"
	TrackingStatusReady        = "PRONTO"
)

// ItemTracking é o razonete de atendimento de um item do pedido: quanto foi
// pedido (QuantityTarget) e de onde sai cada parte (estoque x produção).
// Invariante: QuantityFromStock + QuantityFromProduction == QuantityTarget,
// sempre, inclusive na falta de venda direta, em que a parte faltante
// permanece atribuída ao estoque (a entrada de embalagem carrega só o que
// existe fisicamente; a reposição completa o restante).
type ItemTracking struct {
	ID                       string
	OrderItemID              string
	QuantityTarget           decimal.Decimal
	QuantityFromStock        decimal.Decimal
	QuantityFromProduction   decimal.Decimal
	QuantityProducedApproved decimal.Decimal
	QuantityPackagedApproved decimal.Decimal
	Status                   string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
