package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mvieira/pedidos-pro/internal/domain"
)

// RouteKind identifica o desfecho da classificação de um item: variante
// explícita em vez de flags soltas, para a tabela de decisão ser exaustiva.
type RouteKind string

const (
	// RouteFullStock: estoque cobre a quantidade inteira.
	RouteFullStock RouteKind = "ESTOQUE_TOTAL"
	// RouteSplit: parte do estoque, parte roteada para produção.
	RouteSplit RouteKind = "ESTOQUE_E_PRODUCAO"
	// RouteProductionOnly: sem estoque, quantidade inteira para produção.
	RouteProductionOnly RouteKind = "PRODUCAO_TOTAL"
	// RouteDirectSaleShortfall: venda direta com falta de estoque; a parte
	// faltante não é produzida e fica por conta da reposição.
	RouteDirectSaleShortfall RouteKind = "VENDA_DIRETA_COM_FALTA"
)

// NeedsPackagingEntry indica se a variante gera ordem de embalagem
// (inclui a entrada de quantidade zero aguardando reposição).
func (k RouteKind) NeedsPackagingEntry() bool {
	return k == RouteFullStock || k == RouteSplit || k == RouteDirectSaleShortfall
}

// NeedsProductionEntry indica se a variante gera ordem de produção.
func (k RouteKind) NeedsProductionEntry() bool {
	return k == RouteSplit || k == RouteProductionOnly
}

// ItemAllocation é o desfecho da classificação de um item do pedido.
// Invariante: FromStock + FromProduction == Requested.
// StockDeduction é o que sai fisicamente do estoque agora (pode ser menor
// que FromStock na venda direta com falta) e também a quantidade da ordem
// de embalagem.
type ItemAllocation struct {
	Kind                  RouteKind
	Requested             decimal.Decimal
	FromStock             decimal.Decimal
	FromProduction        decimal.Decimal
	StockDeduction        decimal.Decimal
	AwaitingReplenishment bool
}

// Classify aplica a tabela de decisão da alocação, avaliada de cima para
// baixo (primeira linha que casa vence):
//
//	estoque >= pedido                              → tudo para embalagem
//	0 < estoque < pedido, fabricado                → divide estoque/produção
//	0 < estoque < pedido, não fabricado, v. direta → embalagem parcial + falta
//	0 < estoque < pedido, não fabricado            → rejeição
//	estoque == 0, fabricado                        → tudo para produção
//	estoque == 0, venda direta                     → embalagem zero, aguarda reposição
//	estoque == 0, não fabricado, não v. direta     → rejeição
//
// Uma rejeição aborta a alocação do pedido inteiro (o chamador faz rollback).
func Classify(requested, available decimal.Decimal, manufactured, directSale bool) (ItemAllocation, error) {
	switch {
	case available.GreaterThanOrEqual(requested):
		return ItemAllocation{
			Kind:           RouteFullStock,
			Requested:      requested,
			FromStock:      requested,
			FromProduction: decimal.Zero,
			StockDeduction: requested,
		}, nil

	case available.GreaterThan(decimal.Zero) && manufactured:
		return ItemAllocation{
			Kind:           RouteSplit,
			Requested:      requested,
			FromStock:      available,
			FromProduction: requested.Sub(available),
			StockDeduction: available,
		}, nil

	case available.GreaterThan(decimal.Zero) && directSale:
		return ItemAllocation{
			Kind:           RouteDirectSaleShortfall,
			Requested:      requested,
			FromStock:      requested,
			FromProduction: decimal.Zero,
			StockDeduction: available,
		}, nil

	case available.GreaterThan(decimal.Zero):
		return ItemAllocation{}, fmt.Errorf(
			"%w: produto sem fabricação nem venda direta (disponível %s, pedido %s)",
			domain.ErrInsufficientStock, available.String(), requested.String())

	case manufactured:
		return ItemAllocation{
			Kind:           RouteProductionOnly,
			Requested:      requested,
			FromStock:      decimal.Zero,
			FromProduction: requested,
			StockDeduction: decimal.Zero,
		}, nil

	case directSale:
		return ItemAllocation{
			Kind:                  RouteDirectSaleShortfall,
			Requested:             requested,
			FromStock:             requested,
			FromProduction:        decimal.Zero,
			StockDeduction:        decimal.Zero,
			AwaitingReplenishment: true,
		}, nil

	default:
		return ItemAllocation{}, fmt.Errorf(
			"%w: produto sem estoque, sem fabricação e sem venda direta (pedido %s)",
			domain.ErrInsufficientStock, requested.String())
	}
}
