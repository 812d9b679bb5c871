package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mvieira/pedidos-pro/internal/domain"
	"github.com/mvieira/pedidos-pro/internal/domain/entity"
)

// ItemPlan junta o item do pedido, o produto e o desfecho da classificação.
type ItemPlan struct {
	Item       *entity.OrderItem
	Product    *entity.Product
	Allocation ItemAllocation
}

// Plan é o resultado da fase pura de planejamento: o que cada item consome
// do estoque, o que vai para produção e os avisos acumulados. Nenhuma
// escrita acontece aqui; a aplicação do plano é atômica e fica por conta
// do caso de uso.
type Plan struct {
	OrderID  string
	Items    []ItemPlan
	Warnings []Warning
}

// HasDirectPackaging indica se ao menos um item gera ordem de embalagem.
func (p *Plan) HasDirectPackaging() bool {
	for _, ip := range p.Items {
		if ip.Allocation.Kind.NeedsPackagingEntry() {
			return true
		}
	}
	return false
}

// NeedsProduction indica se ao menos um item gera ordem de produção.
func (p *Plan) NeedsProduction() bool {
	for _, ip := range p.Items {
		if ip.Allocation.Kind.NeedsProductionEntry() {
			return true
		}
	}
	return false
}

// BuildPlan classifica os itens do pedido em sequência contra um retrato do
// estoque (o mapa products traz o estoque já bloqueado por linha na
// transação do chamador). Itens repetidos do mesmo produto consomem o saldo
// na ordem das linhas. A primeira rejeição aborta o plano inteiro: nada é
// aproveitado de um plano com erro.
func BuildPlan(order *entity.Order, products map[string]*entity.Product) (*Plan, error) {
	if order == nil || len(order.Items) == 0 {
		return nil, fmt.Errorf("%w: pedido sem itens", domain.ErrInvalidInput)
	}

	// Saldo de trabalho por produto; as linhas anteriores do mesmo pedido
	// reduzem o disponível das seguintes.
	remaining := make(map[string]decimal.Decimal, len(products))
	for id, p := range products {
		remaining[id] = p.Stock
	}

	plan := &Plan{OrderID: order.ID}
	for _, item := range order.Items {
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: item %s com quantidade não positiva", domain.ErrInvalidInput, item.ID)
		}
		product, ok := products[item.ProductID]
		if !ok || product == nil {
			return nil, fmt.Errorf("%w: produto %s do item %s", domain.ErrNotFound, item.ProductID, item.ID)
		}

		alloc, err := Classify(item.Quantity, remaining[product.ID], product.Manufactured, product.DirectSale)
		if err != nil {
			return nil, fmt.Errorf("item %s (produto %s): %w", item.ID, product.SKU, err)
		}
		remaining[product.ID] = remaining[product.ID].Sub(alloc.StockDeduction)

		plan.Items = append(plan.Items, ItemPlan{Item: item, Product: product, Allocation: alloc})

		if alloc.Kind == RouteDirectSaleShortfall {
			shortfall := alloc.FromStock.Sub(alloc.StockDeduction)
			if alloc.AwaitingReplenishment {
				plan.Warnings = append(plan.Warnings, Warning{
					Code:      WarnAwaitingReplenishment,
					ProductID: product.ID,
					Quantity:  shortfall,
					Message:   fmt.Sprintf("produto %s sem estoque; embalagem criada aguardando reposição de %s", product.SKU, shortfall.String()),
				})
			} else {
				plan.Warnings = append(plan.Warnings, Warning{
					Code:      WarnDirectSaleShortage,
					ProductID: product.ID,
					Quantity:  shortfall,
					Message:   fmt.Sprintf("produto %s com falta de %s para venda direta", product.SKU, shortfall.String()),
				})
			}
		}
	}
	return plan, nil
}
