package allocation

import "github.com/shopspring/decimal"

// Códigos de aviso anexados ao resultado da alocação. Avisos não interrompem
// o pedido; erros de rejeição sim (ver BuildPlan).
const (
	WarnDirectSaleShortage    = "FALTA_VENDA_DIRETA"
	WarnAwaitingReplenishment = "AGUARDANDO_REPOSICAO"
	WarnIngredientDeduction   = "BAIXA_INSUMO"
)

// Warning é um aviso não fatal produzido durante a alocação.
type Warning struct {
	Code      string          `json:"code"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Message   string          `json:"message"`
}
