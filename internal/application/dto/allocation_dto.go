package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarningResponse aviso acumulado durante a alocação.
type WarningResponse struct {
	Code      string          `json:"code"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Message   string          `json:"message"`
}

// TrackingResponse rastreio de atendimento de um item.
type TrackingResponse struct {
	ID                       string          `json:"id"`
	OrderItemID              string          `json:"order_item_id"`
	QuantityTarget           decimal.Decimal `json:"quantity_target"`
	QuantityFromStock        decimal.Decimal `json:"quantity_from_stock"`
	QuantityFromProduction   decimal.Decimal `json:"quantity_from_production"`
	QuantityProducedApproved decimal.Decimal `json:"quantity_produced_approved"`
	QuantityPackagedApproved decimal.Decimal `json:"quantity_packaged_approved"`
	Status                   string          `json:"status"`
	CreatedAt                time.Time       `json:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at"`
}

// ProductionOrderResponse ordem de produção despachada.
type ProductionOrderResponse struct {
	ID         string          `json:"id"`
	TrackingID string          `json:"tracking_id"`
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// PackagingOrderResponse ordem de embalagem despachada.
type PackagingOrderResponse struct {
	ID                    string          `json:"id"`
	TrackingID            string          `json:"tracking_id"`
	OrderID               string          `json:"order_id"`
	CustomerID            string          `json:"customer_id"`
	ProductID             string          `json:"product_id"`
	Quantity              decimal.Decimal `json:"quantity"`
	AwaitingReplenishment bool            `json:"awaiting_replenishment"`
	Status                string          `json:"status"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// AllocationResponse desfecho completo da alocação de um pedido.
type AllocationResponse struct {
	OrderID          string                    `json:"order_id"`
	Status           string                    `json:"status"`
	Warnings         []WarningResponse         `json:"warnings"`
	Trackings        []TrackingResponse        `json:"trackings"`
	ProductionOrders []ProductionOrderResponse `json:"production_orders"`
	PackagingOrders  []PackagingOrderResponse  `json:"packaging_orders"`
}

// ApproveQuantityRequest entrada das rotas de aprovação de rastreio.
type ApproveQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

// ReplenishmentReportResponse resumo de uma varredura de reposição.
type ReplenishmentReportResponse struct {
	Scanned   int `json:"scanned"`
	Advanced  int `json:"advanced"`
	Completed int `json:"completed"`
}
