package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderItemRequest linha do pedido na criação.
type CreateOrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// CreateOrderRequest entrada para criar um pedido. Nasce PENDENTE.
type CreateOrderRequest struct {
	CustomerID string                   `json:"customer_id" validate:"required"`
	Items      []CreateOrderItemRequest `json:"items" validate:"required,min=1"`
}

// OrderItemResponse linha do pedido na saída.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Position  int             `json:"position"`
}

// OrderResponse saída de um pedido com seus itens.
type OrderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Status     string              `json:"status"`
	Items      []OrderItemResponse `json:"items"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ReleaseResponse resposta da consulta de liberação para venda.
type ReleaseResponse struct {
	OrderID    string `json:"order_id"`
	CanRelease bool   `json:"can_release"`
}
