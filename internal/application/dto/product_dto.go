package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para criar um produto. O estoque inicial entra
// aqui; depois disso só o motor de alocação e a reposição mexem nele.
type CreateProductRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        decimal.Decimal `json:"stock"`
	Manufactured bool            `json:"manufactured"`
	DirectSale   bool            `json:"direct_sale"`
}

// UpdateProductRequest entrada para atualizar um produto (sem Stock; estoque
// só muda via alocação e reposição).
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Manufactured *bool            `json:"manufactured"`
	DirectSale   *bool            `json:"direct_sale"`
}

// ProductResponse saída de um produto.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        decimal.Decimal `json:"stock"`
	Manufactured bool            `json:"manufactured"`
	DirectSale   bool            `json:"direct_sale"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de produtos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
