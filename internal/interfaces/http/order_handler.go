package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mvieira/pedidos-pro/internal/application/dto"
	"github.com/mvieira/pedidos-pro/internal/application/fulfillment"
	"github.com/mvieira/pedidos-pro/internal/application/tracking"
	"github.com/mvieira/pedidos-pro/internal/application/usecase"
)

// OrderHandler atende as requisições HTTP de pedidos: CRUD, alocação e
// consulta de liberação para venda.
type OrderHandler struct {
	uc         *usecase.OrderUseCase
	allocateUC *fulfillment.AllocateOrderUseCase
	trackingUC *tracking.UseCase
}

// NewOrderHandler constrói o handler.
func NewOrderHandler(uc *usecase.OrderUseCase, allocateUC *fulfillment.AllocateOrderUseCase, trackingUC *tracking.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc, allocateUC: allocateUC, trackingUC: trackingUC}
}

// Create godoc
// @Summary      Criar pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Dados do pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter pedido por ID
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido não encontrado"})
	}
	return c.JSON(out)
}

// ListByStatus godoc
// @Summary      Listar pedidos por status
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  true   "Status do pedido"
// @Param        limit   query  int     false  "Limite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) ListByStatus(c *fiber.Ctx) error {
	status := c.Query("status")
	if status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status é obrigatório"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	out, err := h.uc.ListByStatus(status, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Allocate godoc
// @Summary      Alocar pedido (estoque x produção)
// @Description  Decide por item quanto sai do estoque e quanto vai para produção, baixa o estoque, cria as ordens de trabalho e deriva o status do pedido. Tudo ou nada.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {object}  dto.AllocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/allocate [post]
func (h *OrderHandler) Allocate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	result, err := h.allocateUC.AllocateOrder(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAllocationResponse(result))
}

// Release godoc
// @Summary      Consultar liberação para venda
// @Description  true quando todo item do pedido tem rastreio PRONTO.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {object}  dto.ReleaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/release [get]
func (h *OrderHandler) Release(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	can, err := h.trackingUC.CanReleaseForSale(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReleaseResponse{OrderID: id, CanRelease: can})
}

func toAllocationResponse(r *fulfillment.Result) dto.AllocationResponse {
	resp := dto.AllocationResponse{
		OrderID:          r.OrderID,
		Status:           r.Status,
		Warnings:         make([]dto.WarningResponse, 0, len(r.Warnings)),
		Trackings:        make([]dto.TrackingResponse, 0, len(r.Trackings)),
		ProductionOrders: make([]dto.ProductionOrderResponse, 0, len(r.ProductionOrders)),
		PackagingOrders:  make([]dto.PackagingOrderResponse, 0, len(r.PackagingOrders)),
	}
	for _, w := range r.Warnings {
		resp.Warnings = append(resp.Warnings, dto.WarningResponse{
			Code: w.Code, ProductID: w.ProductID, Quantity: w.Quantity, Message: w.Message,
		})
	}
	for _, t := range r.Trackings {
		resp.Trackings = append(resp.Trackings, toTrackingResponse(t))
	}
	for _, po := range r.ProductionOrders {
		resp.ProductionOrders = append(resp.ProductionOrders, dto.ProductionOrderResponse{
			ID: po.ID, TrackingID: po.TrackingID, ProductID: po.ProductID,
			Quantity: po.Quantity, Status: po.Status, CreatedAt: po.CreatedAt,
		})
	}
	for _, po := range r.PackagingOrders {
		resp.PackagingOrders = append(resp.PackagingOrders, dto.PackagingOrderResponse{
			ID: po.ID, TrackingID: po.TrackingID, OrderID: po.OrderID, CustomerID: po.CustomerID,
			ProductID: po.ProductID, Quantity: po.Quantity, AwaitingReplenishment: po.AwaitingReplenishment,
			Status: po.Status, CreatedAt: po.CreatedAt, UpdatedAt: po.UpdatedAt,
		})
	}
	return resp
}
