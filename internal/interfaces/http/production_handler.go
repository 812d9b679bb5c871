package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mvieira/pedidos-pro/internal/application/dto"
	"github.com/mvieira/pedidos-pro/internal/application/replenishment"
	"github.com/mvieira/pedidos-pro/internal/application/usecase"
	"github.com/mvieira/pedidos-pro/internal/domain/entity"
)

// ProductionHandler atende consultas de ordens de produção, a folha PDF e o
// disparo manual da reposição.
type ProductionHandler struct {
	uc       *usecase.ProductionUseCase
	replenUC *replenishment.UseCase
}

// NewProductionHandler constrói o handler.
func NewProductionHandler(uc *usecase.ProductionUseCase, replenUC *replenishment.UseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc, replenUC: replenUC}
}

// GetByID godoc
// @Summary      Obter ordem de produção por ID
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da ordem"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id} [get]
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ordem de produção não encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ordens de produção por status
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Status"  default(SOLICITADA)
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.ProductionOrderResponse
// @Router       /api/production-orders [get]
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	status := c.Query("status", entity.ProductionStatusRequested)
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

// PDF godoc
// @Summary      Folha da ordem de produção em PDF
// @Description  Folha imprimível para o chão de fábrica, com os insumos da receita já multiplicados pela quantidade.
// @Tags         production
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID da ordem"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/pdf [get]
func (h *ProductionHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	data, err := h.uc.GeneratePDF(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="ordem-producao-`+id+`.pdf"`)
	return c.Send(data)
}

// RunReplenishment godoc
// @Summary      Disparar varredura de reposição
// @Description  Completa entradas de embalagem aguardando reposição com o estoque disponível. O mesmo processamento roda periodicamente via job.
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de entradas por varredura"  default(50)
// @Success      200    {object}  dto.ReplenishmentReportResponse
// @Router       /api/replenishment/run [post]
func (h *ProductionHandler) RunReplenishment(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 {
		limit = 50
	}
	report, err := h.replenUC.ProcessPending(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReplenishmentReportResponse{
		Scanned:   report.Scanned,
		Advanced:  report.Advanced,
		Completed: report.Completed,
	})
}
