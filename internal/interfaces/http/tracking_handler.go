package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/mvieira/pedidos-pro/internal/application/dto"
	"github.com/mvieira/pedidos-pro/internal/application/tracking"
	"github.com/mvieira/pedidos-pro/internal/domain/entity"
)

// TrackingHandler atende as aprovações de produção e embalagem do rastreio.
type TrackingHandler struct {
	uc *tracking.UseCase
}

// NewTrackingHandler constrói o handler.
func NewTrackingHandler(uc *tracking.UseCase) *TrackingHandler {
	return &TrackingHandler{uc: uc}
}

func parseApproval(c *fiber.Ctx) (string, decimal.Decimal, bool) {
	id := c.Params("id")
	if id == "" {
		return "", decimal.Zero, false
	}
	var in dto.ApproveQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return "", decimal.Zero, false
	}
	return id, in.Quantity, true
}

// ProductionApproved godoc
// @Summary      Registrar produção aprovada
// @Description  Grava a quantidade produzida aprovada e avança o rastreio para PARCIALMENTE_PRONTO.
// @Tags         trackings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do rastreio"
// @Param        body  body  dto.ApproveQuantityRequest  true  "Quantidade aprovada"
// @Success      200   {object}  dto.TrackingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/trackings/{id}/production-approved [post]
func (h *TrackingHandler) ProductionApproved(c *fiber.Ctx) error {
	id, qty, ok := parseApproval(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "id e quantity são obrigatórios"})
	}
	out, err := h.uc.RecordProductionApproved(c.Context(), id, qty)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTrackingResponse(out))
}

// PackagingApproved godoc
// @Summary      Registrar embalagem aprovada
// @Description  Grava a quantidade embalada aprovada e encerra o rastreio em PRONTO.
// @Tags         trackings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do rastreio"
// @Param        body  body  dto.ApproveQuantityRequest  true  "Quantidade aprovada"
// @Success      200   {object}  dto.TrackingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/trackings/{id}/packaging-approved [post]
func (h *TrackingHandler) PackagingApproved(c *fiber.Ctx) error {
	id, qty, ok := parseApproval(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "id e quantity são obrigatórios"})
	}
	out, err := h.uc.RecordPackagingApproved(c.Context(), id, qty)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTrackingResponse(out))
}

func toTrackingResponse(t *entity.ItemTracking) dto.TrackingResponse {
	return dto.TrackingResponse{
		ID:                       t.ID,
		OrderItemID:              t.OrderItemID,
		QuantityTarget:           t.QuantityTarget,
		QuantityFromStock:        t.QuantityFromStock,
		QuantityFromProduction:   t.QuantityFromProduction,
		QuantityProducedApproved: t.QuantityProducedApproved,
		QuantityPackagedApproved: t.QuantityPackagedApproved,
		Status:                   t.Status,
		CreatedAt:                t.CreatedAt,
		UpdatedAt:                t.UpdatedAt,
	}
}
