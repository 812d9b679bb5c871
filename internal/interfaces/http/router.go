package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mvieira/pedidos-pro/internal/application/fulfillment"
	"github.com/mvieira/pedidos-pro/internal/application/replenishment"
	"github.com/mvieira/pedidos-pro/internal/application/tracking"
	"github.com/mvieira/pedidos-pro/internal/application/usecase"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	OrderUC      *usecase.OrderUseCase
	RecipeUC     *usecase.RecipeUseCase
	ProductionUC *usecase.ProductionUseCase
	AllocateUC   *fulfillment.AllocateOrderUseCase
	TrackingUC   *tracking.UseCase
	ReplenishUC  *replenishment.UseCase
	JWTSecret    string
}

// Router registra as rotas da API. Tudo sob /api exige Bearer Token; a
// emissão de tokens pertence ao serviço de identidade vizinho.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Products + receitas
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	products.Put("/:id/recipe", recipeHandler.Replace)
	products.Get("/:id/recipe", recipeHandler.Get)

	// Orders: CRUD + alocação + liberação
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.AllocateUC, deps.TrackingUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.ListByStatus)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/allocate", orderHandler.Allocate)
	orders.Get("/:id/release", orderHandler.Release)

	// Trackings: aprovações do chão de fábrica (papéis admin e producao)
	trackings := api.Group("/trackings", RequireRole("admin", "producao"))
	trackingHandler := NewTrackingHandler(deps.TrackingUC)
	trackings.Post("/:id/production-approved", trackingHandler.ProductionApproved)
	trackings.Post("/:id/packaging-approved", trackingHandler.PackagingApproved)

	// Production orders: consulta, folha PDF e reposição manual
	productionHandler := NewProductionHandler(deps.ProductionUC, deps.ReplenishUC)
	production := api.Group("/production-orders")
	production.Get("/", productionHandler.List)
	production.Get("/:id", productionHandler.GetByID)
	production.Get("/:id/pdf", productionHandler.PDF)
	api.Post("/replenishment/run", productionHandler.RunReplenishment)
}
