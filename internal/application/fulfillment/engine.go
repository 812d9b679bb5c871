package fulfillment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mvieira/pedidos-pro/internal/domain"
	"github.com/mvieira/pedidos-pro/internal/domain/allocation"
	"github.com/mvieira/pedidos-pro/internal/domain/entity"
	"github.com/mvieira/pedidos-pro/internal/domain/repository"
)

// AllocateOrderUseCase é o motor de alocação de atendimento: por item do
// pedido decide quanto sai do estoque e quanto vai para produção, baixa o
// estoque (com explosão de insumos de um nível para fabricados), cria as
// ordens de produção/embalagem, grava o rastreio por item e deriva o status
// do pedido. Planejamento puro + aplicação atômica em uma única transação
// com bloqueio de linha (SELECT FOR UPDATE).
type AllocateOrderUseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
}

// NewAllocateOrderUseCase constrói o caso de uso. Produtos e receitas são
// lidos pelos repositórios atados à transação; fora dela só o pedido é lido,
// para a pré-checagem.
func NewAllocateOrderUseCase(txRunner TxRunner, orderRepo repository.OrderRepository) *AllocateOrderUseCase {
	return &AllocateOrderUseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
	}
}

// Result é o desfecho de uma alocação bem-sucedida: status derivado do
// pedido, rastreios criados, ordens despachadas e avisos acumulados.
type Result struct {
	OrderID          string
	Status           string
	Warnings         []allocation.Warning
	Trackings        []*entity.ItemTracking
	ProductionOrders []*entity.ProductionOrder
	PackagingOrders  []*entity.PackagingOrder
}

// AllocateOrder aloca o pedido inteiro. Dentro da transação o cabeçalho do
// pedido é bloqueado e o status reconferido; depois produtos do pedido e
// insumos das receitas são bloqueados numa única passada em ordem de ID,
// para evitar deadlock entre pedidos concorrentes sobre as mesmas linhas.
// Rejeição de qualquer item (estoque insuficiente sem fabricação nem venda
// direta) desfaz a transação: nenhum rastreio, baixa ou ordem sobrevive.
func (uc *AllocateOrderUseCase) AllocateOrder(ctx context.Context, orderID string) (*Result, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	// Pré-checagem barata, fora da transação. A checagem que vale é refeita
	// com o cabeçalho bloqueado: este retrato pode estar desatualizado.
	order, err := uc.orderRepo.GetWithItems(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, orderID)
	}
	if order.Status != entity.OrderStatusPending {
		return nil, fmt.Errorf("%w: pedido %s em %s não pode ser alocado", domain.ErrConflict, orderID, order.Status)
	}
	if len(order.Items) == 0 {
		return nil, fmt.Errorf("%w: pedido %s sem itens", domain.ErrInvalidInput, orderID)
	}

	now := time.Now()

	var result *Result
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		recipeRepo repository.RecipeRepository,
		trackingRepo repository.TrackingRepository,
		productionRepo repository.ProductionRepository,
		packagingRepo repository.PackagingRepository,
	) error {
		// Bloqueia o cabeçalho e reconfere o status: duas alocações
		// concorrentes leem PENDENTE antes do commit uma da outra; só a que
		// bloquear o cabeçalho primeiro passa daqui.
		locked, err := orderRepo.GetWithItemsForUpdate(orderID)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, orderID)
		}
		if locked.Status != entity.OrderStatusPending {
			return fmt.Errorf("%w: pedido %s em %s não pode ser alocado", domain.ErrConflict, orderID, locked.Status)
		}
		if len(locked.Items) == 0 {
			return fmt.Errorf("%w: pedido %s sem itens", domain.ErrInvalidInput, orderID)
		}

		productIDs := uniqueProductIDs(locked.Items)

		// Receitas lidas dentro da transação (lista vazia = sem receita).
		// Os insumos entram no conjunto de bloqueio junto com os produtos.
		recipes := make(map[string][]*entity.RecipeComponent, len(productIDs))
		lockSet := make(map[string]struct{}, len(productIDs))
		for _, id := range productIDs {
			lockSet[id] = struct{}{}
			recipe, err := recipeRepo.GetByProduct(id)
			if err != nil {
				return err
			}
			if len(recipe) > 0 {
				recipes[id] = recipe
				for _, comp := range recipe {
					lockSet[comp.IngredientID] = struct{}{}
				}
			}
		}
		lockIDs := make([]string, 0, len(lockSet))
		for id := range lockSet {
			lockIDs = append(lockIDs, id)
		}
		sort.Strings(lockIDs)

		// Uma única passada de bloqueio (FOR UPDATE) em ordem de ID cobre
		// produtos do pedido e insumos. Insumo sem cadastro fica de fora e
		// vira aviso na baixa; produto do pedido sem cadastro é erro.
		ordered := make(map[string]struct{}, len(productIDs))
		for _, id := range productIDs {
			ordered[id] = struct{}{}
		}
		products := make(map[string]*entity.Product, len(lockIDs))
		for _, id := range lockIDs {
			product, err := productRepo.GetByIDForUpdate(id)
			if err != nil {
				return err
			}
			if product == nil {
				if _, ok := ordered[id]; ok {
					return fmt.Errorf("%w: produto %s", domain.ErrNotFound, id)
				}
				continue
			}
			products[id] = product
		}

		// Fase pura: classifica os itens contra o retrato bloqueado.
		plan, err := allocation.BuildPlan(locked, products)
		if err != nil {
			return err
		}

		// Aplicação: rastreios, baixas de estoque e ordens de trabalho.
		stocks := make(map[string]decimal.Decimal, len(products))
		for id, p := range products {
			stocks[id] = p.Stock
		}

		warnings := append([]allocation.Warning(nil), plan.Warnings...)
		var trackings []*entity.ItemTracking
		var productionOrders []*entity.ProductionOrder
		var packagingOrders []*entity.PackagingOrder

		for _, ip := range plan.Items {
			alloc := ip.Allocation

			tracking := &entity.ItemTracking{
				ID:                     uuid.New().String(),
				OrderItemID:            ip.Item.ID,
				QuantityTarget:         alloc.Requested,
				QuantityFromStock:      alloc.FromStock,
				QuantityFromProduction: alloc.FromProduction,
				Status:                 entity.TrackingStatusPending,
				CreatedAt:              now,
				UpdatedAt:              now,
			}
			if err := trackingRepo.Create(tracking); err != nil {
				return err
			}
			trackings = append(trackings, tracking)

			if alloc.StockDeduction.GreaterThan(decimal.Zero) {
				next := allocation.DeductStock(stocks[ip.Product.ID], alloc.StockDeduction)
				stocks[ip.Product.ID] = next
				if err := productRepo.UpdateStock(ip.Product.ID, next); err != nil {
					return err
				}
			}

			if alloc.Kind.NeedsProductionEntry() {
				productionOrders = append(productionOrders, &entity.ProductionOrder{
					ID:         uuid.New().String(),
					TrackingID: tracking.ID,
					ProductID:  ip.Product.ID,
					Quantity:   alloc.FromProduction,
					Status:     entity.ProductionStatusRequested,
					CreatedAt:  now,
				})
			}
			if alloc.Kind.NeedsPackagingEntry() {
				packagingOrders = append(packagingOrders, &entity.PackagingOrder{
					ID:                    uuid.New().String(),
					TrackingID:            tracking.ID,
					OrderID:               locked.ID,
					CustomerID:            locked.CustomerID,
					ProductID:             ip.Product.ID,
					Quantity:              alloc.StockDeduction,
					AwaitingReplenishment: alloc.AwaitingReplenishment,
					Status:                entity.PackagingStatusPending,
					CreatedAt:             now,
					UpdatedAt:             now,
				})
			}
		}

		if len(productionOrders) > 0 {
			if err := productionRepo.CreateBatch(productionOrders); err != nil {
				return err
			}
		}
		if len(packagingOrders) > 0 {
			if err := packagingRepo.CreateBatch(packagingOrders); err != nil {
				return err
			}
		}

		// Baixa de insumos por ordem de produção, sobre as linhas já
		// bloqueadas na passada única. Insumo sem cadastro vira aviso e não
		// interrompe a alocação; falha de escrita desfaz tudo (limite único
		// de commit).
		for _, po := range productionOrders {
			for _, ded := range allocation.IngredientDeductions(recipes[po.ProductID], po.Quantity) {
				ingredient, ok := products[ded.IngredientID]
				if !ok {
					warnings = append(warnings, allocation.Warning{
						Code:      allocation.WarnIngredientDeduction,
						ProductID: ded.IngredientID,
						Quantity:  ded.Quantity,
						Message:   fmt.Sprintf("insumo %s sem cadastro; baixa de %s não aplicada", ded.IngredientID, ded.Quantity.String()),
					})
					continue
				}
				next := allocation.DeductStock(stocks[ingredient.ID], ded.Quantity)
				stocks[ingredient.ID] = next
				if err := productRepo.UpdateStock(ingredient.ID, next); err != nil {
					return err
				}
			}
		}

		status := allocation.DeriveOrderStatus(locked.Status, plan.HasDirectPackaging(), plan.NeedsProduction())
		if status != locked.Status {
			if err := orderRepo.UpdateStatus(locked.ID, status); err != nil {
				return err
			}
		}

		result = &Result{
			OrderID:          locked.ID,
			Status:           status,
			Warnings:         warnings,
			Trackings:        trackings,
			ProductionOrders: productionOrders,
			PackagingOrders:  packagingOrders,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// uniqueProductIDs devolve os IDs de produto do pedido, sem repetição e em
// ordem crescente.
func uniqueProductIDs(items []*entity.OrderItem) []string {
	seen := make(map[string]struct{}, len(items))
	var ids []string
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	sort.Strings(ids)
	return ids
}
