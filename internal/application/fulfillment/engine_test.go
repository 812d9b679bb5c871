package fulfillment_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvieira/pedidos-pro/internal/application/fulfillment"
	"github.com/mvieira/pedidos-pro/internal/domain"
	"github.com/mvieira/pedidos-pro/internal/domain/allocation"
	"github.com/mvieira/pedidos-pro/internal/domain/entity"
)

// ── montagem ──────────────────────────────────────────────────────────────────

func newEngine(s *fakeStore) *fulfillment.AllocateOrderUseCase {
	return fulfillment.NewAllocateOrderUseCase(&fakeTxRunner{s}, &fakeOrderRepo{s})
}

func seedProduct(s *fakeStore, id string, stock int64, manufactured, directSale bool) {
	s.products[id] = entity.Product{
		ID:           id,
		SKU:          "SKU-" + id,
		Name:         "Produto " + id,
		Stock:        decimal.NewFromInt(stock),
		Manufactured: manufactured,
		DirectSale:   directSale,
	}
}

func seedOrder(s *fakeStore, id string, items ...*entity.OrderItem) {
	s.orders[id] = entity.Order{
		ID:         id,
		CustomerID: "cliente-1",
		Status:     entity.OrderStatusPending,
		Items:      items,
	}
}

func orderItem(id, productID string, quantity int64) *entity.OrderItem {
	return &entity.OrderItem{ID: id, OrderID: "order-1", ProductID: productID, Quantity: decimal.NewFromInt(quantity)}
}

func stockOf(s *fakeStore, productID string) decimal.Decimal {
	return s.products[productID].Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Roteamento pelo estoque
// ──────────────────────────────────────────────────────────────────────────────

// stock=5, pedido=5, não fabricado → embalagem de 5, estoque zera, sem
// produção, pedido EM_EMBALAGEM.
func TestAllocateOrder_EstoqueTotal(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 5, false, false)
	seedOrder(s, "order-1", orderItem("i1", "p1", 5))

	result, err := newEngine(s).AllocateOrder(context.Background(), "order-1")
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusInPackaging, result.Status)
	assert.Equal(t, entity.OrderStatusInPackaging, s.orders["order-1"].Status,
		"o status derivado deve ser persistido no pedido")
	assert.True(t, stockOf(s, "p1").IsZero(), "o estoque deve zerar")

	require.Len(t, s.packagings, 1)
	assert.True(t, s.packagings[0].Quantity.Equal(decimal.NewFromInt(5)))
	assert.Empty(t, s.productions, "nada deve ir para produção")
	assert.Empty(t, result.Warnings)

	require.Len(t, result.Trackings, 1)
	tr := result.Trackings[0]
	assert.Equal(t, entity.TrackingStatusPending, tr.Status)
	assert.True(t, tr.QuantityFromStock.Equal(decimal.NewFromInt(5)))
	assert.True(t, tr.QuantityFromProduction.IsZero())
}

// stock=2, pedido=10, fabricado com receita [(I1,2),(I2,3)] → embalagem de 2,
// produção de 8, baixa de insumos 16 e 24, pedido EM_EMBALAGEM.
func TestAllocateOrder_DivisaoComExplosaoDeInsumos(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 2, true, false)
	seedProduct(s, "I1", 50, false, false)
	seedProduct(s, "I2", 100, false, false)
	s.recipes["p1"] = []*entity.RecipeComponent{
		{ProductID: "p1", IngredientID: "I1", QuantityPerUnit: decimal.NewFromInt(2), Position: 1},
		{ProductID: "p1", IngredientID: "I2", QuantityPerUnit: decimal.NewFromInt(3), Position: 2},
	}
	seedOrder(s, "order-1", orderItem("i1", "p1", 10))

	result, err := newEngine(s).AllocateOrder(context.Background(), "order-1")
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusInPackaging, result.Status,
		"com embalagem direta o pedido vai para EM_EMBALAGEM mesmo com produção pendente")

	require.Len(t, s.packagings, 1)
	assert.True(t, s.packagings[0].Quantity.Equal(decimal.NewFromInt(2)))
	require.Len(t, s.productions, 1)
	assert.True(t, s.productions[0].Quantity.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, result.Trackings[0].ID, s.productions[0].TrackingID,
		"a ordem de produção referencia o rastreio do item")

	assert.True(t, stockOf(s, "p1").IsZero())
	assert.True(t, stockOf(s, "I1").Equal(decimal.NewFromInt(34)), "I1: 50 - 8×2 = 34")
	assert.True(t, stockOf(s, "I2").Equal(decimal.NewFromInt(76)), "I2: 100 - 8×3 = 76")
}

// stock=0, fabricado → tudo para produção, pedido EM_PRODUCAO, sem embalagem.
func TestAllocateOrder_ProducaoTotal(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 0, true, false)
	seedOrder(s, "order-1", orderItem("i1", "p1", 7))

	result, err := newEngine(s).AllocateOrder(context.Background(), "order-1")
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusInProduction, result.Status)
	assert.Empty(t, s.packagings)
	require.Len(t, s.productions, 1)
	assert.True(t, s.productions[0].Quantity.Equal(decimal.NewFromInt(7)))
}

// Venda direta sem estoque → embalagem de quantidade zero aguardando
// reposição, aviso emitido, pedido EM_EMBALAGEM.
func TestAllocateOrder_VendaDiretaSemEstoque(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 0, false, true)
	seedOrder(s, "order-1", orderItem("i1", "p1", 5))

	result, err := newEngine(s).AllocateOrder(context.Background(), "order-1")
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusInPackaging, result.Status)
	require.Len(t, s.packagings, 1)
	assert.True(t, s.packagings[0].Quantity.IsZero(), "a embalagem nasce com quantidade zero")
	assert.True(t, s.packagings[0].AwaitingReplenishment, "a entrada deve aguardar reposição")

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, allocation.WarnAwaitingReplenishment, result.Warnings[0].Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rejeição e atomicidade
// ──────────────────────────────────────────────────────────────────────────────

// Item rejeitável no meio do pedido: nada é persistido para nenhum item e o
// status do pedido não muda.
func TestAllocateOrder_RejeicaoNadaPersiste(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 5, false, false)
	seedProduct(s, "p2", 0, false, false) // sem estoque, sem saída
	seedOrder(s, "order-1", orderItem("i1", "p1", 5), orderItem("i2", "p2", 3))

	result, err := newEngine(s).AllocateOrder(context.Background(), "order-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, result)

	assert.Equal(t, entity.OrderStatusPending, s.orders["order-1"].Status, "status intacto")
	assert.True(t, stockOf(s, "p1").Equal(decimal.NewFromInt(5)), "estoque do primeiro item intacto")
	assert.Empty(t, s.trackings, "nenhum rastreio deve sobreviver à rejeição")
	assert.Empty(t, s.packagings)
	assert.Empty(t, s.productions)
}

// Falha de persistência no meio da alocação (batch de produção) desfaz tudo:
// limite único de commit, sem estado parcial.
func TestAllocateOrder_FalhaDePersistenciaDesfazTudo(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 2, true, false)
	seedOrder(s, "order-1", orderItem("i1", "p1", 10))
	s.failOnProductionBatch = true

	_, err := newEngine(s).AllocateOrder(context.Background(), "order-1")
	require.Error(t, err)

	assert.True(t, stockOf(s, "p1").Equal(decimal.NewFromInt(2)), "a baixa de estoque deve ser desfeita")
	assert.Empty(t, s.trackings, "o rastreio criado antes da falha deve ser desfeito")
	assert.Empty(t, s.packagings)
	assert.Equal(t, entity.OrderStatusPending, s.orders["order-1"].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validações e insumos
// ──────────────────────────────────────────────────────────────────────────────

func TestAllocateOrder_PedidoInexistente(t *testing.T) {
	s := newFakeStore()
	_, err := newEngine(s).AllocateOrder(context.Background(), "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAllocateOrder_PedidoJaAlocado(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 5, false, false)
	seedOrder(s, "order-1", orderItem("i1", "p1", 5))
	o := s.orders["order-1"]
	o.Status = entity.OrderStatusInPackaging
	s.orders["order-1"] = o

	_, err := newEngine(s).AllocateOrder(context.Background(), "order-1")
	assert.ErrorIs(t, err, domain.ErrConflict, "pedido fora de PENDENTE não pode ser alocado de novo")
}

func TestAllocateOrder_PedidoCancelado(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 5, false, false)
	seedOrder(s, "order-1", orderItem("i1", "p1", 5))
	o := s.orders["order-1"]
	o.Status = entity.OrderStatusCancelled
	s.orders["order-1"] = o

	_, err := newEngine(s).AllocateOrder(context.Background(), "order-1")
	assert.ErrorIs(t, err, domain.ErrConflict, "CANCELADO é estado de parada")
}

func TestAllocateOrder_QuantidadeInvalida(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 5, false, false)
	seedOrder(s, "order-1", orderItem("i1", "p1", 0))

	_, err := newEngine(s).AllocateOrder(context.Background(), "order-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Insumo referenciado pela receita mas sem cadastro: a alocação prossegue e
// o aviso carrega a baixa não aplicada.
func TestAllocateOrder_InsumoSemCadastroViraAviso(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 0, true, false)
	s.recipes["p1"] = []*entity.RecipeComponent{
		{ProductID: "p1", IngredientID: "fantasma", QuantityPerUnit: decimal.NewFromInt(2), Position: 1},
	}
	seedOrder(s, "order-1", orderItem("i1", "p1", 4))

	result, err := newEngine(s).AllocateOrder(context.Background(), "order-1")
	require.NoError(t, err, "a baixa de insumo que falha não interrompe o pedido")

	require.Len(t, result.Warnings, 1)
	w := result.Warnings[0]
	assert.Equal(t, allocation.WarnIngredientDeduction, w.Code)
	assert.Equal(t, "fantasma", w.ProductID)
	assert.True(t, w.Quantity.Equal(decimal.NewFromInt(8)))
	require.Len(t, s.productions, 1, "a ordem de produção permanece")
}

// Baixa de insumo maior que o saldo trava em zero, nunca negativa.
func TestAllocateOrder_BaixaDeInsumoComPisoEmZero(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 0, true, false)
	seedProduct(s, "I1", 5, false, false)
	s.recipes["p1"] = []*entity.RecipeComponent{
		{ProductID: "p1", IngredientID: "I1", QuantityPerUnit: decimal.NewFromInt(2), Position: 1},
	}
	seedOrder(s, "order-1", orderItem("i1", "p1", 4)) // baixa de 8 contra saldo 5

	_, err := newEngine(s).AllocateOrder(context.Background(), "order-1")
	require.NoError(t, err)
	assert.True(t, stockOf(s, "I1").IsZero(), "o estoque do insumo trava em zero")
}

// Duas linhas do mesmo produto no pedido consomem o saldo em sequência
// dentro da mesma transação.
func TestAllocateOrder_ProdutoRepetido(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 6, true, false)
	seedOrder(s, "order-1", orderItem("i1", "p1", 4), orderItem("i2", "p1", 4))

	result, err := newEngine(s).AllocateOrder(context.Background(), "order-1")
	require.NoError(t, err)

	assert.True(t, stockOf(s, "p1").IsZero(), "as duas linhas juntas zeram o estoque")
	require.Len(t, s.productions, 1)
	assert.True(t, s.productions[0].Quantity.Equal(decimal.NewFromInt(2)),
		"só a falta da segunda linha vai para produção")
	require.Len(t, result.Trackings, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concorrência: reconferência de status e ordem de bloqueio
// ──────────────────────────────────────────────────────────────────────────────

// Duas alocações concorrentes do mesmo pedido leem PENDENTE antes do commit
// uma da outra (READ COMMITTED). A segunda reconfere o status com o cabeçalho
// bloqueado dentro da transação e aborta: uma única baixa e um rastreio por
// item, nunca dois.
func TestAllocateOrder_ReconfereStatusComCabecalhoBloqueado(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 10, false, false)
	seedOrder(s, "order-1", orderItem("i1", "p1", 5))

	_, err := newEngine(s).AllocateOrder(context.Background(), "order-1")
	require.NoError(t, err)

	// A segunda requisição ainda enxerga PENDENTE na pré-checagem fora da
	// transação; o estado vivo já está EM_EMBALAGEM.
	s.staleOrderStatus = entity.OrderStatusPending
	_, err = newEngine(s).AllocateOrder(context.Background(), "order-1")
	require.ErrorIs(t, err, domain.ErrConflict,
		"a reconferência com o cabeçalho bloqueado deve abortar a segunda alocação")

	assert.True(t, stockOf(s, "p1").Equal(decimal.NewFromInt(5)), "o estoque é baixado uma única vez")
	assert.Len(t, s.trackings, 1, "um rastreio por item do pedido")
	assert.Len(t, s.packagings, 1)
}

// Os bloqueios FOR UPDATE seguem ordem determinística: cabeçalho do pedido
// primeiro, depois produtos e insumos numa única passada em ordem crescente
// de ID, independente da ordem das linhas do pedido.
func TestAllocateOrder_BloqueioEmOrdemDeterministica(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "prod-c", 1, true, false)
	seedProduct(s, "prod-a", 0, true, false)
	seedProduct(s, "insumo-b", 50, false, false)
	s.recipes["prod-a"] = []*entity.RecipeComponent{
		{ProductID: "prod-a", IngredientID: "insumo-b", QuantityPerUnit: decimal.NewFromInt(2), Position: 1},
	}
	seedOrder(s, "order-1", orderItem("i1", "prod-c", 3), orderItem("i2", "prod-a", 4))

	_, err := newEngine(s).AllocateOrder(context.Background(), "order-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"pedido:order-1", "insumo-b", "prod-a", "prod-c"}, s.locks,
		"cabeçalho primeiro, depois as linhas em ordem crescente de ID")
	assert.True(t, stockOf(s, "insumo-b").Equal(decimal.NewFromInt(42)),
		"a baixa de insumo usa a linha bloqueada na passada única")
}
