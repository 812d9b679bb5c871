package allocation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvieira/pedidos-pro/internal/domain"
	"github.com/mvieira/pedidos-pro/internal/domain/allocation"
)

func qty(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// requireInvariant confere a invariante do rastreio:
// FromStock + FromProduction == Requested.
func requireInvariant(t *testing.T, a allocation.ItemAllocation) {
	t.Helper()
	require.True(t, a.FromStock.Add(a.FromProduction).Equal(a.Requested),
		"FromStock (%s) + FromProduction (%s) deve ser igual ao pedido (%s)",
		a.FromStock, a.FromProduction, a.Requested)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabela de decisão — primeira linha que casa vence
// ──────────────────────────────────────────────────────────────────────────────

// Estoque cobre a quantidade inteira → tudo para embalagem.
func TestClassify_EstoqueTotal(t *testing.T) {
	a, err := allocation.Classify(qty(5), qty(5), false, false)
	require.NoError(t, err)

	assert.Equal(t, allocation.RouteFullStock, a.Kind)
	assert.True(t, a.FromStock.Equal(qty(5)), "tudo deve sair do estoque")
	assert.True(t, a.FromProduction.IsZero(), "nada deve ir para produção")
	assert.True(t, a.StockDeduction.Equal(qty(5)), "a baixa deve ser a quantidade pedida")
	assert.False(t, a.AwaitingReplenishment)
	requireInvariant(t, a)
}

// Estoque sobrando → baixa só o pedido, não o saldo.
func TestClassify_EstoqueSobrando(t *testing.T) {
	a, err := allocation.Classify(qty(3), qty(10), true, false)
	require.NoError(t, err)

	assert.Equal(t, allocation.RouteFullStock, a.Kind,
		"produto fabricado com estoque suficiente não vai para produção")
	assert.True(t, a.StockDeduction.Equal(qty(3)))
	requireInvariant(t, a)
}

// Estoque parcial + fabricado → divide: estoque zera, resto vai para produção.
func TestClassify_DivisaoEstoqueProducao(t *testing.T) {
	a, err := allocation.Classify(qty(10), qty(2), true, false)
	require.NoError(t, err)

	assert.Equal(t, allocation.RouteSplit, a.Kind)
	assert.True(t, a.FromStock.Equal(qty(2)), "a parte disponível sai do estoque")
	assert.True(t, a.FromProduction.Equal(qty(8)), "a falta vai para produção")
	assert.True(t, a.StockDeduction.Equal(qty(2)), "a baixa zera o estoque")
	requireInvariant(t, a)
}

// Estoque parcial + venda direta (não fabricado) → embalagem parcial, falta
// não produzida.
func TestClassify_VendaDiretaComFaltaParcial(t *testing.T) {
	a, err := allocation.Classify(qty(5), qty(2), false, true)
	require.NoError(t, err)

	assert.Equal(t, allocation.RouteDirectSaleShortfall, a.Kind)
	assert.True(t, a.FromStock.Equal(qty(5)),
		"a falta permanece atribuída ao estoque no rastreio")
	assert.True(t, a.FromProduction.IsZero(), "venda direta nunca gera produção")
	assert.True(t, a.StockDeduction.Equal(qty(2)), "só o disponível sai do estoque")
	assert.False(t, a.AwaitingReplenishment,
		"com estoque parcial a entrada não fica aguardando reposição")
	requireInvariant(t, a)
}

// Estoque parcial, não fabricado, sem venda direta → rejeição.
func TestClassify_RejeicaoEstoqueParcial(t *testing.T) {
	_, err := allocation.Classify(qty(5), qty(2), false, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"a rejeição deve carregar o erro sentinela de estoque insuficiente")
}

// Estoque zero + fabricado → tudo para produção (mesmo com venda direta,
// a linha de fabricação vence na tabela).
func TestClassify_ProducaoTotal(t *testing.T) {
	a, err := allocation.Classify(qty(7), decimal.Zero, true, true)
	require.NoError(t, err)

	assert.Equal(t, allocation.RouteProductionOnly, a.Kind,
		"fabricado tem prioridade sobre venda direta quando o estoque é zero")
	assert.True(t, a.FromProduction.Equal(qty(7)))
	assert.True(t, a.StockDeduction.IsZero(), "nada sai do estoque")
	requireInvariant(t, a)
}

// Estoque zero + venda direta → embalagem de quantidade zero aguardando
// reposição.
func TestClassify_VendaDiretaSemEstoque(t *testing.T) {
	a, err := allocation.Classify(qty(5), decimal.Zero, false, true)
	require.NoError(t, err)

	assert.Equal(t, allocation.RouteDirectSaleShortfall, a.Kind)
	assert.True(t, a.Kind.NeedsPackagingEntry(),
		"mesmo sem estoque a ordem de embalagem (qty 0) deve ser criada")
	assert.True(t, a.StockDeduction.IsZero())
	assert.True(t, a.AwaitingReplenishment, "a entrada deve aguardar reposição")
	requireInvariant(t, a)
}

// Estoque zero, não fabricado, sem venda direta → rejeição.
func TestClassify_RejeicaoSemEstoque(t *testing.T) {
	_, err := allocation.Classify(qty(5), decimal.Zero, false, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers da variante
// ──────────────────────────────────────────────────────────────────────────────

func TestRouteKind_Entradas(t *testing.T) {
	assert.True(t, allocation.RouteFullStock.NeedsPackagingEntry())
	assert.False(t, allocation.RouteFullStock.NeedsProductionEntry())

	assert.True(t, allocation.RouteSplit.NeedsPackagingEntry())
	assert.True(t, allocation.RouteSplit.NeedsProductionEntry())

	assert.False(t, allocation.RouteProductionOnly.NeedsPackagingEntry())
	assert.True(t, allocation.RouteProductionOnly.NeedsProductionEntry())

	assert.True(t, allocation.RouteDirectSaleShortfall.NeedsPackagingEntry())
	assert.False(t, allocation.RouteDirectSaleShortfall.NeedsProductionEntry())
}
