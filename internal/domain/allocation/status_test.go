package allocation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvieira/pedidos-pro/internal/domain/allocation"
	"github.com/mvieira/pedidos-pro/internal/domain/entity"
)

// Tabela de derivação do status do pedido a partir do desfecho agregado.
func TestDeriveOrderStatus_Tabela(t *testing.T) {
	cases := []struct {
		name               string
		hasDirectPackaging bool
		needsProduction    bool
		expected           string
	}{
		{"embalagem e produção", true, true, entity.OrderStatusInPackaging},
		{"só embalagem", true, false, entity.OrderStatusInPackaging},
		{"só produção", false, true, entity.OrderStatusInProduction},
		{"nenhuma ordem", false, false, entity.OrderStatusPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := allocation.DeriveOrderStatus(entity.OrderStatusPending, tc.hasDirectPackaging, tc.needsProduction)
			assert.Equal(t, tc.expected, got)
		})
	}
}

// Sem ordens despachadas o status atual é preservado, seja qual for.
func TestDeriveOrderStatus_SemOrdensPreservaAtual(t *testing.T) {
	got := allocation.DeriveOrderStatus(entity.OrderStatusCancelled, false, false)
	assert.Equal(t, entity.OrderStatusCancelled, got,
		"sem embalagem nem produção o status não muda")
}

// Pedido com produção pendente ainda assim vai para EM_EMBALAGEM quando há
// qualquer embalagem direta (comportamento herdado do pipeline).
func TestDeriveOrderStatus_EmbalagemVenceProducao(t *testing.T) {
	got := allocation.DeriveOrderStatus(entity.OrderStatusPending, true, true)
	assert.Equal(t, entity.OrderStatusInPackaging, got)
}
