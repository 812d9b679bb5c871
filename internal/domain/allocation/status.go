package allocation

import "github.com/mvieira/pedidos-pro/internal/domain/entity"

// DeriveOrderStatus dobra o desfecho agregado da alocação no próximo status
// do pipeline do pedido:
//
//	embalagem?  produção?  resultado
//	sim         sim        EM_EMBALAGEM
//	sim         não        EM_EMBALAGEM
//	não         sim        EM_PRODUCAO
//	não         não        status atual (nenhuma ordem despachada)
//
// Na primeira linha o pedido vai para EM_EMBALAGEM mesmo com parte da
// quantidade ainda só solicitada à produção, comportamento herdado do
// pipeline; o rastreio por item é quem diz o que falta produzir.
func DeriveOrderStatus(current string, hasDirectPackaging, needsProduction bool) string {
	switch {
	case hasDirectPackaging:
		return entity.OrderStatusInPackaging
	case needsProduction:
		return entity.OrderStatusInProduction
	default:
		return current
	}
}
