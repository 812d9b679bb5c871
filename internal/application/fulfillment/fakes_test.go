package fulfillment_test

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mvieira/pedidos-pro/internal/domain/entity"
	"github.com/mvieira/pedidos-pro/internal/domain/repository"
)

// fakeStore guarda o estado em memória por valor, para o fakeTxRunner poder
// clonar e restaurar no rollback. O motor é testável sem banco graças à
// separação planejar/aplicar.
type fakeStore struct {
	products    map[string]entity.Product
	orders      map[string]entity.Order
	recipes     map[string][]*entity.RecipeComponent
	trackings   map[string]entity.ItemTracking
	productions []entity.ProductionOrder
	packagings  []entity.PackagingOrder

	// failOnProductionBatch simula falha de persistência no meio da alocação.
	failOnProductionBatch bool

	// staleOrderStatus, quando definido, é o status devolvido pelas leituras
	// de pedido fora da transação: emula o retrato desatualizado que uma
	// requisição concorrente enxerga antes do commit da outra.
	staleOrderStatus string

	// locks registra a sequência de bloqueios FOR UPDATE pedidos ao banco.
	locks []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  make(map[string]entity.Product),
		orders:    make(map[string]entity.Order),
		recipes:   make(map[string][]*entity.RecipeComponent),
		trackings: make(map[string]entity.ItemTracking),
	}
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.recipes {
		c.recipes[k] = v
	}
	for k, v := range s.trackings {
		c.trackings[k] = v
	}
	c.productions = append(c.productions, s.productions...)
	c.packagings = append(c.packagings, s.packagings...)
	c.failOnProductionBatch = s.failOnProductionBatch
	c.staleOrderStatus = s.staleOrderStatus
	c.locks = append(c.locks, s.locks...)
	return c
}

// ── repositórios fake ─────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	r.s.locks = append(r.s.locks, id)
	return r.GetByID(id)
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID string, stock decimal.Decimal) error {
	p, ok := r.s.products[productID]
	if !ok {
		return errors.New("produto inexistente")
	}
	p.Stock = stock
	r.s.products[productID] = p
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

type fakeOrderRepo struct{ s *fakeStore }

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	r.s.orders[o.ID] = *o
	return nil
}

func (r *fakeOrderRepo) GetWithItems(id string) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := o
	if r.s.staleOrderStatus != "" {
		cp.Status = r.s.staleOrderStatus
	}
	return &cp, nil
}

// GetWithItemsForUpdate lê o estado vivo do store, como a leitura bloqueante
// dentro da transação faria.
func (r *fakeOrderRepo) GetWithItemsForUpdate(id string) (*entity.Order, error) {
	r.s.locks = append(r.s.locks, "pedido:"+id)
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := o
	return &cp, nil
}

func (r *fakeOrderRepo) UpdateStatus(orderID, status string) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return errors.New("pedido inexistente")
	}
	o.Status = status
	r.s.orders[orderID] = o
	return nil
}

func (r *fakeOrderRepo) ListByStatus(status string, limit, offset int) ([]*entity.Order, error) {
	return nil, nil
}

type fakeRecipeRepo struct{ s *fakeStore }

func (r *fakeRecipeRepo) GetByProduct(productID string) ([]*entity.RecipeComponent, error) {
	return r.s.recipes[productID], nil
}

func (r *fakeRecipeRepo) Replace(productID string, components []*entity.RecipeComponent) error {
	r.s.recipes[productID] = components
	return nil
}

type fakeTrackingRepo struct{ s *fakeStore }

func (r *fakeTrackingRepo) Create(t *entity.ItemTracking) error {
	r.s.trackings[t.ID] = *t
	return nil
}

func (r *fakeTrackingRepo) GetByID(id string) (*entity.ItemTracking, error) {
	t, ok := r.s.trackings[id]
	if !ok {
		return nil, nil
	}
	cp := t
	return &cp, nil
}

func (r *fakeTrackingRepo) ListByOrder(orderID string) ([]*entity.ItemTracking, error) {
	order, ok := r.s.orders[orderID]
	if !ok {
		return nil, nil
	}
	itemIDs := make(map[string]struct{}, len(order.Items))
	for _, item := range order.Items {
		itemIDs[item.ID] = struct{}{}
	}
	var list []*entity.ItemTracking
	for _, t := range r.s.trackings {
		if _, ok := itemIDs[t.OrderItemID]; ok {
			cp := t
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeTrackingRepo) Update(t *entity.ItemTracking) error {
	r.s.trackings[t.ID] = *t
	return nil
}

type fakeProductionRepo struct{ s *fakeStore }

func (r *fakeProductionRepo) CreateBatch(orders []*entity.ProductionOrder) error {
	if r.s.failOnProductionBatch {
		return errors.New("falha simulada de persistência")
	}
	for _, o := range orders {
		r.s.productions = append(r.s.productions, *o)
	}
	return nil
}

func (r *fakeProductionRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	for _, o := range r.s.productions {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductionRepo) ListByStatus(status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	return nil, nil
}

type fakePackagingRepo struct{ s *fakeStore }

func (r *fakePackagingRepo) CreateBatch(orders []*entity.PackagingOrder) error {
	for _, o := range orders {
		r.s.packagings = append(r.s.packagings, *o)
	}
	return nil
}

func (r *fakePackagingRepo) GetByID(id string) (*entity.PackagingOrder, error) {
	for _, o := range r.s.packagings {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePackagingRepo) ListAwaitingReplenishment(limit int) ([]*entity.PackagingOrder, error) {
	var list []*entity.PackagingOrder
	for i := range r.s.packagings {
		if r.s.packagings[i].AwaitingReplenishment {
			cp := r.s.packagings[i]
			list = append(list, &cp)
			if limit > 0 && len(list) == limit {
				break
			}
		}
	}
	return list, nil
}

func (r *fakePackagingRepo) Update(o *entity.PackagingOrder) error {
	for i := range r.s.packagings {
		if r.s.packagings[i].ID == o.ID {
			r.s.packagings[i] = *o
			return nil
		}
	}
	return errors.New("ordem de embalagem inexistente")
}

// ── TxRunner fake com rollback por clone ──────────────────────────────────────

type fakeTxRunner struct{ s *fakeStore }

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	recipeRepo repository.RecipeRepository,
	trackingRepo repository.TrackingRepository,
	productionRepo repository.ProductionRepository,
	packagingRepo repository.PackagingRepository,
) error) error {
	backup := tr.s.clone()
	err := fn(
		&fakeProductRepo{tr.s},
		&fakeOrderRepo{tr.s},
		&fakeRecipeRepo{tr.s},
		&fakeTrackingRepo{tr.s},
		&fakeProductionRepo{tr.s},
		&fakePackagingRepo{tr.s},
	)
	if err != nil {
		*tr.s = *backup
		return err
	}
	return nil
}
