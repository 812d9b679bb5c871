package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mvieira/pedidos-pro/internal/domain/entity"
	"github.com/mvieira/pedidos-pro/internal/domain/repository"
)

var _ repository.PackagingRepository = (*PackagingRepo)(nil)

const packagingColumns = `id, tracking_id, order_id, customer_id, product_id, quantity,
	awaiting_replenishment, status, created_at, updated_at`

// PackagingRepo implementação de PackagingRepository (usável com pool ou tx).
type PackagingRepo struct {
	q Querier
}

// NewPackagingRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPackagingRepository(q Querier) *PackagingRepo {
	return &PackagingRepo{q: q}
}

// CreateBatch persiste as ordens de embalagem de uma alocação, inclusive a
// entrada de quantidade zero aguardando reposição.
func (r *PackagingRepo) CreateBatch(orders []*entity.PackagingOrder) error {
	for _, o := range orders {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO packaging_orders (id, tracking_id, order_id, customer_id, product_id, quantity,
				awaiting_replenishment, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			o.ID, o.TrackingID, o.OrderID, o.CustomerID, o.ProductID, o.Quantity,
			o.AwaitingReplenishment, o.Status, o.CreatedAt, o.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert packaging order: %w", err)
		}
	}
	return nil
}

// GetByID obtém uma ordem de embalagem por ID, ou nil.
func (r *PackagingRepo) GetByID(id string) (*entity.PackagingOrder, error) {
	var o entity.PackagingOrder
	err := r.q.QueryRow(context.Background(),
		`SELECT `+packagingColumns+` FROM packaging_orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.TrackingID, &o.OrderID, &o.CustomerID, &o.ProductID, &o.Quantity,
		&o.AwaitingReplenishment, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get packaging order: %w", err)
	}
	return &o, nil
}

// ListAwaitingReplenishment devolve as entradas aguardando reposição, das
// mais antigas para as mais novas.
func (r *PackagingRepo) ListAwaitingReplenishment(limit int) ([]*entity.PackagingOrder, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+packagingColumns+` FROM packaging_orders
		 WHERE awaiting_replenishment ORDER BY created_at LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list awaiting packaging orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PackagingOrder
	for rows.Next() {
		var o entity.PackagingOrder
		if err := rows.Scan(&o.ID, &o.TrackingID, &o.OrderID, &o.CustomerID, &o.ProductID, &o.Quantity,
			&o.AwaitingReplenishment, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan packaging order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Update grava quantidade, flag de reposição e status.
func (r *PackagingRepo) Update(o *entity.PackagingOrder) error {
	query := `
		UPDATE packaging_orders
		SET quantity = $2, awaiting_replenishment = $3, status = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Quantity, o.AwaitingReplenishment, o.Status, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update packaging order: %w", err)
	}
	return nil
}
