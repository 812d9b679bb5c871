package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mvieira/pedidos-pro/internal/domain/entity"
	"github.com/mvieira/pedidos-pro/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo implementação de ProductionRepository (usável com pool ou tx).
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

// CreateBatch persiste as ordens de produção de uma alocação.
func (r *ProductionRepo) CreateBatch(orders []*entity.ProductionOrder) error {
	for _, o := range orders {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO production_orders (id, tracking_id, product_id, quantity, status, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			o.ID, o.TrackingID, o.ProductID, o.Quantity, o.Status, o.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert production order: %w", err)
		}
	}
	return nil
}

// GetByID obtém uma ordem de produção por ID, ou nil.
func (r *ProductionRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	err := r.q.QueryRow(context.Background(),
		`SELECT id, tracking_id, product_id, quantity, status, created_at
		 FROM production_orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.TrackingID, &o.ProductID, &o.Quantity, &o.Status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	return &o, nil
}

// ListByStatus lista ordens de produção num status, com paginação.
func (r *ProductionRepo) ListByStatus(status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, tracking_id, product_id, quantity, status, created_at
		 FROM production_orders WHERE status = $1 ORDER BY created_at LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionOrder
	for rows.Next() {
		var o entity.ProductionOrder
		if err := rows.Scan(&o.ID, &o.TrackingID, &o.ProductID, &o.Quantity, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
