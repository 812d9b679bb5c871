package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mvieira/pedidos-pro/internal/domain/entity"
	"github.com/mvieira/pedidos-pro/internal/domain/repository"
)

var _ repository.TrackingRepository = (*TrackingRepo)(nil)

const trackingColumns = `id, order_item_id, quantity_target, quantity_from_stock, quantity_from_production,
	quantity_produced_approved, quantity_packaged_approved, status, created_at, updated_at`

// TrackingRepo implementação de TrackingRepository (usável com pool ou tx).
type TrackingRepo struct {
	q Querier
}

// NewTrackingRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewTrackingRepository(q Querier) *TrackingRepo {
	return &TrackingRepo{q: q}
}

// Create persiste o rastreio de um item recém-alocado.
func (r *TrackingRepo) Create(t *entity.ItemTracking) error {
	query := `
		INSERT INTO item_trackings (id, order_item_id, quantity_target, quantity_from_stock, quantity_from_production,
			quantity_produced_approved, quantity_packaged_approved, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.OrderItemID, t.QuantityTarget, t.QuantityFromStock, t.QuantityFromProduction,
		t.QuantityProducedApproved, t.QuantityPackagedApproved, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tracking: %w", err)
	}
	return nil
}

// GetByID obtém um rastreio por ID, ou nil.
func (r *TrackingRepo) GetByID(id string) (*entity.ItemTracking, error) {
	var t entity.ItemTracking
	err := r.q.QueryRow(context.Background(),
		`SELECT `+trackingColumns+` FROM item_trackings WHERE id = $1`, id,
	).Scan(
		&t.ID, &t.OrderItemID, &t.QuantityTarget, &t.QuantityFromStock, &t.QuantityFromProduction,
		&t.QuantityProducedApproved, &t.QuantityPackagedApproved, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tracking: %w", err)
	}
	return &t, nil
}

// ListByOrder devolve os rastreios dos itens do pedido, em ordem de posição
// do item.
func (r *TrackingRepo) ListByOrder(orderID string) ([]*entity.ItemTracking, error) {
	query := `
		SELECT t.id, t.order_item_id, t.quantity_target, t.quantity_from_stock, t.quantity_from_production,
		       t.quantity_produced_approved, t.quantity_packaged_approved, t.status, t.created_at, t.updated_at
		FROM item_trackings t
		JOIN order_items i ON i.id = t.order_item_id
		WHERE i.order_id = $1
		ORDER BY i.position`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list trackings: %w", err)
	}
	defer rows.Close()
	var list []*entity.ItemTracking
	for rows.Next() {
		var t entity.ItemTracking
		if err := rows.Scan(
			&t.ID, &t.OrderItemID, &t.QuantityTarget, &t.QuantityFromStock, &t.QuantityFromProduction,
			&t.QuantityProducedApproved, &t.QuantityPackagedApproved, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan tracking: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update grava o avanço do rastreio (aprovações e status).
func (r *TrackingRepo) Update(t *entity.ItemTracking) error {
	query := `
		UPDATE item_trackings
		SET quantity_produced_approved = $2, quantity_packaged_approved = $3, status = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.QuantityProducedApproved, t.QuantityPackagedApproved, t.Status, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tracking: %w", err)
	}
	return nil
}
