package queries

import (
	"context"

	"shipquote/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads orders straight from the orders table without
// rebuilding aggregates.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns the orders in insertion order. An empty slice is returned
// for a conversation without orders.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]ListOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			weight,
			length,
			width,
			height,
			origin,
			destination,
			tier,
			distance_text,
			duration,
			cost,
			created_at
		FROM orders
		WHERE conversation_id = ?
		ORDER BY seq
	`, query.Conversation().Int64()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp ListOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.Weight,
			&resp.Length,
			&resp.Width,
			&resp.Height,
			&resp.Origin,
			&resp.Destination,
			&resp.Tier,
			&resp.Distance,
			&resp.Duration,
			&resp.Cost,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
