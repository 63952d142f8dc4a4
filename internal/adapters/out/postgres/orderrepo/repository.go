package orderrepo

import (
	"context"
	"fmt"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// aggregateTracker is the unit of work the repository reports appended orders to.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormOrderRepository is the order log. Rows are only ever inserted; the
// auto-increment seq column gives the listing order.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{db: db, tracker: tracker}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	row := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("append order %s: %w", aggregate.ID(), err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// ListByConversation re-reads every order of the conversation, oldest first.
func (r *GormOrderRepository) ListByConversation(
	ctx context.Context,
	conversation kernel.ConversationID,
) ([]*order.Order, error) {
	if err := conversation.Validate(); err != nil {
		return nil, err
	}

	var rows []OrderDTO
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversation.Int64()).
		Order("seq").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list orders of %s: %w", conversation, err)
	}

	orders := make([]*order.Order, len(rows))
	for i, row := range rows {
		if orders[i], err = toDomain(row); err != nil {
			return nil, err
		}
	}
	return orders, nil
}
