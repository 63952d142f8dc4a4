// Package orderrepo persists Order aggregates with GORM. The same schema is
// used on PostgreSQL and SQLite.
package orderrepo

import (
	"time"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/order"
	"shipquote/internal/core/domain/model/route"
	"shipquote/internal/core/domain/model/tier"

	"github.com/google/uuid"
)

// OrderDTO is one row of the orders table. Seq records insertion order,
// which is the order listings are returned in. RouteSeconds is the provider's
// travel time; DurationSeconds and Duration hold the tier-adjusted one.
type OrderDTO struct {
	Seq             int64     `gorm:"primaryKey;autoIncrement"`
	ID              uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ConversationID  int64     `gorm:"index;not null"`
	Weight          float64   `gorm:"not null"`
	Length          float64   `gorm:"not null"`
	Width           float64   `gorm:"not null"`
	Height          float64   `gorm:"not null"`
	Origin          string    `gorm:"not null"`
	Destination     string    `gorm:"not null"`
	Tier            string    `gorm:"size:64;not null"`
	DistanceText    string    `gorm:"not null"`
	DistanceKm      float64   `gorm:"not null"`
	RouteSeconds    int64     `gorm:"not null"`
	DurationSeconds int64     `gorm:"not null"`
	Duration        string    `gorm:"not null"`
	Cost            float64   `gorm:"not null"`
	CreatedAt       time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	shipment := o.Shipment()
	return OrderDTO{
		ID:              o.ID().Bytes(),
		ConversationID:  o.Conversation().Int64(),
		Weight:          shipment.Weight.Kilograms(),
		Length:          shipment.Dimensions.Length(),
		Width:           shipment.Dimensions.Width(),
		Height:          shipment.Dimensions.Height(),
		Origin:          shipment.Origin,
		Destination:     shipment.Destination,
		Tier:            string(o.TierID()),
		DistanceText:    o.Quote().DistanceText(),
		DistanceKm:      o.Quote().DistanceKm(),
		RouteSeconds:    int64(o.Quote().Duration() / time.Second),
		DurationSeconds: int64(o.Duration() / time.Second),
		Duration:        route.FormatDuration(o.Duration()),
		Cost:            o.Cost(),
		CreatedAt:       o.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	conversation, err := kernel.NewConversationID(dto.ConversationID)
	if err != nil {
		return nil, err
	}

	weight, err := kernel.NewWeight(dto.Weight)
	if err != nil {
		return nil, err
	}

	dimensions, err := kernel.NewDimensions(dto.Length, dto.Width, dto.Height)
	if err != nil {
		return nil, err
	}

	quote, err := route.RestoreQuote(dto.DistanceText, dto.DistanceKm, time.Duration(dto.RouteSeconds)*time.Second)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		conversation,
		order.Shipment{Weight: weight, Dimensions: dimensions, Origin: dto.Origin, Destination: dto.Destination},
		tier.ID(dto.Tier),
		quote,
		dto.Cost,
		time.Duration(dto.DurationSeconds)*time.Second,
		dto.CreatedAt,
	)
}
