package order

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/route"
	"shipquote/internal/core/domain/model/tier"
	"shipquote/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Shipment is what was shipped and between which addresses.
type Shipment struct {
	Weight      kernel.Weight
	Dimensions  kernel.Dimensions
	Origin      string
	Destination string
}

// Order is the immutable record of a completed quote. It belongs to the
// conversation that produced it; a conversation accumulates many orders.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and conversation
//   - Weight and dimensions are valid value objects, addresses are not blank
//   - The quote is valid and the cost is a positive finite amount
//   - Nothing changes after construction
type Order struct {
	id           kernel.UUID
	conversation kernel.ConversationID
	shipment     Shipment
	tierID       tier.ID
	quote        route.Quote
	cost         float64
	duration     time.Duration
	createdAt    time.Time

	isConstructed bool
}

// NewOrder records a completed quote.
//
// Parameters:
//   - id: identifier of the new order
//   - conversation: conversation the order belongs to
//   - shipment: the collected shipment attributes
//   - tierID: identifier of the chosen tier
//   - quote: distance and travel time reported by the routing provider
//   - cost: total price in currency units
//   - duration: travel time adjusted by the tier's multiplier
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), conversation, shipment, tier.Standard, quote, 1085, 7*time.Hour+48*time.Minute)
func NewOrder(
	id kernel.UUID,
	conversation kernel.ConversationID,
	shipment Shipment,
	tierID tier.ID,
	quote route.Quote,
	cost float64,
	duration time.Duration,
) (*Order, error) {
	return RestoreOrder(id, conversation, shipment, tierID, quote, cost, duration, time.Now().UTC())
}

// RestoreOrder rebuilds an order read from storage, applying the same validation as NewOrder.
func RestoreOrder(
	id kernel.UUID,
	conversation kernel.ConversationID,
	shipment Shipment,
	tierID tier.ID,
	quote route.Quote,
	cost float64,
	duration time.Duration,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setConversation(conversation),
		o.setShipment(shipment),
		o.setTierID(tierID),
		o.setQuote(quote),
		o.setCost(cost),
		o.setDuration(duration),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Conversation() kernel.ConversationID {
	return o.conversation
}

func (o *Order) Shipment() Shipment {
	return o.shipment
}

func (o *Order) TierID() tier.ID {
	return o.tierID
}

func (o *Order) Quote() route.Quote {
	return o.quote
}

// Cost is the total price in currency units.
func (o *Order) Cost() float64 {
	return o.cost
}

// Duration is the travel time adjusted by the tier's multiplier.
func (o *Order) Duration() time.Duration {
	return o.duration
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setConversation(conversation kernel.ConversationID) error {
	if err := conversation.Validate(); err != nil {
		return err
	}
	o.conversation = conversation
	return nil
}

func (o *Order) setShipment(s Shipment) error {
	var errList []error
	errList = append(errList, s.Weight.Validate(), s.Dimensions.Validate())
	if strings.TrimSpace(s.Origin) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("origin"))
	}
	if strings.TrimSpace(s.Destination) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("destination"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	o.shipment = s
	return nil
}

func (o *Order) setTierID(id tier.ID) error {
	if strings.TrimSpace(string(id)) == "" {
		return errs.NewValueIsRequiredError("tier")
	}
	o.tierID = id
	return nil
}

func (o *Order) setQuote(q route.Quote) error {
	if err := q.Validate(); err != nil {
		return err
	}
	o.quote = q
	return nil
}

func (o *Order) setCost(cost float64) error {
	if math.IsNaN(cost) || math.IsInf(cost, 0) || cost <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("cost is invalid", fmt.Errorf("%v is not a positive amount", cost))
	}
	o.cost = cost
	return nil
}

func (o *Order) setDuration(d time.Duration) error {
	if d <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("duration is invalid", fmt.Errorf("%s is not positive", d))
	}
	o.duration = d
	return nil
}
