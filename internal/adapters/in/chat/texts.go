package chat

import (
	"fmt"
	"strconv"
	"strings"

	"shipquote/internal/core/application/usecases/queries"
	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/route"
	"shipquote/internal/core/domain/model/session"
	"shipquote/internal/core/domain/model/tier"
)

const (
	textWelcome = "Welcome! Use /order_delivery to start ordering your delivery."
	textHelp    = "Available commands:\n" +
		"/order_delivery - order a delivery\n" +
		"/estimate_cost - estimate the shipping cost without ordering\n" +
		"/all_current_orders - list your orders\n" +
		"/find_transport - show our vehicles and their limits\n" +
		"/calculate_volume - compute the volume of a shipment and the vehicle that fits it\n" +
		"/request_offer - request a commercial offer\n" +
		"/stop - stop the current order"

	textStartOrder    = "Let's order your delivery. Please enter the weight of the shipment (in kg):"
	textStartEstimate = "Let's estimate the shipping cost. Please enter the weight of the shipment (in kg):"
	textStopped       = "The order process has been stopped. Use /order_delivery to start again."
	textNoSession     = "There is no order in progress. Use /order_delivery to order a delivery " +
		"or /estimate_cost to estimate the shipping cost."
	textUnknownCommand = "Unknown command. Use /help to see what I can do."

	textAskDimensions  = "Please enter the dimensions of the shipment (length x width x height in cm):"
	textAskOrigin      = "Please enter the origin of the shipment:"
	textAskDestination = "Please enter the destination of the shipment:"
	textAskTier        = "Please select the type of delivery:"

	textBadWeight     = "Invalid input. Please enter a numerical value for the weight:"
	textBadDimensions = "Invalid input. Please enter the dimensions in the format length x width x height:"
	textBadTier       = "Invalid choice. Please select the type of delivery:"
	textEmptyField    = "The answer must not be empty."

	// TextQuoteUnavailable is sent verbatim when no route could be quoted.
	TextQuoteUnavailable = "Unable to calculate the distance. Please check the origin and destination addresses."
	// TextOrderNotStored is sent when a priced order could not be saved; nothing is confirmed.
	TextOrderNotStored = "Sorry, we could not save your order, so it was not placed. " +
		"Please try /order_delivery again later."
	textInternalError = "Something went wrong. Please try again later."

	textNoOrders     = "No orders found. Please use /order_delivery to create an order."
	textOrdersFailed = "Could not load your orders. Please try again later."

	textNoVehicle    = "No suitable transport found"
	textOfferDefault = "You can request a commercial offer for the transportation of cargo by contacting our support team."
)

// tierPrompt lists the tiers in catalog order; the options are the identifiers
// the session accepts, so what is shown and what is matched cannot drift apart.
func tierPrompt(head string, catalog *tier.Catalog) string {
	var b strings.Builder
	b.WriteString(head)
	for i, t := range catalog.Tiers() {
		fmt.Fprintf(&b, "\n%d. %s ($%s per km)", i+1, t.DisplayName(), num(t.CostPerKm()))
		if t.Summary() != "" {
			b.WriteString(". ")
			b.WriteString(t.Summary())
		}
	}
	return b.String()
}

func promptFor(state session.State) string {
	switch state {
	case session.AwaitingDimensions:
		return textAskDimensions
	case session.AwaitingOrigin:
		return textAskOrigin
	case session.AwaitingDestination:
		return textAskDestination
	default:
		return ""
	}
}

func costText(origin, destination string, t tier.Tier, cost float64) string {
	return fmt.Sprintf("The estimated cost for shipping from %s to %s using %s delivery is $%.2f.",
		origin, destination, t.DisplayName(), cost)
}

func routeText(q route.Quote, adjusted string) string {
	return fmt.Sprintf("The distance is %s and it takes approximately %s.", q.DistanceText(), adjusted)
}

func orderText(o queries.ListOrdersQueryResponse) string {
	return fmt.Sprintf("Order:\nWeight: %s kg\nDimensions: %sx%sx%s cm\nFrom: %s\nTo: %s\nType: %s\n"+
		"Distance: %s\nDuration: %s\nCost: $%.2f",
		num(o.Weight), num(o.Length), num(o.Width), num(o.Height),
		o.Origin, o.Destination, o.Tier, o.Distance, o.Duration, o.Cost)
}

func vehicleText(t tier.Tier) string {
	v := t.Vehicle()
	return fmt.Sprintf("Type: %s\nDescription: %s\nLimitations: %s", v.Class, v.Description, v.Limitations())
}

func volumeText(d kernel.Dimensions) string {
	return fmt.Sprintf("Volume is: %s cm3", num(d.Volume()))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
