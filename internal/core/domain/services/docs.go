// Package services provides domain services that compute values spanning
// several domain models.
//
// The package includes:
//   - PricingModel: turns a tier, a shipment and a route quote into a cost and a
//     display duration
package services
