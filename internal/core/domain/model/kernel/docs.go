// Package kernel holds the value objects shared by every shipquote aggregate.
//
// The package includes:
//   - UUID: identifier of persisted orders
//   - ConversationID: identity of the chat conversation a session or order belongs to
//   - Weight: shipment mass in kilograms, parsed from a user reply
//   - Dimensions: length x width x height in centimetres, parsed from a user reply
//
// All value objects are immutable. Their zero values are invalid and fail Validate,
// so a value that reaches the domain has always gone through a constructor or parser.
package kernel
