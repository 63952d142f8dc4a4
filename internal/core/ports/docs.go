// Package ports defines the interfaces between the quote intake core and its
// infrastructure: routing providers, order storage, the live-session set and
// the chat transport.
package ports
