// Package http is the HTTP surface of the service: the Telegram webhook and a
// read-only view of recorded orders.
package http

// Error is the body of every non-2xx JSON response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Update is the subset of a Telegram update the service reads.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

// Order is one recorded order. Cost is in currency units, Duration is tier-adjusted.
type Order struct {
	ID          string  `json:"id"`
	Weight      float64 `json:"weight"`
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Tier        string  `json:"tier"`
	Distance    string  `json:"distance"`
	Duration    string  `json:"duration"`
	Cost        float64 `json:"cost"`
	CreatedAt   string  `json:"createdAt"`
}
