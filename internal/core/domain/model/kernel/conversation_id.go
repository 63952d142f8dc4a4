package kernel

import (
	"errors"
	"strconv"
	"strings"

	"shipquote/internal/pkg/errs"
)

// ErrConversationIDIsNotConstructed is returned when validating a zero-value ConversationID.
var ErrConversationIDIsNotConstructed = errs.NewValueIsRequiredError(
	"conversation ID must be created via NewConversationID or ParseConversationID")

// ConversationID is the identity of one chat conversation. Sessions and orders are
// keyed by it. Chat platforms use negative identifiers for group chats, so any
// non-zero value is accepted.
type ConversationID struct {
	value int64
}

// NewConversationID wraps a raw chat identifier.
func NewConversationID(value int64) (ConversationID, error) {
	if value == 0 {
		return ConversationID{}, errs.NewValueIsInvalidErrorWithCause(
			"conversation ID", errors.New("0 is not a valid chat identifier"))
	}
	return ConversationID{value: value}, nil
}

// ParseConversationID reads a decimal chat identifier, e.g. from a URL path.
func ParseConversationID(s string) (ConversationID, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return ConversationID{}, errs.NewValueIsInvalidErrorWithCause("conversation ID", err)
	}
	return NewConversationID(value)
}

func (c ConversationID) Int64() int64 {
	return c.value
}

func (c ConversationID) String() string {
	return strconv.FormatInt(c.value, 10)
}

func (c ConversationID) IsEqual(other ConversationID) bool {
	return c.value == other.value
}

func (c ConversationID) Validate() error {
	if c.value == 0 {
		return ErrConversationIDIsNotConstructed
	}
	return nil
}
