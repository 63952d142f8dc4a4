package commands

import (
	"errors"
	"fmt"
	"time"

	"shipquote/internal/pkg/errs"
	"shipquote/internal/pkg/guard"
)

var ErrExpireIdleSessionsCommandIsNotConstructed = errors.New(
	"ExpireIdleSessionsCommand must be created via NewExpireIdleSessionsCommand constructor",
)

// ExpireIdleSessionsCommand cancels sessions that have not changed for longer than timeout.
type ExpireIdleSessionsCommand struct { //nolint:recvcheck //using for validation
	now     time.Time
	timeout time.Duration

	guard guard.ConstructorGuard
}

func NewExpireIdleSessionsCommand(now time.Time, timeout time.Duration) (ExpireIdleSessionsCommand, error) {
	if now.IsZero() {
		return ExpireIdleSessionsCommand{}, errs.NewValueIsRequiredError("now")
	}
	if timeout <= 0 {
		return ExpireIdleSessionsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"timeout", fmt.Errorf("%s is not positive", timeout))
	}

	return ExpireIdleSessionsCommand{
		now:     now,
		timeout: timeout,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ExpireIdleSessionsCommand) Validate() error {
	return c.guard.Validate(ErrExpireIdleSessionsCommandIsNotConstructed)
}

func (c ExpireIdleSessionsCommand) Now() time.Time {
	return c.now
}

func (c ExpireIdleSessionsCommand) Timeout() time.Duration {
	return c.timeout
}
