package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shipquote/internal/core/application/usecases/commands"
	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/route"
	"shipquote/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// ExpireIdleSessionsHandler is satisfied by *commands.ExpireIdleSessionsCommandHandler.
type ExpireIdleSessionsHandler interface {
	Handle(ctx context.Context, cmd commands.ExpireIdleSessionsCommand) ([]kernel.ConversationID, error)
}

// SessionSweepJob cancels sessions that have been idle longer than the timeout
// and tells their users the order was dropped.
type SessionSweepJob struct {
	handler   ExpireIdleSessionsHandler
	messenger ports.Messenger
	schedule  string
	timeout   time.Duration
	now       func() time.Time
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewSessionSweepJob creates the sweep. schedule is a cron expression with a seconds field.
func NewSessionSweepJob(
	handler ExpireIdleSessionsHandler,
	messenger ports.Messenger,
	schedule string,
	timeout time.Duration,
	logger *slog.Logger,
) *SessionSweepJob {
	return &SessionSweepJob{
		handler:   handler,
		messenger: messenger,
		schedule:  schedule,
		timeout:   timeout,
		now:       time.Now,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "session_sweep_job"),
	}
}

// Start schedules the sweep.
func (j *SessionSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session sweep job started",
		"schedule", j.schedule,
		"idle_timeout", j.timeout.String(),
	)
	return nil
}

// Run performs one sweep.
func (j *SessionSweepJob) Run(ctx context.Context) {
	cmd, err := commands.NewExpireIdleSessionsCommand(j.now(), j.timeout)
	if err != nil {
		j.logger.ErrorContext(ctx, "Session sweep job misconfigured", "error", err)
		return
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Session sweep job failed", "error", err)
	}

	text := fmt.Sprintf("Your order was stopped after %s without an answer. Use /order_delivery to start again.",
		route.FormatDuration(j.timeout))
	for _, conversation := range expired {
		j.logger.InfoContext(ctx, "Session expired", "conversation_id", conversation.String())
		if sendErr := j.messenger.Send(ctx, conversation, ports.Reply{Text: text}); sendErr != nil {
			j.logger.WarnContext(ctx, "Expiry notice not delivered",
				"conversation_id", conversation.String(),
				"error", sendErr,
			)
		}
	}
}

// Stop stops the schedule and waits for a running sweep.
func (j *SessionSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Session sweep job stopped")
}
