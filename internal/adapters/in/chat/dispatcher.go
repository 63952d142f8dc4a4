// Package chat turns inbound chat updates into intake commands and answers
// through a ports.Messenger.
//
// Dispatcher handles one update at a time and is safe for concurrent use
// across conversations. Mailbox feeds it so that updates of one conversation
// are handled strictly in arrival order while different conversations run in
// parallel:
//
//	dispatcher, err := chat.NewDispatcher(handlers, catalog, messenger, contact, logger)
//	mailbox := chat.NewMailbox(ctx, dispatcher.Handle, logger)
//	defer mailbox.Close()
//
//	err = mailbox.Post(chat.Update{Conversation: id, Text: "/order_delivery"})
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"shipquote/internal/core/application/usecases/commands"
	"shipquote/internal/core/application/usecases/queries"
	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/route"
	"shipquote/internal/core/domain/model/session"
	"shipquote/internal/core/domain/model/tier"
	"shipquote/internal/core/ports"
	"shipquote/internal/pkg/errs"
)

// Update is one inbound message.
type Update struct {
	Conversation kernel.ConversationID
	Text         string
}

type (
	StartIntakeHandler interface {
		Handle(ctx context.Context, cmd commands.StartIntakeCommand) (session.State, error)
	}

	SubmitReplyHandler interface {
		Handle(ctx context.Context, cmd commands.SubmitReplyCommand) (commands.SubmitReplyResult, error)
	}

	CancelIntakeHandler interface {
		Handle(ctx context.Context, cmd commands.CancelIntakeCommand) (bool, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.ListOrdersQueryResponse, error)
	}
)

// Handlers are the use cases the dispatcher drives.
type Handlers struct {
	StartIntake  StartIntakeHandler
	SubmitReply  SubmitReplyHandler
	CancelIntake CancelIntakeHandler
	ListOrders   ListOrdersHandler
}

// Dispatcher maps commands and free text to use cases and renders the outcome.
type Dispatcher struct {
	handlers       Handlers
	catalog        *tier.Catalog
	messenger      ports.Messenger
	supportContact string
	logger         *slog.Logger

	// conversations that sent /calculate_volume and owe the dimensions
	mu            sync.Mutex
	volumePending map[int64]struct{}
}

// NewDispatcher wires the dispatcher. supportContact is appended to the
// /request_offer answer and may be empty.
func NewDispatcher(
	handlers Handlers,
	catalog *tier.Catalog,
	messenger ports.Messenger,
	supportContact string,
	logger *slog.Logger,
) (*Dispatcher, error) {
	var errList []error
	if handlers.StartIntake == nil {
		errList = append(errList, errs.NewValueIsRequiredError("start intake handler"))
	}
	if handlers.SubmitReply == nil {
		errList = append(errList, errs.NewValueIsRequiredError("submit reply handler"))
	}
	if handlers.CancelIntake == nil {
		errList = append(errList, errs.NewValueIsRequiredError("cancel intake handler"))
	}
	if handlers.ListOrders == nil {
		errList = append(errList, errs.NewValueIsRequiredError("list orders handler"))
	}
	if catalog == nil {
		errList = append(errList, errs.NewValueIsRequiredError("catalog"))
	}
	if messenger == nil {
		errList = append(errList, errs.NewValueIsRequiredError("messenger"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		handlers:       handlers,
		catalog:        catalog,
		messenger:      messenger,
		supportContact: strings.TrimSpace(supportContact),
		logger:         logger.With("component", "chat_dispatcher"),
		volumePending:  make(map[int64]struct{}),
	}, nil
}

// Handle processes one update. The returned error is what could not be
// handled or delivered; the user has already been told whatever could be told.
func (d *Dispatcher) Handle(ctx context.Context, u Update) error {
	if err := u.Conversation.Validate(); err != nil {
		return err
	}

	text := strings.TrimSpace(u.Text)
	name, arg, isCommand := parseCommand(text)
	if !isCommand {
		if d.takeVolumePending(u.Conversation) {
			return d.calculateVolume(ctx, u.Conversation, text)
		}
		return d.submitReply(ctx, u.Conversation, u.Text)
	}

	d.takeVolumePending(u.Conversation)

	switch name {
	case "start":
		return d.send(ctx, u.Conversation, ports.Reply{Text: textWelcome})
	case "help":
		return d.send(ctx, u.Conversation, ports.Reply{Text: textHelp})
	case "order_delivery":
		return d.startIntake(ctx, u.Conversation, session.ModeStandardQuote)
	case "estimate_cost":
		return d.startIntake(ctx, u.Conversation, session.ModeQuickEstimate)
	case "stop", "cancel":
		return d.cancelIntake(ctx, u.Conversation)
	case "all_current_orders":
		return d.listOrders(ctx, u.Conversation)
	case "find_transport":
		return d.findTransport(ctx, u.Conversation)
	case "calculate_volume":
		if arg != "" {
			return d.calculateVolume(ctx, u.Conversation, arg)
		}
		d.setVolumePending(u.Conversation)
		return d.send(ctx, u.Conversation, ports.Reply{Text: textAskDimensions})
	case "request_offer":
		return d.requestOffer(ctx, u.Conversation)
	default:
		return d.send(ctx, u.Conversation, ports.Reply{Text: textUnknownCommand})
	}
}

// parseCommand splits "/name@bot rest" into name and rest.
func parseCommand(text string) (string, string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}

	head, rest, _ := strings.Cut(text, " ")
	name, _, _ := strings.Cut(strings.TrimPrefix(head, "/"), "@")
	return strings.ToLower(name), strings.TrimSpace(rest), true
}

func (d *Dispatcher) startIntake(ctx context.Context, conversation kernel.ConversationID, mode session.Mode) error {
	cmd, err := commands.NewStartIntakeCommand(conversation, mode)
	if err != nil {
		return err
	}

	if _, err = d.handlers.StartIntake.Handle(ctx, cmd); err != nil {
		d.logger.ErrorContext(ctx, "start intake failed", "conversation_id", conversation.String(), "error", err)
		return errors.Join(err, d.send(ctx, conversation, ports.Reply{Text: textInternalError}))
	}

	d.logger.InfoContext(ctx, "intake started", "conversation_id", conversation.String(), "mode", mode.String())

	text := textStartOrder
	if mode == session.ModeQuickEstimate {
		text = textStartEstimate
	}
	return d.send(ctx, conversation, ports.Reply{Text: text})
}

func (d *Dispatcher) cancelIntake(ctx context.Context, conversation kernel.ConversationID) error {
	cmd, err := commands.NewCancelIntakeCommand(conversation)
	if err != nil {
		return err
	}

	discarded, err := d.handlers.CancelIntake.Handle(ctx, cmd)
	if err != nil {
		d.logger.ErrorContext(ctx, "cancel intake failed", "conversation_id", conversation.String(), "error", err)
		return errors.Join(err, d.send(ctx, conversation, ports.Reply{Text: textInternalError}))
	}

	d.logger.InfoContext(ctx, "intake stopped", "conversation_id", conversation.String(), "discarded", discarded)
	return d.send(ctx, conversation, ports.Reply{Text: textStopped})
}

func (d *Dispatcher) submitReply(ctx context.Context, conversation kernel.ConversationID, text string) error {
	cmd, err := commands.NewSubmitReplyCommand(conversation, text)
	if err != nil {
		return err
	}

	result, err := d.handlers.SubmitReply.Handle(ctx, cmd)
	switch {
	case errors.Is(err, commands.ErrNoActiveSession):
		return d.send(ctx, conversation, ports.Reply{Text: textNoSession})
	case errors.Is(err, commands.ErrQuoteUnavailable):
		d.logger.WarnContext(ctx, "quote unavailable", "conversation_id", conversation.String(), "error", err)
		return d.send(ctx, conversation, ports.Reply{Text: TextQuoteUnavailable})
	case errors.Is(err, commands.ErrOrderNotStored):
		d.logger.ErrorContext(ctx, "order not stored", "conversation_id", conversation.String(), "error", err)
		return errors.Join(err, d.send(ctx, conversation, ports.Reply{Text: TextOrderNotStored}))
	case err != nil:
		d.logger.ErrorContext(ctx, "submit reply failed", "conversation_id", conversation.String(), "error", err)
		return errors.Join(err, d.send(ctx, conversation, ports.Reply{Text: textInternalError}))
	}

	if result.Rejected() {
		d.logger.DebugContext(ctx, "reply rejected",
			"conversation_id", conversation.String(),
			"state", result.State.String(),
			"reason", result.Reason.String(),
		)
		return d.send(ctx, conversation, d.repromptFor(result))
	}

	switch result.State {
	case session.Completed:
		return d.sendQuote(ctx, conversation, result)
	case session.AwaitingTier:
		return d.send(ctx, conversation, ports.Reply{
			Text:    tierPrompt(textAskTier, d.catalog),
			Options: d.catalog.Options(),
		})
	default:
		return d.send(ctx, conversation, ports.Reply{Text: promptFor(result.State)})
	}
}

func (d *Dispatcher) repromptFor(result commands.SubmitReplyResult) ports.Reply {
	switch result.Reason {
	case session.ReasonWeightFormat:
		return ports.Reply{Text: textBadWeight}
	case session.ReasonDimensionsFormat:
		return ports.Reply{Text: textBadDimensions}
	case session.ReasonUnknownTier:
		return ports.Reply{Text: tierPrompt(textBadTier, d.catalog), Options: d.catalog.Options()}
	default:
		return ports.Reply{Text: textEmptyField + " " + promptFor(result.State)}
	}
}

func (d *Dispatcher) sendQuote(ctx context.Context, conversation kernel.ConversationID, result commands.SubmitReplyResult) error {
	origin, _ := result.Draft.Origin()
	destination, _ := result.Draft.Destination()

	mode := result.Mode
	d.logger.InfoContext(ctx, "quote completed",
		"conversation_id", conversation.String(),
		"mode", mode.String(),
		"tier", string(result.Tier.ID()),
		"distance_km", result.Quote.DistanceKm(),
		"cost", result.Estimate.Cost,
	)

	return errors.Join(
		d.send(ctx, conversation, ports.Reply{
			Text: costText(origin, destination, result.Tier, result.Estimate.Cost),
		}),
		d.send(ctx, conversation, ports.Reply{
			Text: routeText(result.Quote, route.FormatDuration(result.Estimate.Duration)),
		}),
	)
}

func (d *Dispatcher) listOrders(ctx context.Context, conversation kernel.ConversationID) error {
	query, err := queries.NewListOrdersQuery(conversation)
	if err != nil {
		return err
	}

	orders, err := d.handlers.ListOrders.Handle(ctx, query)
	if err != nil {
		d.logger.ErrorContext(ctx, "list orders failed", "conversation_id", conversation.String(), "error", err)
		return errors.Join(err, d.send(ctx, conversation, ports.Reply{Text: textOrdersFailed}))
	}

	if len(orders) == 0 {
		return d.send(ctx, conversation, ports.Reply{Text: textNoOrders})
	}

	for _, o := range orders {
		if err = d.send(ctx, conversation, ports.Reply{Text: orderText(o)}); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) findTransport(ctx context.Context, conversation kernel.ConversationID) error {
	for _, t := range d.catalog.Tiers() {
		if err := d.send(ctx, conversation, ports.Reply{Text: vehicleText(t)}); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) calculateVolume(ctx context.Context, conversation kernel.ConversationID, text string) error {
	dims, err := kernel.ParseDimensions(text)
	if err != nil {
		return d.send(ctx, conversation, ports.Reply{Text: textBadDimensions})
	}

	if err = d.send(ctx, conversation, ports.Reply{Text: volumeText(dims)}); err != nil {
		return err
	}

	t, err := d.catalog.RecommendVehicle(dims)
	if errors.Is(err, tier.ErrNoSuitableVehicle) {
		return d.send(ctx, conversation, ports.Reply{Text: textNoVehicle})
	}
	if err != nil {
		return err
	}
	return d.send(ctx, conversation, ports.Reply{Text: t.Vehicle().Class})
}

func (d *Dispatcher) requestOffer(ctx context.Context, conversation kernel.ConversationID) error {
	text := textOfferDefault
	if d.supportContact != "" {
		text += "\n" + d.supportContact
	}
	return d.send(ctx, conversation, ports.Reply{Text: text})
}

func (d *Dispatcher) send(ctx context.Context, conversation kernel.ConversationID, reply ports.Reply) error {
	if err := d.messenger.Send(ctx, conversation, reply); err != nil {
		d.logger.ErrorContext(ctx, "reply not delivered", "conversation_id", conversation.String(), "error", err)
		return err
	}
	return nil
}

func (d *Dispatcher) setVolumePending(conversation kernel.ConversationID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.volumePending[conversation.Int64()] = struct{}{}
}

// takeVolumePending clears the pending /calculate_volume request and reports whether there was one.
func (d *Dispatcher) takeVolumePending(conversation kernel.ConversationID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.volumePending[conversation.Int64()]
	delete(d.volumePending, conversation.Int64())
	return ok
}
