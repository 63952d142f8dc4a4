package commands

import (
	"context"
	"errors"
	"fmt"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/order"
	"shipquote/internal/core/domain/model/route"
	"shipquote/internal/core/domain/model/session"
	"shipquote/internal/core/domain/model/tier"
	"shipquote/internal/core/domain/services"
	"shipquote/internal/core/ports"
	"shipquote/internal/pkg/errs"
)

var (
	// ErrNoActiveSession is returned when a reply arrives for a conversation without a live session.
	ErrNoActiveSession = errors.New("conversation has no active session")

	// ErrQuoteUnavailable is returned when the routing provider could not produce a quote.
	// The session is Failed and nothing was recorded.
	ErrQuoteUnavailable = errors.New("quote unavailable")

	// ErrOrderNotStored is returned when a quote was priced but the order append failed.
	// The session is Failed and the quote must not be presented as confirmed.
	ErrOrderNotStored = errors.New("order not stored")
)

// SubmitReplyResult describes where a reply left the dialogue.
type SubmitReplyResult struct {
	// State is the session state after the reply.
	State session.State
	// Reason is set when the reply was rejected; State is then unchanged.
	Reason session.Reason
	// Mode is the session's mode once completion ran.
	Mode session.Mode
	// Draft holds the collected fields once the session reached a terminal state through completion.
	Draft session.Draft
	// Tier, Quote and Estimate are set when State is Completed.
	Tier     tier.Tier
	Quote    route.Quote
	Estimate services.Estimate
	// Order is set when a standard quote was recorded.
	Order *order.Order
}

// Rejected reports whether the reply failed validation.
func (r SubmitReplyResult) Rejected() bool {
	return r.Reason != session.ReasonUnknown
}

// SubmitReplyCommandHandler advances a session by one reply and, once every
// field is collected, runs completion: route quote, pricing, and for
// standard quotes a transactional order append.
//
// Example:
//
//	handler := NewSubmitReplyCommandHandler(sessions, routes, services.NewPricingModel(), uowFactory)
//	cmd, _ := NewSubmitReplyCommand(conversation, "Standard")
//
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrQuoteUnavailable):
//	    // apologise, the user must start again
//	case err != nil:
//	    return err
//	case result.State == session.Completed:
//	    // show result.Estimate
//	}
type SubmitReplyCommandHandler struct {
	sessions   ports.SessionRepository
	routes     ports.RouteProvider
	pricing    services.PricingModel
	uowFactory OrderUoWFactory
}

func NewSubmitReplyCommandHandler(
	sessions ports.SessionRepository,
	routes ports.RouteProvider,
	pricing services.PricingModel,
	uowFactory OrderUoWFactory,
) SubmitReplyCommandHandler {
	return SubmitReplyCommandHandler{
		sessions:   sessions,
		routes:     routes,
		pricing:    pricing,
		uowFactory: uowFactory,
	}
}

// Handle applies the reply. A rejected reply is not an error: the result
// carries the reason and the session keeps waiting for the same field.
// Terminal sessions are removed from the live set.
func (h *SubmitReplyCommandHandler) Handle(ctx context.Context, cmd SubmitReplyCommand) (SubmitReplyResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitReplyResult{}, err
	}

	s, err := h.sessions.Get(ctx, cmd.Conversation())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return SubmitReplyResult{}, ErrNoActiveSession
	}
	if err != nil {
		return SubmitReplyResult{}, err
	}

	read := s.Revision()
	if err = s.Submit(cmd.Text()); err != nil {
		if reason, ok := session.ReasonOf(err); ok {
			return SubmitReplyResult{State: s.State(), Reason: reason}, nil
		}
		return SubmitReplyResult{}, err
	}

	// A sweep may have expired the session since Get; its copy must not come back.
	// Storing Quoting also keeps the sweep away while the route is fetched.
	if err = h.sessions.Update(ctx, s, read); err != nil {
		if errors.Is(err, ports.ErrSessionChanged) {
			return SubmitReplyResult{}, ErrNoActiveSession
		}
		return SubmitReplyResult{}, err
	}

	if s.State() != session.Quoting {
		return SubmitReplyResult{State: s.State()}, nil
	}

	return h.complete(ctx, s)
}

func (h *SubmitReplyCommandHandler) complete(ctx context.Context, s *session.Session) (SubmitReplyResult, error) {
	draft := s.Draft()
	chosen, _ := draft.Tier()
	origin, _ := draft.Origin()
	destination, _ := draft.Destination()
	result := SubmitReplyResult{Mode: s.Mode(), Draft: draft, Tier: chosen}

	quote, err := h.routes.Quote(ctx, origin, destination)
	if err != nil {
		return h.fail(ctx, s, result, fmt.Errorf("%w: %w", ErrQuoteUnavailable, err))
	}
	result.Quote = quote

	estimate, err := h.pricing.Estimate(s.Mode(), chosen, draft, quote)
	if err != nil {
		return h.fail(ctx, s, result, err)
	}
	result.Estimate = estimate

	if s.Mode().RecordsOrder() {
		o, recordErr := h.record(ctx, s.Conversation(), draft, chosen, quote, estimate)
		if recordErr != nil {
			return h.fail(ctx, s, result, fmt.Errorf("%w: %w", ErrOrderNotStored, recordErr))
		}
		result.Order = o
	}

	if err = s.Complete(); err != nil {
		return SubmitReplyResult{}, err
	}
	result.State = s.State()

	if _, err = h.sessions.Remove(ctx, s.Conversation()); err != nil {
		return result, err
	}
	return result, nil
}

func (h *SubmitReplyCommandHandler) record(
	ctx context.Context,
	conversation kernel.ConversationID,
	draft session.Draft,
	chosen tier.Tier,
	quote route.Quote,
	estimate services.Estimate,
) (*order.Order, error) {
	weight, _ := draft.Weight()
	dimensions, _ := draft.Dimensions()
	origin, _ := draft.Origin()
	destination, _ := draft.Destination()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		conversation,
		order.Shipment{Weight: weight, Dimensions: dimensions, Origin: origin, Destination: destination},
		chosen.ID(),
		quote,
		estimate.Cost,
		estimate.Duration,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// fail moves the session to Failed, drops it and returns cause.
func (h *SubmitReplyCommandHandler) fail(
	ctx context.Context,
	s *session.Session,
	result SubmitReplyResult,
	cause error,
) (SubmitReplyResult, error) {
	if err := s.Fail(); err != nil {
		return SubmitReplyResult{}, errors.Join(cause, err)
	}
	result.State = s.State()

	if _, err := h.sessions.Remove(ctx, s.Conversation()); err != nil {
		return result, errors.Join(cause, err)
	}
	return result, cause
}
