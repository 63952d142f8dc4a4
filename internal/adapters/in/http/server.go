package http

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"shipquote/internal/adapters/in/chat"
	"shipquote/internal/core/application/usecases/queries"
	"shipquote/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// SecretTokenHeader carries the secret configured with setWebhook.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// UpdatePoster accepts inbound chat updates for asynchronous handling.
type UpdatePoster interface {
	Post(u chat.Update) error
}

// Server exposes the chat webhook and read-only order listing over HTTP.
type Server struct {
	// Inbound updates
	updates     UpdatePoster
	secretToken string

	// Query handlers
	listOrdersHandler chat.ListOrdersHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server. An empty secretToken disables the webhook secret check.
func NewServer(
	updates UpdatePoster,
	listOrdersHandler chat.ListOrdersHandler,
	secretToken string,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		updates:           updates,
		secretToken:       secretToken,
		listOrdersHandler: listOrdersHandler,
		logger:            logger.With("component", "http_server"),
	}
}

// Register mounts the routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/updates", s.PostUpdate)
	v1.GET("/conversations/:id/orders", s.GetOrders)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// PostUpdate handles POST /api/v1/updates - a Telegram webhook update.
// Updates without a text message are acknowledged and dropped so Telegram
// does not redeliver them.
func (s *Server) PostUpdate(ctx echo.Context) error {
	if s.secretToken != "" {
		got := ctx.Request().Header.Get(SecretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.secretToken)) != 1 {
			return ctx.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: "Invalid secret token",
			})
		}
	}

	var update Update
	if err := ctx.Bind(&update); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if update.Message == nil || update.Message.Text == "" {
		return ctx.NoContent(http.StatusOK)
	}

	conversation, err := kernel.NewConversationID(update.Message.Chat.ID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid chat: " + err.Error(),
		})
	}

	err = s.updates.Post(chat.Update{Conversation: conversation, Text: update.Message.Text})
	if errors.Is(err, chat.ErrMailboxClosed) {
		return ctx.JSON(http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: "Shutting down",
		})
	}
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "update not accepted",
			"update_id", update.UpdateID,
			"error", err,
		)
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to accept update",
		})
	}

	return ctx.NoContent(http.StatusOK)
}

// GetOrders handles GET /api/v1/conversations/:id/orders - orders of one conversation.
func (s *Server) GetOrders(ctx echo.Context) error {
	conversation, err := kernel.ParseConversationID(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid conversation id",
		})
	}

	query, err := queries.NewListOrdersQuery(conversation)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid conversation id",
		})
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "list orders failed",
			"conversation_id", conversation.String(),
			"error", err,
		)
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = Order{
			ID:          o.ID.String(),
			Weight:      o.Weight,
			Length:      o.Length,
			Width:       o.Width,
			Height:      o.Height,
			Origin:      o.Origin,
			Destination: o.Destination,
			Tier:        o.Tier,
			Distance:    o.Distance,
			Duration:    o.Duration,
			Cost:        o.Cost,
			CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
