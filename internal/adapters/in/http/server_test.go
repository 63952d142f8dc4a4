package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shipquote/internal/adapters/in/chat"
	inhttp "shipquote/internal/adapters/in/http"
	"shipquote/internal/core/application/usecases/queries"
	"shipquote/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUpdatePoster struct{ mock.Mock }

func (m *MockUpdatePoster) Post(u chat.Update) error {
	args := m.Called(u)
	return args.Error(0)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(
	ctx context.Context,
	query queries.ListOrdersQuery,
) ([]queries.ListOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	orders, _ := args.Get(0).([]queries.ListOrdersQueryResponse)
	return orders, args.Error(1)
}

func newEcho(updates inhttp.UpdatePoster, orders chat.ListOrdersHandler, secret string) *echo.Echo {
	e := echo.New()
	inhttp.NewServer(updates, orders, secret, nil).Register(e)
	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postUpdate(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/updates", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestServer_Health(t *testing.T) {
	rec := serve(newEcho(nil, nil, ""), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestServer_PostUpdate(t *testing.T) {
	chatID, _ := kernel.NewConversationID(-100)

	t.Run("should post text messages to the mailbox", func(t *testing.T) {
		updates := new(MockUpdatePoster)
		updates.On("Post", chat.Update{Conversation: chatID, Text: "/order_delivery"}).Return(nil).Once()

		rec := serve(newEcho(updates, nil, ""),
			postUpdate(`{"update_id":1,"message":{"message_id":5,"chat":{"id":-100},"text":"/order_delivery"}}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		updates.AssertExpectations(t)
	})

	t.Run("should acknowledge updates without text", func(t *testing.T) {
		updates := new(MockUpdatePoster)

		rec := serve(newEcho(updates, nil, ""), postUpdate(`{"update_id":2,"edited_message":{}}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		updates.AssertNotCalled(t, "Post", mock.Anything)
	})

	t.Run("should reject malformed bodies", func(t *testing.T) {
		rec := serve(newEcho(new(MockUpdatePoster), nil, ""), postUpdate(`{"update_id":`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject chat id zero", func(t *testing.T) {
		rec := serve(newEcho(new(MockUpdatePoster), nil, ""),
			postUpdate(`{"update_id":3,"message":{"chat":{"id":0},"text":"hi"}}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should check the secret token", func(t *testing.T) {
		updates := new(MockUpdatePoster)
		updates.On("Post", mock.Anything).Return(nil).Once()
		e := newEcho(updates, nil, "s3cret")
		body := `{"update_id":4,"message":{"chat":{"id":-100},"text":"hi"}}`

		rec := serve(e, postUpdate(body))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		req := postUpdate(body)
		req.Header.Set(inhttp.SecretTokenHeader, "s3cret")
		rec = serve(e, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		updates.AssertExpectations(t)
	})

	t.Run("should ask for redelivery while shutting down", func(t *testing.T) {
		updates := new(MockUpdatePoster)
		updates.On("Post", mock.Anything).Return(chat.ErrMailboxClosed).Once()

		rec := serve(newEcho(updates, nil, ""), postUpdate(`{"update_id":5,"message":{"chat":{"id":1},"text":"hi"}}`))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestServer_GetOrders(t *testing.T) {
	t.Run("should list orders of the conversation", func(t *testing.T) {
		id := kernel.NewUUID()
		createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		orders := new(MockListOrdersHandler)
		orders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
			return q.Conversation().Int64() == 42
		})).Return([]queries.ListOrdersQueryResponse{{
			ID: id, Weight: 12.5, Length: 30, Width: 20, Height: 15,
			Origin: "Kyiv", Destination: "Lviv", Tier: "Standard",
			Distance: "540 km", Duration: "7 hours 48 mins", Cost: 1085, CreatedAt: createdAt,
		}}, nil).Once()

		rec := serve(newEcho(nil, orders, ""), httptest.NewRequest(http.MethodGet, "/api/v1/conversations/42/orders", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var got []inhttp.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, id.String(), got[0].ID)
		assert.Equal(t, "540 km", got[0].Distance)
		assert.InDelta(t, 1085.0, got[0].Cost, 1e-9)
		assert.Equal(t, "2026-03-01T12:00:00Z", got[0].CreatedAt)
	})

	t.Run("should return an empty list", func(t *testing.T) {
		orders := new(MockListOrdersHandler)
		orders.On("Handle", mock.Anything, mock.Anything).Return([]queries.ListOrdersQueryResponse{}, nil).Once()

		rec := serve(newEcho(nil, orders, ""), httptest.NewRequest(http.MethodGet, "/api/v1/conversations/7/orders", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("should reject bad ids", func(t *testing.T) {
		for _, id := range []string{"abc", "0"} {
			rec := serve(newEcho(nil, new(MockListOrdersHandler), ""),
				httptest.NewRequest(http.MethodGet, "/api/v1/conversations/"+id+"/orders", nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code, id)
		}
	})

	t.Run("should hide storage errors", func(t *testing.T) {
		orders := new(MockListOrdersHandler)
		orders.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

		rec := serve(newEcho(nil, orders, ""), httptest.NewRequest(http.MethodGet, "/api/v1/conversations/7/orders", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}
