// Package telegram delivers replies through the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/ports"
	"shipquote/internal/pkg/httpx"
)

const DefaultAPIURL = "https://api.telegram.org"

type keyboardButton struct {
	Text string `json:"text"`
}

type replyKeyboardMarkup struct {
	Keyboard        [][]keyboardButton `json:"keyboard"`
	OneTimeKeyboard bool               `json:"one_time_keyboard"`
	ResizeKeyboard  bool               `json:"resize_keyboard"`
}

type replyKeyboardRemove struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
}

type sendMessageRequest struct {
	ChatID      int64  `json:"chat_id"`
	Text        string `json:"text"`
	ReplyMarkup any    `json:"reply_markup,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Messenger implements ports.Messenger with sendMessage. Options become a
// one-time reply keyboard with one button per row; a reply without options
// removes any keyboard left from an earlier prompt.
type Messenger struct {
	endpoint string
	client   httpx.Client
	logger   *slog.Logger
}

var _ ports.Messenger = (*Messenger)(nil)

// NewMessenger creates a messenger for the bot token. apiURL defaults to DefaultAPIURL.
func NewMessenger(token, apiURL string, httpClient *http.Client, logger *slog.Logger) (*Messenger, error) {
	if token == "" {
		return nil, errors.New("telegram bot token is empty")
	}
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Messenger{
		endpoint: fmt.Sprintf("%s/bot%s/sendMessage", apiURL, token),
		client:   httpx.NewClient(httpClient, logger, nil, 0),
		logger:   logger.With("component", "telegram_messenger"),
	}, nil
}

func (m *Messenger) Send(ctx context.Context, conversation kernel.ConversationID, reply ports.Reply) (err error) {
	defer httpx.Timed(ctx, m.logger, "telegram.sendMessage")(&err)

	if err = conversation.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:      conversation.Int64(),
		Text:        reply.Text,
		ReplyMarkup: markup(reply.Options),
	})
	if err != nil {
		return fmt.Errorf("marshal sendMessage: %w", err)
	}

	resp, err := m.client.DoWithRetry(ctx, func() (*http.Request, error) {
		return m.client.NewRequest(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return fmt.Errorf("sendMessage to %s: %w", conversation, err)
	}
	defer resp.Body.Close()

	var decoded apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("decode sendMessage response: %w", err)
	}
	if !decoded.OK {
		return fmt.Errorf("sendMessage to %s rejected: %s", conversation, decoded.Description)
	}
	return nil
}

func markup(options []string) any {
	if len(options) == 0 {
		return replyKeyboardRemove{RemoveKeyboard: true}
	}

	rows := make([][]keyboardButton, 0, len(options))
	for _, o := range options {
		rows = append(rows, []keyboardButton{{Text: o}})
	}
	return replyKeyboardMarkup{Keyboard: rows, OneTimeKeyboard: true, ResizeKeyboard: true}
}
