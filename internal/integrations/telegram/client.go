package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client клиент Telegram Bot API для сообщений клиентам мойки
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Bot API.
// Пустой token переводит клиента в режим "только лог"
func NewClient(baseURL, token string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет текст пользователю (chat_id совпадает с telegram user id)
func (c *Client) Send(ctx context.Context, userID int64, text string) error {
	if c.token == "" {
		c.log.Info("Telegram disabled, message to user_id=%d: %s", userID, text)
		return nil
	}

	body, err := json.Marshal(sendMessageRequest{ChatID: userID, Text: text})
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, c.redact(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, c.redact(err))
	}
	defer resp.Body.Close()

	var result apiResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&result)

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest, http.StatusForbidden:
		return fmt.Errorf("%w: user_id=%d: %s", ErrChatNotFound, userID, result.Description)
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, result.Description)
	}

	if decodeErr != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, decodeErr)
	}
	if !result.OK {
		return fmt.Errorf("%w: %s", ErrInvalidResponse, result.Description)
	}

	c.log.Debug("Message delivered to user_id=%d", userID)
	return nil
}

// redact убирает токен бота из текста ошибки (url попадает в *url.Error)
func (c *Client) redact(err error) string {
	return strings.ReplaceAll(err.Error(), c.token, "<token>")
}
