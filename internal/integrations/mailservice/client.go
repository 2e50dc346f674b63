package mailservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса почтовой рассылки
type Client struct {
	baseURL    string
	from       string
	httpClient *http.Client
	logger     Logger
}

// NewClient создает клиент сервиса рассылки
func NewClient(baseURL, from string, timeout time.Duration, logger Logger) *Client {
	return &Client{
		baseURL: baseURL,
		from:    from,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Send отправляет письмо через сервис рассылки
func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      to,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %v", ErrRequestFailed, err)
	}

	url := fmt.Sprintf("%s/api/v1/mail/send", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	// тело не используется, но вычитывается для переиспользования соединения
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return nil
}

// Notify отправляет письмо по принципу fire-and-forget: сбой доставки
// логируется и не влияет на вызвавшую операцию
func (c *Client) Notify(ctx context.Context, recipient, subject, body string) {
	if err := c.Send(ctx, recipient, subject, body); err != nil {
		c.logger.Error("mailservice: notify %s failed: %v", recipient, err)
		return
	}

	c.logger.Info("mailservice: notification sent to %s: %s", recipient, subject)
}
