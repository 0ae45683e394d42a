package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с NotifyService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// NotifyBookingCreated отправляет событие о созданном бронировании
func (c *Client) NotifyBookingCreated(ctx context.Context, event BookingCreatedEvent) error {
	url := fmt.Sprintf("%s/internal/notifications/bookings", c.baseURL)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}

// NotifyBookingCreatedWithGracefulDegradation отправляет событие с graceful degradation
// Бронирование к этому моменту уже зафиксировано в базе, поэтому недоступность
// NotifyService не является причиной для отказа - возвращаем ErrServiceDegraded
// и оставляем решение за вызывающим кодом
func (c *Client) NotifyBookingCreatedWithGracefulDegradation(ctx context.Context, event BookingCreatedEvent) error {
	c.log.Info("Sending booking created event, booking_id=%d", event.BookingID)

	if err := c.NotifyBookingCreated(ctx, event); err != nil {
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("NotifyService unavailable, applying graceful degradation for booking_id=%d: %v", event.BookingID, err)
		return fmt.Errorf("%w: booking_id=%d, error=%v", ErrServiceDegraded, event.BookingID, err)
	}

	c.log.Info("Successfully sent booking created event, booking_id=%d", event.BookingID)
	return nil
}
