package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/geocheckin/internal/models"
	"github.com/iudanet/geocheckin/pkg/api"
)

// DefaultTimeout таймаут одного HTTP запроса
const DefaultTimeout = 30 * time.Second

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI операции удаленного сервера check-in
type ClientAPI interface {
	// SubmitCheckin отправляет запись; повторная отправка того же LocalID безопасна
	SubmitCheckin(ctx context.Context, rec *models.CheckinRecord) (*api.CheckinResponse, error)
	// QueryMarkers возвращает маркеры внутри bounds (и диапазона дат, если задан)
	QueryMarkers(ctx context.Context, bounds models.Bounds, dates models.DateRange) ([]models.CheckinMarker, error)
	// GetCheckin возвращает сохраненную запись по серверному ID
	GetCheckin(ctx context.Context, id string) (*api.CheckinResponse, error)
	// ListCheckins возвращает страницу истории курьера; 0 означает значение сервера по умолчанию
	ListCheckins(ctx context.Context, page, limit int) (*api.HistoryResponse, error)
	// WhoAmI проверяет токен
	WhoAmI(ctx context.Context) (*api.WhoAmIResponse, error)
	// Health проверяет доступность сервера
	Health(ctx context.Context) error
}

// StatusError ответ сервера с кодом не 2xx
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// IsClientError reports whether err is a 4xx response from the server.
func IsClientError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode >= 400 && se.StatusCode < 500
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient создает новый API клиент. token может быть пустым для health check.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// SubmitCheckin отправляет check-in как multipart/form-data
func (c *Client) SubmitCheckin(ctx context.Context, rec *models.CheckinRecord) (*api.CheckinResponse, error) {
	body, contentType, err := encodeCheckin(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode check-in: %w", err)
	}

	var resp api.CheckinResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/checkins", contentType, body, &resp); err != nil {
		return nil, fmt.Errorf("submit check-in request failed: %w", err)
	}
	return &resp, nil
}

// QueryMarkers выполняет запрос по bounding box
func (c *Client) QueryMarkers(ctx context.Context, bounds models.Bounds, dates models.DateRange) ([]models.CheckinMarker, error) {
	q := url.Values{}
	q.Set("min_lng", formatFloat(bounds.MinLng))
	q.Set("min_lat", formatFloat(bounds.MinLat))
	q.Set("max_lng", formatFloat(bounds.MaxLng))
	q.Set("max_lat", formatFloat(bounds.MaxLat))
	if !dates.From.IsZero() {
		q.Set("from", dates.From.UTC().Format(time.RFC3339))
	}
	if !dates.To.IsZero() {
		q.Set("to", dates.To.UTC().Format(time.RFC3339))
	}

	var resp api.MarkersResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/checkins/markers?"+q.Encode(), "", nil, &resp); err != nil {
		return nil, fmt.Errorf("query markers request failed: %w", err)
	}

	markers := make([]models.CheckinMarker, 0, len(resp.Markers))
	for _, m := range resp.Markers {
		markers = append(markers, models.CheckinMarker{
			ID:           m.ID,
			Latitude:     m.Latitude,
			Longitude:    m.Longitude,
			OrderNumber:  m.OrderNumber,
			ThumbnailRef: m.ThumbnailRef,
			Timestamp:    m.Timestamp,
			AddressLabel: m.AddressLabel,
		})
	}
	return markers, nil
}

// GetCheckin получает запись по серверному ID
func (c *Client) GetCheckin(ctx context.Context, id string) (*api.CheckinResponse, error) {
	var resp api.CheckinResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/checkins/"+url.PathEscape(id), "", nil, &resp); err != nil {
		return nil, fmt.Errorf("get check-in request failed: %w", err)
	}
	return &resp, nil
}

// ListCheckins получает страницу истории check-in текущего курьера
func (c *Client) ListCheckins(ctx context.Context, page, limit int) (*api.HistoryResponse, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/v1/checkins"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp api.HistoryResponse
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, fmt.Errorf("list check-ins request failed: %w", err)
	}
	return &resp, nil
}

// WhoAmI проверяет токен и возвращает его владельца
func (c *Client) WhoAmI(ctx context.Context) (*api.WhoAmIResponse, error) {
	var resp api.WhoAmIResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/whoami", "", nil, &resp); err != nil {
		return nil, fmt.Errorf("whoami request failed: %w", err)
	}
	return &resp, nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) error {
	var resp api.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", "", nil, &resp); err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	if resp.Status != "ok" {
		return fmt.Errorf("server is not healthy: %s", resp.Status)
	}
	return nil
}

// do выполняет HTTP запрос
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, result any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && (errResp.Message != "" || errResp.Error != "") {
			msg := errResp.Message
			if msg == "" {
				msg = errResp.Error
			}
			return &StatusError{StatusCode: resp.StatusCode, Message: msg}
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// encodeCheckin собирает multipart тело; фото передаются сырыми байтами
func encodeCheckin(rec *models.CheckinRecord) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	pos := rec.Position
	fields := [][2]string{
		{api.FieldLocalID, rec.LocalID},
		{api.FieldOrderID, rec.OrderID},
		{api.FieldLatitude, formatFloat(pos.Latitude)},
		{api.FieldLongitude, formatFloat(pos.Longitude)},
		{api.FieldAccuracy, formatFloat(pos.AccuracyMeters)},
		{api.FieldCapturedAt, strconv.FormatInt(pos.CapturedAtMs, 10)},
		{api.FieldSource, string(pos.Source)},
		{api.FieldNotes, rec.Notes},
	}
	if pos.Altitude != nil {
		fields = append(fields, [2]string{api.FieldAltitude, formatFloat(*pos.Altitude)})
	}
	if pos.HeadingDegrees != nil {
		fields = append(fields, [2]string{api.FieldHeading, formatFloat(*pos.HeadingDegrees)})
	}
	if pos.SpeedMps != nil {
		fields = append(fields, [2]string{api.FieldSpeed, formatFloat(*pos.SpeedMps)})
	}
	if rec.AddressLabel != "" {
		fields = append(fields, [2]string{api.FieldAddressLabel, rec.AddressLabel})
	}

	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", f[0], err)
		}
	}

	for i, p := range rec.Photos {
		if err := w.WriteField(api.FieldPhotoChecksums, p.Checksum); err != nil {
			return nil, "", fmt.Errorf("failed to write checksum %d: %w", i, err)
		}

		h := make(textproto.MIMEHeader)
		filename := p.Filename
		if filename == "" {
			filename = fmt.Sprintf("photo-%d.jpg", i)
		}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, api.FieldPhotos, quoteEscaper.Replace(filename)))
		mimeType := p.MimeType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		h.Set("Content-Type", mimeType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create photo part %d: %w", i, err)
		}
		if _, err := part.Write(p.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write photo %d: %w", i, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
