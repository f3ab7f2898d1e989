package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/geocheckin/internal/crypto"
	"github.com/iudanet/geocheckin/internal/models"
	"github.com/iudanet/geocheckin/internal/server/cache"
	"github.com/iudanet/geocheckin/internal/server/metrics"
	"github.com/iudanet/geocheckin/internal/server/storage"
	"github.com/iudanet/geocheckin/internal/validation"
	"github.com/iudanet/geocheckin/pkg/api"
)

const (
	// DefaultMarkerLimit лимит выборки маркеров, если клиент не передал limit
	DefaultMarkerLimit = 500
	// MaxMarkerLimit верхняя граница limit
	MaxMarkerLimit = 2000
	// DefaultPageSize размер страницы истории
	DefaultPageSize = 20
	// MaxPageSize верхняя граница limit истории
	MaxPageSize = 100

	multipartMemory = 8 << 20
)

// PhotoPath путь загрузки фото; используется как thumbnail_ref маркера
func PhotoPath(photoID string) string {
	return "/api/v1/photos/" + url.PathEscape(photoID)
}

// CheckinHandler обрабатывает прием check-in и запросы карты
type CheckinHandler struct {
	responder
	store          storage.CheckinStorage
	photos         storage.PhotoStore
	cache          cache.MarkerCache
	metrics        *metrics.Metrics
	now            func() time.Time
	maxUploadBytes int64
}

// NewCheckinHandler создает handler check-in.
// cache может быть cache.Noop{}, если Redis не настроен.
func NewCheckinHandler(
	logger *slog.Logger,
	store storage.CheckinStorage,
	photos storage.PhotoStore,
	markerCache cache.MarkerCache,
	m *metrics.Metrics,
	maxUploadBytes int64,
) *CheckinHandler {
	return &CheckinHandler{
		responder:      responder{logger: logger},
		store:          store,
		photos:         photos,
		cache:          markerCache,
		metrics:        m,
		now:            time.Now,
		maxUploadBytes: maxUploadBytes,
	}
}

// Submit обрабатывает POST /api/v1/checkins
// Повторная отправка с тем же local_id возвращает уже сохраненную запись (200)
func (h *CheckinHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	shipperID, ok := GetShipperID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.metrics.CheckinResult(metrics.ResultRejected)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.sendError(w, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		h.logger.WarnContext(ctx, "invalid multipart body", slog.Any("error", err))
		h.sendError(w, "invalid multipart body", http.StatusBadRequest)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	rec, err := decodeCheckin(r.MultipartForm, h.now())
	if err == nil {
		err = validation.ValidateCheckin(rec)
	}
	if err != nil {
		h.metrics.CheckinResult(metrics.ResultRejected)
		h.logger.WarnContext(ctx, "rejected check-in",
			slog.String("shipper_id", shipperID),
			slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// быстрый путь для повторной отправки из очереди клиента
	existing, err := h.store.GetCheckinByLocalID(ctx, rec.LocalID)
	switch {
	case err == nil:
		h.sendDuplicate(ctx, w, shipperID, existing)
		return
	case !errors.Is(err, storage.ErrCheckinNotFound):
		h.metrics.CheckinResult(metrics.ResultFailed)
		h.logger.ErrorContext(ctx, "failed to look up check-in", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	c := newStoredCheckin(rec, shipperID, h.now())

	uploaded := make([]string, 0, len(rec.Photos))
	for i, p := range rec.Photos {
		id := c.Photos[i].ID
		if err := h.photos.PutPhoto(ctx, id, p.MimeType, p.Data); err != nil {
			h.discardPhotos(uploaded)
			h.metrics.CheckinResult(metrics.ResultFailed)
			h.logger.ErrorContext(ctx, "failed to store photo", slog.String("local_id", rec.LocalID), slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		uploaded = append(uploaded, id)
	}

	stored, created, err := h.store.SaveCheckin(ctx, c)
	if err != nil {
		h.discardPhotos(uploaded)
		if errors.Is(err, storage.ErrLocalIDConflict) {
			h.metrics.CheckinResult(metrics.ResultRejected)
			h.sendError(w, "local_id already used by another shipper", http.StatusConflict)
			return
		}
		h.metrics.CheckinResult(metrics.ResultFailed)
		h.logger.ErrorContext(ctx, "failed to save check-in", slog.String("local_id", rec.LocalID), slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !created {
		// параллельная отправка того же local_id успела раньше
		h.discardPhotos(uploaded)
		h.sendDuplicate(ctx, w, shipperID, stored)
		return
	}

	var photoBytes int64
	for _, p := range rec.Photos {
		photoBytes += int64(len(p.Data))
	}
	h.metrics.PhotoBytes(photoBytes)
	h.metrics.CheckinResult(metrics.ResultCreated)
	h.cache.Invalidate(ctx)

	h.logger.InfoContext(ctx, "check-in accepted",
		slog.String("id", stored.ID),
		slog.String("local_id", stored.LocalID),
		slog.String("shipper_id", shipperID),
		slog.Int("photos", len(stored.Photos)))

	h.sendJSON(w, toResponse(stored, false), http.StatusCreated)
}

func (h *CheckinHandler) sendDuplicate(ctx context.Context, w http.ResponseWriter, shipperID string, existing *storage.Checkin) {
	if existing.ShipperID != shipperID {
		h.metrics.CheckinResult(metrics.ResultRejected)
		h.sendError(w, "local_id already used by another shipper", http.StatusConflict)
		return
	}
	h.metrics.CheckinResult(metrics.ResultDuplicate)
	h.logger.InfoContext(ctx, "duplicate check-in", slog.String("local_id", existing.LocalID))
	h.sendJSON(w, toResponse(existing, true), http.StatusOK)
}

// discardPhotos удаляет загруженные байты, если запись не сохранилась
func (h *CheckinHandler) discardPhotos(ids []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, id := range ids {
		if err := h.photos.DeletePhoto(ctx, id); err != nil {
			h.logger.Warn("failed to discard photo", slog.String("photo_id", id), slog.Any("error", err))
		}
	}
}

// Markers обрабатывает GET /api/v1/checkins/markers
// Возвращает check-in текущего курьера внутри bounding box
func (h *CheckinHandler) Markers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	shipperID, ok := GetShipperID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	q, err := parseMarkerQuery(r.URL.Query())
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	q.ShipperID = shipperID

	key := markerCacheKey(q)
	if resp, hit := h.cache.Get(ctx, key); hit {
		h.metrics.MarkerCache(true)
		h.sendJSON(w, resp, http.StatusOK)
		return
	}
	h.metrics.MarkerCache(false)

	checkins, err := h.store.QueryMarkers(ctx, q)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to query markers", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := &api.MarkersResponse{
		Markers:   make([]api.Marker, 0, len(checkins)),
		Count:     len(checkins),
		Truncated: len(checkins) >= q.Limit,
	}
	for _, c := range checkins {
		m := api.Marker{
			ID:           c.ID,
			Latitude:     c.Latitude,
			Longitude:    c.Longitude,
			OrderNumber:  c.OrderID,
			AddressLabel: c.AddressLabel,
			Timestamp:    time.UnixMilli(c.CapturedAtMs).UTC(),
		}
		if len(c.Photos) > 0 {
			m.ThumbnailRef = PhotoPath(c.Photos[0].ID)
		}
		resp.Markers = append(resp.Markers, m)
	}

	h.cache.Set(ctx, key, resp)
	h.sendJSON(w, resp, http.StatusOK)
}

// History обрабатывает GET /api/v1/checkins?page=&limit=
// Страницы истории текущего курьера, новые check-in первыми
func (h *CheckinHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	shipperID, ok := GetShipperID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	page, limit, err := parsePage(r.URL.Query())
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	checkins, total, err := h.store.ListCheckins(ctx, storage.HistoryQuery{
		ShipperID: shipperID,
		Offset:    (page - 1) * limit,
		Limit:     limit,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list check-ins", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	totalPages := (total + limit - 1) / limit
	resp := &api.HistoryResponse{
		Checkins: make([]api.CheckinResponse, 0, len(checkins)),
		Pagination: api.Pagination{
			Page:        page,
			Limit:       limit,
			Total:       total,
			TotalPages:  totalPages,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
		},
	}
	for _, c := range checkins {
		resp.Checkins = append(resp.Checkins, *toResponse(c, false))
	}
	h.sendJSON(w, resp, http.StatusOK)
}

// Detail обрабатывает GET /api/v1/checkins/{id}
func (h *CheckinHandler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	shipperID, ok := GetShipperID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		h.sendError(w, "id is required", http.StatusBadRequest)
		return
	}

	c, err := h.store.GetCheckin(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrCheckinNotFound) {
			h.sendError(w, "check-in not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get check-in", slog.String("id", id), slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	// чужие записи не раскрываем даже фактом существования
	if c.ShipperID != shipperID {
		h.sendError(w, "check-in not found", http.StatusNotFound)
		return
	}

	h.sendJSON(w, toResponse(c, false), http.StatusOK)
}

// Photo обрабатывает GET /api/v1/photos/{id}
func (h *CheckinHandler) Photo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	shipperID, ok := GetShipperID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id := r.PathValue("id")
	meta, err := h.store.GetPhotoMeta(ctx, id)
	if err == nil {
		var c *storage.Checkin
		c, err = h.store.GetCheckin(ctx, meta.CheckinID)
		if err == nil && c.ShipperID != shipperID {
			err = storage.ErrPhotoNotFound
		}
	}
	var data []byte
	if err == nil {
		data, err = h.photos.GetPhoto(ctx, id)
	}
	if err != nil {
		if errors.Is(err, storage.ErrPhotoNotFound) || errors.Is(err, storage.ErrCheckinNotFound) {
			h.sendError(w, "photo not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to load photo", slog.String("photo_id", id), slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", meta.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "private, max-age=86400, immutable")
	w.Header().Set("ETag", `"`+meta.Checksum+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.WarnContext(ctx, "failed to write photo", slog.Any("error", err))
	}
}

// decodeCheckin собирает запись из multipart формы и сверяет checksum каждого фото
func decodeCheckin(form *multipart.Form, now time.Time) (*models.CheckinRecord, error) {
	value := func(name string) string {
		if v := form.Value[name]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}
	number := func(name string, required bool) (*float64, error) {
		raw := value(name)
		if raw == "" {
			if required {
				return nil, fmt.Errorf("%w: %s is required", validation.ErrInvalidCheckin, name)
			}
			return nil, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s is not a number", validation.ErrInvalidCheckin, name)
		}
		return &v, nil
	}

	lat, err := number(api.FieldLatitude, true)
	if err != nil {
		return nil, err
	}
	lng, err := number(api.FieldLongitude, true)
	if err != nil {
		return nil, err
	}
	accuracy, err := number(api.FieldAccuracy, false)
	if err != nil {
		return nil, err
	}

	rec := &models.CheckinRecord{
		LocalID:      value(api.FieldLocalID),
		OrderID:      value(api.FieldOrderID),
		Notes:        value(api.FieldNotes),
		AddressLabel: value(api.FieldAddressLabel),
		Position: models.GeoPosition{
			Latitude:     *lat,
			Longitude:    *lng,
			Source:       models.PositionSource(value(api.FieldSource)),
			CapturedAtMs: now.UnixMilli(),
		},
	}
	if accuracy != nil {
		rec.Position.AccuracyMeters = *accuracy
	}
	if rec.Position.Altitude, err = number(api.FieldAltitude, false); err != nil {
		return nil, err
	}
	if rec.Position.HeadingDegrees, err = number(api.FieldHeading, false); err != nil {
		return nil, err
	}
	if rec.Position.SpeedMps, err = number(api.FieldSpeed, false); err != nil {
		return nil, err
	}
	if raw := value(api.FieldCapturedAt); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("%w: %s must be unix milliseconds", validation.ErrInvalidCheckin, api.FieldCapturedAt)
		}
		rec.Position.CapturedAtMs = ms
	}

	files := form.File[api.FieldPhotos]
	checksums := form.Value[api.FieldPhotoChecksums]
	if len(files) > models.MaxPhotos {
		return nil, fmt.Errorf("%w: at most %d photos are allowed", validation.ErrInvalidCheckin, models.MaxPhotos)
	}
	if len(checksums) != len(files) {
		return nil, fmt.Errorf("%w: expected %d photo checksums, got %d", validation.ErrInvalidCheckin, len(files), len(checksums))
	}

	for i, fh := range files {
		data, err := readPart(fh)
		if err != nil {
			return nil, err
		}
		if err := crypto.VerifyPhotoChecksum(data, checksums[i]); err != nil {
			return nil, fmt.Errorf("%w: photo %d: %w", validation.ErrInvalidCheckin, i, err)
		}

		mimeType := fh.Header.Get("Content-Type")
		if mimeType == "" || mimeType == "application/octet-stream" {
			mimeType = http.DetectContentType(data)
		}
		rec.Photos = append(rec.Photos, models.PhotoBlob{
			Filename:  fh.Filename,
			MimeType:  mimeType,
			Checksum:  checksums[i],
			Data:      data,
			SizeBytes: int64(len(data)),
		})
	}

	return rec, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > validation.MaxPhotoBytes {
		return nil, fmt.Errorf("%w: photo %q exceeds %d bytes", validation.ErrInvalidCheckin, fh.Filename, validation.MaxPhotoBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open photo part: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo part: %w", err)
	}
	return data, nil
}

func newStoredCheckin(rec *models.CheckinRecord, shipperID string, now time.Time) *storage.Checkin {
	c := &storage.Checkin{
		ID:           uuid.NewString(),
		LocalID:      rec.LocalID,
		ShipperID:    shipperID,
		OrderID:      rec.OrderID,
		Source:       string(rec.Position.Source),
		Notes:        rec.Notes,
		AddressLabel: rec.AddressLabel,
		Latitude:     rec.Position.Latitude,
		Longitude:    rec.Position.Longitude,
		Accuracy:     rec.Position.AccuracyMeters,
		Altitude:     rec.Position.Altitude,
		Heading:      rec.Position.HeadingDegrees,
		Speed:        rec.Position.SpeedMps,
		CapturedAtMs: rec.Position.CapturedAtMs,
		CreatedAt:    now.UTC().Truncate(time.Millisecond),
		Photos:       make([]storage.PhotoMeta, len(rec.Photos)),
	}
	for i, p := range rec.Photos {
		c.Photos[i] = storage.PhotoMeta{
			ID:        uuid.NewString(),
			CheckinID: c.ID,
			Filename:  p.Filename,
			MimeType:  p.MimeType,
			Checksum:  p.Checksum,
			Size:      p.SizeBytes,
			Position:  i,
		}
	}
	return c
}

func toResponse(c *storage.Checkin, duplicate bool) *api.CheckinResponse {
	resp := &api.CheckinResponse{
		ID:           c.ID,
		LocalID:      c.LocalID,
		OrderID:      c.OrderID,
		ShipperID:    c.ShipperID,
		Source:       c.Source,
		Notes:        c.Notes,
		AddressLabel: c.AddressLabel,
		Latitude:     c.Latitude,
		Longitude:    c.Longitude,
		Accuracy:     c.Accuracy,
		Altitude:     c.Altitude,
		Heading:      c.Heading,
		Speed:        c.Speed,
		CapturedAt:   c.CapturedAtMs,
		CreatedAt:    c.CreatedAt,
		PhotoIDs:     make([]string, 0, len(c.Photos)),
		Duplicate:    duplicate,
	}
	for _, p := range c.Photos {
		resp.PhotoIDs = append(resp.PhotoIDs, p.ID)
	}
	return resp
}

func parseMarkerQuery(v url.Values) (storage.MarkerQuery, error) {
	var q storage.MarkerQuery

	coords := []struct {
		dst  *float64
		name string
	}{
		{&q.MinLng, "min_lng"},
		{&q.MinLat, "min_lat"},
		{&q.MaxLng, "max_lng"},
		{&q.MaxLat, "max_lat"},
	}
	for _, c := range coords {
		raw := v.Get(c.name)
		if raw == "" {
			return q, fmt.Errorf("%s is required", c.name)
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return q, fmt.Errorf("%s is not a number", c.name)
		}
		*c.dst = f
	}

	bounds := models.Bounds{MinLng: q.MinLng, MinLat: q.MinLat, MaxLng: q.MaxLng, MaxLat: q.MaxLat}
	if err := bounds.Validate(); err != nil {
		return q, err
	}

	for _, t := range []struct {
		dst  *time.Time
		name string
	}{{&q.From, "from"}, {&q.To, "to"}} {
		raw := v.Get(t.name)
		if raw == "" {
			continue
		}
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return q, fmt.Errorf("%s must be an RFC 3339 timestamp", t.name)
		}
		*t.dst = parsed
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return q, errors.New("from must not be after to")
	}

	q.Limit = DefaultMarkerLimit
	if raw := v.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return q, errors.New("limit must be a positive integer")
		}
		q.Limit = min(limit, MaxMarkerLimit)
	}

	return q, nil
}

func parsePage(v url.Values) (page, limit int, err error) {
	page, limit = 1, DefaultPageSize
	if raw := v.Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page <= 0 {
			return 0, 0, errors.New("page must be a positive integer")
		}
	}
	if raw := v.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return 0, 0, errors.New("limit must be a positive integer")
		}
		limit = min(limit, MaxPageSize)
	}
	return page, limit, nil
}

// markerCacheKey каноническое представление запроса
func markerCacheKey(q storage.MarkerQuery) string {
	var from, to int64
	if !q.From.IsZero() {
		from = q.From.UnixMilli()
	}
	if !q.To.IsZero() {
		to = q.To.UnixMilli()
	}
	return fmt.Sprintf("%s|%.6f,%.6f,%.6f,%.6f|%d|%d|%d",
		q.ShipperID, q.MinLng, q.MinLat, q.MaxLng, q.MaxLat, from, to, q.Limit)
}
