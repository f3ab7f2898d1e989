package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/geocheckin/internal/server/storage"
)

const checkinColumns = `c.id, c.local_id, c.shipper_id, c.order_id, c.latitude, c.longitude,
	c.accuracy, c.altitude, c.heading, c.speed, c.captured_at, c.source,
	c.notes, c.address_label, c.created_at`

// SaveCheckin stores a new check-in; an existing LocalID returns the stored record
func (s *Storage) SaveCheckin(ctx context.Context, c *storage.Checkin) (*storage.Checkin, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO checkins (
			id, local_id, shipper_id, order_id, latitude, longitude,
			accuracy, altitude, heading, speed, captured_at, source,
			notes, address_label, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (local_id) DO NOTHING
	`,
		c.ID, c.LocalID, c.ShipperID, c.OrderID, c.Latitude, c.Longitude,
		c.Accuracy, nullFloat(c.Altitude), nullFloat(c.Heading), nullFloat(c.Speed),
		c.CapturedAtMs, c.Source, c.Notes, c.AddressLabel, c.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert check-in: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if inserted == 0 {
		// local_id уже принят: возвращаем каноническую запись
		existing, err := getCheckin(ctx, tx, "c.local_id = ?", c.LocalID)
		if err != nil {
			return nil, false, err
		}
		if existing.ShipperID != c.ShipperID {
			return nil, false, storage.ErrLocalIDConflict
		}
		return existing, false, nil
	}

	for i, p := range c.Photos {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO checkin_photos (id, checkin_id, position, filename, mime_type, checksum, size)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, p.ID, c.ID, i, p.Filename, p.MimeType, p.Checksum, p.Size)
		if err != nil {
			return nil, false, fmt.Errorf("failed to insert photo %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit check-in: %w", err)
	}

	stored := *c
	stored.Photos = make([]storage.PhotoMeta, len(c.Photos))
	for i, p := range c.Photos {
		p.CheckinID = c.ID
		p.Position = i
		stored.Photos[i] = p
	}
	return &stored, true, nil
}

// GetCheckin retrieves a check-in by server ID
func (s *Storage) GetCheckin(ctx context.Context, id string) (*storage.Checkin, error) {
	return getCheckin(ctx, s.db, "c.id = ?", id)
}

// GetCheckinByLocalID retrieves a check-in by client idempotency key
func (s *Storage) GetCheckinByLocalID(ctx context.Context, localID string) (*storage.Checkin, error) {
	return getCheckin(ctx, s.db, "c.local_id = ?", localID)
}

// QueryMarkers returns check-ins inside the box with only their first photo
func (s *Storage) QueryMarkers(ctx context.Context, q storage.MarkerQuery) ([]*storage.Checkin, error) {
	var (
		where = []string{"c.latitude BETWEEN ? AND ?", "c.longitude BETWEEN ? AND ?"}
		args  = []any{q.MinLat, q.MaxLat, q.MinLng, q.MaxLng}
	)
	if q.ShipperID != "" {
		where = append(where, "c.shipper_id = ?")
		args = append(args, q.ShipperID)
	}
	if !q.From.IsZero() {
		where = append(where, "c.captured_at >= ?")
		args = append(args, q.From.UnixMilli())
	}
	if !q.To.IsZero() {
		where = append(where, "c.captured_at <= ?")
		args = append(args, q.To.UnixMilli())
	}

	query := `SELECT ` + checkinColumns + `, p.id
		FROM checkins c
		LEFT JOIN checkin_photos p ON p.checkin_id = c.id AND p.position = 0
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY c.captured_at DESC, c.id`
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query markers: %w", err)
	}
	defer rows.Close()

	result := make([]*storage.Checkin, 0)
	for rows.Next() {
		var thumb sql.NullString
		c, err := scanCheckin(rows, &thumb)
		if err != nil {
			return nil, err
		}
		if thumb.Valid {
			c.Photos = []storage.PhotoMeta{{ID: thumb.String, CheckinID: c.ID}}
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate markers: %w", err)
	}

	return result, nil
}

// ListCheckins returns a page of the shipper's history with all photo metadata
func (s *Storage) ListCheckins(ctx context.Context, q storage.HistoryQuery) ([]*storage.Checkin, int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM checkins WHERE shipper_id = ?`, q.ShipperID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count check-ins: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+checkinColumns+`
		FROM checkins c
		WHERE c.shipper_id = ?
		ORDER BY c.captured_at DESC, c.id
		LIMIT ? OFFSET ?`, q.ShipperID, q.Limit, q.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list check-ins: %w", err)
	}
	defer rows.Close()

	result := make([]*storage.Checkin, 0, q.Limit)
	byID := make(map[string]*storage.Checkin, q.Limit)
	for rows.Next() {
		c, err := scanCheckin(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, c)
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate check-ins: %w", err)
	}

	if err := loadPhotos(ctx, s.db, byID); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// loadPhotos дозаполняет фото для набора записей одним запросом
func loadPhotos(ctx context.Context, q querier, byID map[string]*storage.Checkin) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]any, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	rows, err := q.QueryContext(ctx, `
		SELECT id, checkin_id, position, filename, mime_type, checksum, size
		FROM checkin_photos WHERE checkin_id IN (`+placeholders+`)
		ORDER BY checkin_id, position
	`, ids...)
	if err != nil {
		return fmt.Errorf("failed to query photos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p storage.PhotoMeta
		if err := rows.Scan(&p.ID, &p.CheckinID, &p.Position, &p.Filename, &p.MimeType, &p.Checksum, &p.Size); err != nil {
			return fmt.Errorf("failed to scan photo: %w", err)
		}
		if c, ok := byID[p.CheckinID]; ok {
			c.Photos = append(c.Photos, p)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate photos: %w", err)
	}
	return nil
}

// GetPhotoMeta retrieves photo metadata
func (s *Storage) GetPhotoMeta(ctx context.Context, photoID string) (*storage.PhotoMeta, error) {
	p := &storage.PhotoMeta{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, checkin_id, position, filename, mime_type, checksum, size
		FROM checkin_photos WHERE id = ?
	`, photoID).Scan(&p.ID, &p.CheckinID, &p.Position, &p.Filename, &p.MimeType, &p.Checksum, &p.Size)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return p, nil
}

// querier общий интерфейс *sql.DB и *sql.Tx
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type scanner interface {
	Scan(dest ...any) error
}

func getCheckin(ctx context.Context, q querier, cond string, arg any) (*storage.Checkin, error) {
	row := q.QueryRowContext(ctx, `SELECT `+checkinColumns+` FROM checkins c WHERE `+cond, arg)
	c, err := scanCheckin(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrCheckinNotFound
		}
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, checkin_id, position, filename, mime_type, checksum, size
		FROM checkin_photos WHERE checkin_id = ? ORDER BY position
	`, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p storage.PhotoMeta
		if err := rows.Scan(&p.ID, &p.CheckinID, &p.Position, &p.Filename, &p.MimeType, &p.Checksum, &p.Size); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		c.Photos = append(c.Photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate photos: %w", err)
	}

	return c, nil
}

func scanCheckin(row scanner, extra ...any) (*storage.Checkin, error) {
	c := &storage.Checkin{}
	var (
		altitude, heading, speed sql.NullFloat64
		createdAt                int64
	)

	dest := []any{
		&c.ID, &c.LocalID, &c.ShipperID, &c.OrderID, &c.Latitude, &c.Longitude,
		&c.Accuracy, &altitude, &heading, &speed, &c.CapturedAtMs, &c.Source,
		&c.Notes, &c.AddressLabel, &createdAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan check-in: %w", err)
	}

	c.Altitude = floatPtr(altitude)
	c.Heading = floatPtr(heading)
	c.Speed = floatPtr(speed)
	c.CreatedAt = time.UnixMilli(createdAt).UTC()
	return c, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
