package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/geocheckin/internal/server/storage"
)

// PhotoStore хранит байты фото в той же SQLite базе (PHOTO_STORE=sqlite)
type PhotoStore struct {
	db *sql.DB
}

// Photos returns the photo store backed by this database
func (s *Storage) Photos() *PhotoStore {
	return &PhotoStore{db: s.db}
}

// PutPhoto stores photo bytes
func (p *PhotoStore) PutPhoto(ctx context.Context, id, mimeType string, data []byte) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO photo_blobs (id, mime_type, data, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET mime_type = excluded.mime_type, data = excluded.data
	`, id, mimeType, data, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to store photo: %w", err)
	}
	return nil
}

// GetPhoto returns photo bytes
func (p *PhotoStore) GetPhoto(ctx context.Context, id string) ([]byte, error) {
	var data []byte
	err := p.db.QueryRowContext(ctx, `SELECT data FROM photo_blobs WHERE id = ?`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return data, nil
}

// DeletePhoto removes photo bytes
func (p *PhotoStore) DeletePhoto(ctx context.Context, id string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM photo_blobs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}
