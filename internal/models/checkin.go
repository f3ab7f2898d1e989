package models

// CheckinStatus статус записи в offline очереди
type CheckinStatus string

const (
	StatusPending CheckinStatus = "pending" // ожидает отправки
	StatusSyncing CheckinStatus = "syncing" // отправляется прямо сейчас
	StatusSynced  CheckinStatus = "synced"  // принята сервером
	StatusFailed  CheckinStatus = "failed"  // исчерпан лимит попыток, нужно ручное действие
)

const (
	// MaxPhotos максимальное количество фото в одном check-in
	MaxPhotos = 5
	// MaxNotesLength максимальная длина заметки (в символах)
	MaxNotesLength = 500
	// MaxRetryCount после стольких неудачных отправок запись переходит в StatusFailed
	MaxRetryCount = 3
)

// PhotoBlob представляет фотографию, прикрепленную к check-in.
// Data хранится как сырые байты и никогда не кодируется в текст внутри тела записи:
// boltdb хранит фото в отдельном bucket, ключом служит LocalID записи и индекс фото.
type PhotoBlob struct {
	ID        string `json:"id"`        // ID идентификатор фото (UUID)
	Filename  string `json:"filename"`  // Filename исходное имя файла
	MimeType  string `json:"mime_type"` // MimeType например "image/jpeg"
	Checksum  string `json:"checksum"`  // Checksum blake2b-256 hex от Data
	Data      []byte `json:"-"`         // Data содержимое файла
	SizeBytes int64  `json:"size_bytes"`
}

// CheckinRecord представляет одно proof-of-delivery событие (позиция + фото + заметка).
// LocalID генерируется на клиенте и служит ключом идемпотентности на сервере.
type CheckinRecord struct {
	LocalID      string        `json:"local_id"`
	OrderID      string        `json:"order_id"`
	Notes        string        `json:"notes"`
	AddressLabel string        `json:"address_label,omitempty"` // адрес доставки для карты, опционально
	Status       CheckinStatus `json:"status"`
	LastError    string        `json:"last_error,omitempty"`
	Photos       []PhotoBlob   `json:"photos"`
	Position     GeoPosition   `json:"position"`
	CreatedAtMs  int64         `json:"created_at_ms"`
	UpdatedAtMs  int64         `json:"updated_at_ms"`
	RetryCount   uint32        `json:"retry_count"`
}

// IsTerminal reports whether the record needs operator action before it is sent again.
func (r *CheckinRecord) IsTerminal() bool {
	return r.Status == StatusFailed
}

// Clone создает глубокую копию записи, включая байты фотографий
func (r *CheckinRecord) Clone() *CheckinRecord {
	clone := *r

	if r.Position.Altitude != nil {
		clone.Position.Altitude = Float64Ptr(*r.Position.Altitude)
	}
	if r.Position.HeadingDegrees != nil {
		clone.Position.HeadingDegrees = Float64Ptr(*r.Position.HeadingDegrees)
	}
	if r.Position.SpeedMps != nil {
		clone.Position.SpeedMps = Float64Ptr(*r.Position.SpeedMps)
	}

	if r.Photos != nil {
		clone.Photos = make([]PhotoBlob, len(r.Photos))
		for i, p := range r.Photos {
			clone.Photos[i] = p
			if p.Data != nil {
				clone.Photos[i].Data = make([]byte, len(p.Data))
				copy(clone.Photos[i].Data, p.Data)
			}
		}
	}

	return &clone
}

// SyncReport результат одного прохода синхронизации очереди
type SyncReport struct {
	Succeeded []string `json:"succeeded"` // LocalID принятых сервером записей
	Failed    []string `json:"failed"`    // LocalID записей, отправка которых завершилась ошибкой
	Skipped   int      `json:"skipped"`   // записи в StatusFailed, ожидающие ручного retry
}
