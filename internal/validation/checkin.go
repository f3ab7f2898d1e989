package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iudanet/geocheckin/internal/models"
)

// MaxPhotoBytes максимальный размер одной фотографии
const MaxPhotoBytes = 10 << 20

// ErrInvalidCheckin is returned when a check-in record fails validation
var ErrInvalidCheckin = errors.New("invalid check-in")

var validate = validator.New()

// checkinInput проекция записи с правилами валидации
type checkinInput struct {
	LocalID   string       `validate:"required,uuid"`
	OrderID   string       `validate:"required,max=64"`
	Notes     string       `validate:"max=500"`
	Source    string       `validate:"oneof=device_sensor photo_metadata manual"`
	Photos    []photoInput `validate:"min=1,max=5,dive"`
	Latitude  float64      `validate:"latitude"`
	Longitude float64      `validate:"longitude"`
	Accuracy  float64      `validate:"gte=0"`
}

type photoInput struct {
	Filename string `validate:"max=255"`
	MimeType string `validate:"oneof=image/jpeg image/png image/webp image/heic"`
	Data     []byte `validate:"min=1,max=10485760"`
}

// ValidateCheckin checks a record before it is queued or stored.
// Notes length is counted in characters, not bytes.
func ValidateCheckin(rec *models.CheckinRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidCheckin)
	}

	in := checkinInput{
		LocalID:   rec.LocalID,
		OrderID:   rec.OrderID,
		Notes:     rec.Notes,
		Source:    string(rec.Position.Source),
		Latitude:  rec.Position.Latitude,
		Longitude: rec.Position.Longitude,
		Accuracy:  rec.Position.AccuracyMeters,
		Photos:    make([]photoInput, 0, len(rec.Photos)),
	}
	for _, p := range rec.Photos {
		in.Photos = append(in.Photos, photoInput{Filename: p.Filename, MimeType: p.MimeType, Data: p.Data})
	}

	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCheckin, describe(err))
	}

	return nil
}

// ValidateCheckinMeta validates everything except photo bytes; used for
// records listed without their photos.
func ValidateCheckinMeta(rec *models.CheckinRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidCheckin)
	}
	clone := *rec
	clone.Photos = make([]models.PhotoBlob, len(rec.Photos))
	for i, p := range rec.Photos {
		clone.Photos[i] = p
		clone.Photos[i].Data = []byte{0}
	}
	return ValidateCheckin(&clone)
}

// describe превращает ошибки validator в короткое читаемое сообщение
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "checkinInput.")
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", field))
		case "min", "max", "gte":
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is not a valid %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
