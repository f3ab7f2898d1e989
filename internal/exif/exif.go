// Package exif извлекает GPS координаты из EXIF метаданных JPEG фотографий.
//
// Это best-effort fallback для случая, когда у устройства нет GPS фикса:
// любой некорректный или обрезанный буфер дает (nil, false), но никогда ошибку или panic.
package exif

import (
	"bytes"
	"encoding/binary"
	"time"

	"github.com/iudanet/geocheckin/internal/models"
)

const (
	markerPrefix = 0xFF
	markerSOI    = 0xD8
	markerAPP1   = 0xE1
	markerSOS    = 0xDA
	markerEOI    = 0xD9

	// размер одной записи IFD: tag(2) + type(2) + count(4) + value-or-offset(4)
	ifdEntrySize = 12

	tagGPSInfoIFD = 0x8825
)

// GPS IFD tags
const (
	tagGPSLatitudeRef       = 1
	tagGPSLatitude          = 2
	tagGPSLongitudeRef      = 3
	tagGPSLongitude         = 4
	tagGPSAltitudeRef       = 5
	tagGPSAltitude          = 6
	tagGPSTimeStamp         = 7
	tagGPSDateStamp         = 29
	tagGPSHPositioningError = 31
)

// TIFF field types
const (
	typeByte      = 1
	typeASCII     = 2
	typeShort     = 3
	typeLong      = 4
	typeRational  = 5
	typeUndefined = 7
	typeSLong     = 9
	typeSRational = 10
)

var exifHeader = []byte("Exif\x00\x00")

// gpsTags сырые значения GPS IFD до конвертации
type gpsTags struct {
	latitude    []float64
	longitude   []float64
	timeStamp   []float64
	dateStamp   string
	altitude    float64
	hPosError   float64
	latRef      byte
	lngRef      byte
	altitudeRef byte
	hasAltitude bool
	hasHPosErr  bool
}

// Extract returns the GPS position embedded in a JPEG photo.
// It returns false for non-JPEG input, photos without a GPS IFD, and any malformed buffer.
func Extract(photo []byte) (pos *models.GeoPosition, ok bool) {
	defer func() {
		// Последний рубеж: парсер проверяет границы сам, но битые данные
		// никогда не должны уронить вызывающую сторону
		if r := recover(); r != nil {
			pos, ok = nil, false
		}
	}()

	tiff, found := findTIFF(photo)
	if !found {
		return nil, false
	}

	tags, found := parseTIFF(tiff)
	if !found {
		return nil, false
	}

	return tags.toPosition()
}

// HasGPS reports whether the photo carries usable GPS coordinates.
func HasGPS(photo []byte) bool {
	_, ok := Extract(photo)
	return ok
}

// ExtractFirst returns the position of the first photo that carries GPS data.
func ExtractFirst(photos []models.PhotoBlob) (*models.GeoPosition, bool) {
	for _, p := range photos {
		if pos, ok := Extract(p.Data); ok {
			return pos, true
		}
	}
	return nil, false
}

// findTIFF сканирует маркеры JPEG и возвращает TIFF блок из APP1 "Exif" сегмента
func findTIFF(data []byte) ([]byte, bool) {
	if len(data) < 4 || data[0] != markerPrefix || data[1] != markerSOI {
		return nil, false
	}

	offset := 2
	for offset+1 < len(data) {
		if data[offset] != markerPrefix {
			offset++
			continue
		}

		marker := data[offset+1]
		switch {
		case marker == markerPrefix:
			// fill byte
			offset++
			continue
		case marker == markerSOS || marker == markerEOI:
			// после начала скана метаданных уже не будет
			return nil, false
		case marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7):
			// standalone маркеры без длины
			offset += 2
			continue
		}

		if offset+4 > len(data) {
			return nil, false
		}
		segmentLength := int(binary.BigEndian.Uint16(data[offset+2:]))
		if segmentLength < 2 {
			return nil, false
		}
		segmentEnd := offset + 2 + segmentLength
		if segmentEnd > len(data) {
			segmentEnd = len(data)
		}

		if marker == markerAPP1 {
			payload := data[offset+4 : segmentEnd]
			if bytes.HasPrefix(payload, exifHeader) {
				return payload[len(exifHeader):], true
			}
			// APP1 бывает и XMP - пропускаем и ищем дальше
		}

		offset += 2 + segmentLength
	}

	return nil, false
}

// tiffReader читает значения с учетом порядка байт, объявленного в TIFF заголовке
type tiffReader struct {
	order binary.ByteOrder
	data  []byte
}

func (r *tiffReader) u8(off int) (byte, bool) {
	if off < 0 || off >= len(r.data) {
		return 0, false
	}
	return r.data[off], true
}

func (r *tiffReader) u16(off int) (uint16, bool) {
	if off < 0 || off+2 > len(r.data) {
		return 0, false
	}
	return r.order.Uint16(r.data[off:]), true
}

func (r *tiffReader) u32(off int) (uint32, bool) {
	if off < 0 || off+4 > len(r.data) {
		return 0, false
	}
	return r.order.Uint32(r.data[off:]), true
}

func parseTIFF(tiff []byte) (*gpsTags, bool) {
	if len(tiff) < 8 {
		return nil, false
	}

	r := &tiffReader{data: tiff}
	switch {
	case tiff[0] == 'I' && tiff[1] == 'I':
		r.order = binary.LittleEndian
	case tiff[0] == 'M' && tiff[1] == 'M':
		r.order = binary.BigEndian
	default:
		return nil, false
	}

	if magic, ok := r.u16(2); !ok || magic != 42 {
		return nil, false
	}

	ifd0, ok := r.u32(4)
	if !ok {
		return nil, false
	}

	gpsOffset, found := findGPSPointer(r, int(ifd0))
	if !found {
		return nil, false
	}

	return parseGPSIFD(r, gpsOffset)
}

// findGPSPointer ищет в IFD0 тег указателя на GPS IFD
func findGPSPointer(r *tiffReader, ifdOffset int) (int, bool) {
	count, ok := r.u16(ifdOffset)
	if !ok {
		return 0, false
	}

	for i := 0; i < int(count); i++ {
		entry := ifdOffset + 2 + i*ifdEntrySize
		tag, ok := r.u16(entry)
		if !ok {
			return 0, false
		}
		if tag != tagGPSInfoIFD {
			continue
		}
		offset, ok := r.u32(entry + 8)
		if !ok {
			return 0, false
		}
		return int(offset), true
	}

	return 0, false
}

func parseGPSIFD(r *tiffReader, ifdOffset int) (*gpsTags, bool) {
	count, ok := r.u16(ifdOffset)
	if !ok {
		return nil, false
	}

	tags := &gpsTags{}
	for i := 0; i < int(count); i++ {
		entry := ifdOffset + 2 + i*ifdEntrySize
		tag, ok1 := r.u16(entry)
		typ, ok2 := r.u16(entry + 2)
		n, ok3 := r.u32(entry + 4)
		if !ok1 || !ok2 || !ok3 {
			// обрезанный каталог: используем то, что успели прочитать
			break
		}

		switch tag {
		case tagGPSLatitudeRef:
			tags.latRef, _ = r.u8(entry + 8)
		case tagGPSLatitude:
			tags.latitude = readRationals(r, entry, typ, n)
		case tagGPSLongitudeRef:
			tags.lngRef, _ = r.u8(entry + 8)
		case tagGPSLongitude:
			tags.longitude = readRationals(r, entry, typ, n)
		case tagGPSAltitudeRef:
			tags.altitudeRef, _ = r.u8(entry + 8)
		case tagGPSAltitude:
			if v := readRationals(r, entry, typ, 1); len(v) == 1 {
				tags.altitude = v[0]
				tags.hasAltitude = true
			}
		case tagGPSTimeStamp:
			tags.timeStamp = readRationals(r, entry, typ, n)
		case tagGPSDateStamp:
			tags.dateStamp = readASCII(r, entry, typ, n)
		case tagGPSHPositioningError:
			if v := readRationals(r, entry, typ, 1); len(v) == 1 {
				tags.hPosError = v[0]
				tags.hasHPosErr = true
			}
		}
	}

	return tags, true
}

// valueOffset возвращает смещение данных записи: значение хранится inline,
// если помещается в 4 байта, иначе поле содержит смещение от начала TIFF
func valueOffset(r *tiffReader, entry int, typ uint16, count uint32) (int, bool) {
	size := typeSize(typ) * int(count)
	if size <= 0 {
		return 0, false
	}
	if size <= 4 {
		return entry + 8, true
	}
	off, ok := r.u32(entry + 8)
	if !ok {
		return 0, false
	}
	return int(off), true
}

func readRationals(r *tiffReader, entry int, typ uint16, count uint32) []float64 {
	if typ != typeRational && typ != typeSRational {
		return nil
	}
	// GPS координаты это максимум 3 значения; защищаемся от мусорного count
	if count == 0 || count > 16 {
		return nil
	}

	base, ok := valueOffset(r, entry, typ, count)
	if !ok {
		return nil
	}

	values := make([]float64, 0, count)
	for i := 0; i < int(count); i++ {
		num, ok1 := r.u32(base + i*8)
		den, ok2 := r.u32(base + i*8 + 4)
		if !ok1 || !ok2 {
			return nil
		}
		if den == 0 {
			values = append(values, 0)
			continue
		}
		if typ == typeSRational {
			values = append(values, float64(int32(num))/float64(int32(den)))
		} else {
			values = append(values, float64(num)/float64(den))
		}
	}

	return values
}

func readASCII(r *tiffReader, entry int, typ uint16, count uint32) string {
	if typ != typeASCII || count == 0 || count > 64 {
		return ""
	}

	base, ok := valueOffset(r, entry, typ, count)
	if !ok {
		return ""
	}

	buf := make([]byte, 0, count)
	for i := 0; i < int(count); i++ {
		c, ok := r.u8(base + i)
		if !ok || c == 0 {
			break
		}
		buf = append(buf, c)
	}
	return string(buf)
}

func typeSize(typ uint16) int {
	switch typ {
	case typeByte, typeASCII, typeUndefined:
		return 1
	case typeShort:
		return 2
	case typeLong, typeSLong:
		return 4
	case typeRational, typeSRational:
		return 8
	default:
		return 0
	}
}

// dmsToDecimal конвертирует [градусы, минуты, секунды] в десятичные градусы
func dmsToDecimal(dms []float64, ref byte) (float64, bool) {
	if len(dms) < 3 {
		return 0, false
	}
	decimal := dms[0] + dms[1]/60 + dms[2]/3600
	if ref == 'S' || ref == 'W' {
		decimal = -decimal
	}
	return decimal, true
}

func (t *gpsTags) toPosition() (*models.GeoPosition, bool) {
	lat, ok := dmsToDecimal(t.latitude, t.latRef)
	if !ok || (t.latRef != 'N' && t.latRef != 'S') {
		return nil, false
	}
	lng, ok := dmsToDecimal(t.longitude, t.lngRef)
	if !ok || (t.lngRef != 'E' && t.lngRef != 'W') {
		return nil, false
	}

	pos := &models.GeoPosition{
		Latitude:     lat,
		Longitude:    lng,
		Source:       models.SourcePhotoMetadata,
		CapturedAtMs: t.capturedAt(),
	}

	if t.hasAltitude {
		alt := t.altitude
		if t.altitudeRef == 1 {
			// ниже уровня моря
			alt = -alt
		}
		pos.Altitude = models.Float64Ptr(alt)
	}
	if t.hasHPosErr && t.hPosError >= 0 {
		pos.AccuracyMeters = t.hPosError
	}

	if err := pos.Validate(); err != nil {
		return nil, false
	}

	return pos, true
}

// capturedAt собирает unix ms из GPSDateStamp ("YYYY:MM:DD") и GPSTimeStamp (UTC)
func (t *gpsTags) capturedAt() int64 {
	if t.dateStamp == "" {
		return 0
	}

	date, err := time.Parse("2006:01:02", t.dateStamp)
	if err != nil {
		return 0
	}

	if len(t.timeStamp) >= 3 {
		offset := time.Duration(t.timeStamp[0]*float64(time.Hour)) +
			time.Duration(t.timeStamp[1]*float64(time.Minute)) +
			time.Duration(t.timeStamp[2]*float64(time.Second))
		date = date.Add(offset)
	}

	return date.UnixMilli()
}
