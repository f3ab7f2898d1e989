package exif

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/geocheckin/internal/models"
)

// gpsEntry одна запись GPS IFD; data уже закодирована в нужном порядке байт
type gpsEntry struct {
	data  []byte
	count uint32
	tag   uint16
	typ   uint16
}

// buildTIFF собирает минимальный TIFF: заголовок, IFD0 с указателем 0x8825, GPS IFD и область данных
func buildTIFF(order binary.ByteOrder, entries []gpsEntry) []byte {
	const ifd0Offset = 8
	const gpsOffset = ifd0Offset + 2 + ifdEntrySize + 4

	dataOffset := gpsOffset + 2 + len(entries)*ifdEntrySize + 4

	buf := make([]byte, dataOffset)
	if order == binary.LittleEndian {
		copy(buf, "II")
	} else {
		copy(buf, "MM")
	}
	order.PutUint16(buf[2:], 42)
	order.PutUint32(buf[4:], ifd0Offset)

	// IFD0: единственная запись GPSInfo
	order.PutUint16(buf[ifd0Offset:], 1)
	order.PutUint16(buf[ifd0Offset+2:], tagGPSInfoIFD)
	order.PutUint16(buf[ifd0Offset+4:], typeLong)
	order.PutUint32(buf[ifd0Offset+6:], 1)
	order.PutUint32(buf[ifd0Offset+10:], gpsOffset)

	order.PutUint16(buf[gpsOffset:], uint16(len(entries)))
	for i, e := range entries {
		entry := gpsOffset + 2 + i*ifdEntrySize
		order.PutUint16(buf[entry:], e.tag)
		order.PutUint16(buf[entry+2:], e.typ)
		order.PutUint32(buf[entry+4:], e.count)
		if len(e.data) <= 4 {
			copy(buf[entry+8:], e.data)
			continue
		}
		order.PutUint32(buf[entry+8:], uint32(len(buf)))
		buf = append(buf, e.data...)
	}

	return buf
}

// wrapJPEG оборачивает TIFF в APP1 сегмент; extra сегменты вставляются перед ним
func wrapJPEG(tiff []byte, extra ...[]byte) []byte {
	out := []byte{0xFF, 0xD8}
	// APP0 JFIF
	out = append(out, segment(0xE0, []byte("JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00"))...)
	for _, e := range extra {
		out = append(out, e...)
	}
	payload := append([]byte("Exif\x00\x00"), tiff...)
	out = append(out, segment(markerAPP1, payload)...)
	out = append(out, 0xFF, 0xDA, 0x00, 0x02, 0x00, 0x00)
	out = append(out, 0xFF, 0xD9)
	return out
}

func segment(marker byte, payload []byte) []byte {
	seg := []byte{0xFF, marker, 0, 0}
	binary.BigEndian.PutUint16(seg[2:], uint16(len(payload)+2))
	return append(seg, payload...)
}

func rationals(order binary.ByteOrder, pairs ...uint32) []byte {
	buf := make([]byte, len(pairs)*4)
	for i, v := range pairs {
		order.PutUint32(buf[i*4:], v)
	}
	return buf
}

func ascii(s string) []byte {
	return append([]byte(s), 0)
}

// saigonEntries 10°49'23.16"N 106°37'46.92"E, 2024:03:15 08:30:45 UTC
func saigonEntries(order binary.ByteOrder, latRef, lngRef byte) []gpsEntry {
	return []gpsEntry{
		{tag: tagGPSLatitudeRef, typ: typeASCII, count: 2, data: []byte{latRef, 0}},
		{tag: tagGPSLatitude, typ: typeRational, count: 3, data: rationals(order, 10, 1, 49, 1, 2316, 100)},
		{tag: tagGPSLongitudeRef, typ: typeASCII, count: 2, data: []byte{lngRef, 0}},
		{tag: tagGPSLongitude, typ: typeRational, count: 3, data: rationals(order, 106, 1, 37, 1, 4692, 100)},
		{tag: tagGPSTimeStamp, typ: typeRational, count: 3, data: rationals(order, 8, 1, 30, 1, 45, 1)},
		{tag: tagGPSDateStamp, typ: typeASCII, count: 11, data: ascii("2024:03:15")},
	}
}

func TestExtract_ByteOrders(t *testing.T) {
	tests := []struct {
		name  string
		order binary.ByteOrder
	}{
		{name: "little endian (II)", order: binary.LittleEndian},
		{name: "big endian (MM)", order: binary.BigEndian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photo := wrapJPEG(buildTIFF(tt.order, saigonEntries(tt.order, 'N', 'E')))

			pos, ok := Extract(photo)
			require.True(t, ok)
			require.NotNil(t, pos)

			assert.InDelta(t, 10.8231, pos.Latitude, 1e-5)
			assert.InDelta(t, 106.6297, pos.Longitude, 1e-5)
			assert.Equal(t, models.SourcePhotoMetadata, pos.Source)
			assert.Zero(t, pos.AccuracyMeters)
			assert.Nil(t, pos.Altitude)

			want := time.Date(2024, 3, 15, 8, 30, 45, 0, time.UTC).UnixMilli()
			assert.Equal(t, want, pos.CapturedAtMs)
		})
	}
}

func TestExtract_SouthWestNegated(t *testing.T) {
	order := binary.LittleEndian
	photo := wrapJPEG(buildTIFF(order, saigonEntries(order, 'S', 'W')))

	pos, ok := Extract(photo)
	require.True(t, ok)
	assert.InDelta(t, -10.8231, pos.Latitude, 1e-5)
	assert.InDelta(t, -106.6297, pos.Longitude, 1e-5)
}

func TestExtract_AltitudeAndAccuracy(t *testing.T) {
	order := binary.BigEndian
	entries := saigonEntries(order, 'N', 'E')
	entries = append(entries,
		gpsEntry{tag: tagGPSAltitudeRef, typ: typeByte, count: 1, data: []byte{1}},
		gpsEntry{tag: tagGPSAltitude, typ: typeRational, count: 1, data: rationals(order, 255, 10)},
		gpsEntry{tag: tagGPSHPositioningError, typ: typeRational, count: 1, data: rationals(order, 8, 1)},
	)

	pos, ok := Extract(wrapJPEG(buildTIFF(order, entries)))
	require.True(t, ok)
	require.NotNil(t, pos.Altitude)
	// AltitudeRef = 1 означает ниже уровня моря
	assert.InDelta(t, -25.5, *pos.Altitude, 1e-9)
	assert.InDelta(t, 8.0, pos.AccuracyMeters, 1e-9)
}

func TestExtract_ZeroDenominatorReadsAsZero(t *testing.T) {
	order := binary.LittleEndian
	entries := []gpsEntry{
		{tag: tagGPSLatitudeRef, typ: typeASCII, count: 2, data: []byte{'N', 0}},
		{tag: tagGPSLatitude, typ: typeRational, count: 3, data: rationals(order, 10, 1, 30, 1, 5, 0)},
		{tag: tagGPSLongitudeRef, typ: typeASCII, count: 2, data: []byte{'E', 0}},
		{tag: tagGPSLongitude, typ: typeRational, count: 3, data: rationals(order, 20, 1, 0, 1, 0, 1)},
	}

	pos, ok := Extract(wrapJPEG(buildTIFF(order, entries)))
	require.True(t, ok)
	assert.InDelta(t, 10.5, pos.Latitude, 1e-9)
	assert.InDelta(t, 20.0, pos.Longitude, 1e-9)
	assert.Zero(t, pos.CapturedAtMs)
}

func TestExtract_SkipsNonExifAPP1(t *testing.T) {
	order := binary.LittleEndian
	xmp := segment(markerAPP1, []byte("http://ns.adobe.com/xap/1.0/\x00<x:xmpmeta/>"))
	photo := wrapJPEG(buildTIFF(order, saigonEntries(order, 'N', 'E')), xmp)

	pos, ok := Extract(photo)
	require.True(t, ok)
	assert.InDelta(t, 10.8231, pos.Latitude, 1e-5)
}

func TestExtract_Rejects(t *testing.T) {
	order := binary.LittleEndian

	tests := []struct {
		name  string
		photo []byte
	}{
		{name: "nil", photo: nil},
		{name: "png signature", photo: []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}},
		{name: "jpeg without exif", photo: []byte{0xFF, 0xD8, 0xFF, 0xDA, 0x00, 0x02, 0xFF, 0xD9}},
		{
			name: "no gps ifd pointer",
			photo: func() []byte {
				tiff := buildTIFF(order, saigonEntries(order, 'N', 'E'))
				// затираем тег 0x8825 в IFD0
				order.PutUint16(tiff[10:], 0x0110)
				return wrapJPEG(tiff)
			}(),
		},
		{
			name: "missing longitude",
			photo: wrapJPEG(buildTIFF(order, []gpsEntry{
				{tag: tagGPSLatitudeRef, typ: typeASCII, count: 2, data: []byte{'N', 0}},
				{tag: tagGPSLatitude, typ: typeRational, count: 3, data: rationals(order, 10, 1, 0, 1, 0, 1)},
			})),
		},
		{
			name: "latitude out of range",
			photo: wrapJPEG(buildTIFF(order, []gpsEntry{
				{tag: tagGPSLatitudeRef, typ: typeASCII, count: 2, data: []byte{'N', 0}},
				{tag: tagGPSLatitude, typ: typeRational, count: 3, data: rationals(order, 95, 1, 0, 1, 0, 1)},
				{tag: tagGPSLongitudeRef, typ: typeASCII, count: 2, data: []byte{'E', 0}},
				{tag: tagGPSLongitude, typ: typeRational, count: 3, data: rationals(order, 10, 1, 0, 1, 0, 1)},
			})),
		},
		{
			name: "bad byte order flag",
			photo: func() []byte {
				tiff := buildTIFF(order, saigonEntries(order, 'N', 'E'))
				tiff[0], tiff[1] = 'X', 'X'
				return wrapJPEG(tiff)
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, ok := Extract(tt.photo)
			assert.False(t, ok)
			assert.Nil(t, pos)
		})
	}
}

func TestExtract_TruncatedNeverPanics(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		photo := wrapJPEG(buildTIFF(order, saigonEntries(order, 'N', 'E')))

		for n := 0; n < len(photo); n++ {
			assert.NotPanics(t, func() {
				pos, ok := Extract(photo[:n])
				if ok {
					// обрезка после всех нужных данных допустима
					assert.InDelta(t, 10.8231, pos.Latitude, 1e-5)
				}
			})
		}
	}
}

func TestExtract_GarbageOffsetsNeverPanic(t *testing.T) {
	order := binary.LittleEndian
	entries := []gpsEntry{
		{tag: tagGPSLatitudeRef, typ: typeASCII, count: 2, data: []byte{'N', 0}},
		// count огромный, смещение указывает за пределы буфера
		{tag: tagGPSLatitude, typ: typeRational, count: 0xFFFFFFFF, data: rationals(order, 0xFFFFFF00)},
		{tag: tagGPSDateStamp, typ: typeASCII, count: 11, data: rationals(order, 0x7FFFFFFF)},
	}

	assert.NotPanics(t, func() {
		pos, ok := Extract(wrapJPEG(buildTIFF(order, entries)))
		assert.False(t, ok)
		assert.Nil(t, pos)
	})
}

func TestExtractFirst(t *testing.T) {
	order := binary.LittleEndian
	photos := []models.PhotoBlob{
		{ID: "plain", Data: []byte{0xFF, 0xD8, 0xFF, 0xD9}},
		{ID: "gps", Data: wrapJPEG(buildTIFF(order, saigonEntries(order, 'N', 'E')))},
	}

	pos, ok := ExtractFirst(photos)
	require.True(t, ok)
	assert.InDelta(t, 106.6297, pos.Longitude, 1e-5)

	assert.True(t, HasGPS(photos[1].Data))
	assert.False(t, HasGPS(photos[0].Data))

	_, ok = ExtractFirst(photos[:1])
	assert.False(t, ok)
}
