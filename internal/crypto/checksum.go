package crypto

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// ErrChecksumMismatch is returned when photo bytes do not match the declared checksum
var ErrChecksumMismatch = errors.New("checksum mismatch")

// PhotoChecksum возвращает hex blake2b-256 от байтов фотографии.
// Клиент считает его при постановке в очередь, сервер сверяет при приеме.
func PhotoChecksum(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// VerifyPhotoChecksum проверяет, что data соответствует сохраненному checksum
func VerifyPhotoChecksum(data []byte, checksum string) error {
	if checksum == "" {
		return fmt.Errorf("checksum cannot be empty")
	}

	expected, err := hex.DecodeString(checksum)
	if err != nil {
		return fmt.Errorf("invalid checksum encoding: %w", err)
	}

	sum := blake2b.Sum256(data)
	if subtle.ConstantTimeCompare(sum[:], expected) != 1 {
		return ErrChecksumMismatch
	}

	return nil
}
