package create_booking

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/jongque/JQ-BookingService/internal/domain"
)

// generateBookingNumber формирует человекочитаемый номер бронирования:
// "JQ" + YYYYMMDD + 4 случайные цифры (например, JQ202501154821).
//
// Случайный суффикс не гарантирует уникальность - она обеспечивается
// уникальным индексом БД, а usecase повторяет попытку при коллизии
func generateBookingNumber(date time.Time) (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	suffix := binary.BigEndian.Uint32(buf[:]) % 10000

	return fmt.Sprintf("%s%s%04d", domain.BookingNumberPrefix, date.Format("20060102"), suffix), nil
}

// generateGuestToken формирует токен для доступа гостя к своему бронированию
// без аккаунта (32 hex-символа)
func generateGuestToken() (*string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}

	token := hex.EncodeToString(buf[:])
	return &token, nil
}
